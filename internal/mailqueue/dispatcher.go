package mailqueue

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/nortiq/forms-backend/internal/mailer"
)

// Sender performs a single blocking delivery attempt. Implementations
// are expected to bound their own transport I/O; the dispatcher
// additionally enforces Config.AttemptTimeout via the context.
type Sender interface {
	Send(ctx context.Context, recipient, displayName string) error
}

// Dispatcher decouples request handling from blocking outbound mail
// delivery. Producers append tasks with Enqueue and return immediately;
// a single background worker drains the queue in FIFO order and performs
// one delivery attempt per task. Failed attempts are logged and dropped.
//
// The queue is unbounded, so Enqueue never blocks. Tasks enqueued by the
// same producer are delivered in that relative order; no ordering is
// guaranteed across producers racing to enqueue.
type Dispatcher struct {
	sender Sender
	config Config
	log    zerolog.Logger

	mu       sync.Mutex
	pending  []item
	stopping bool

	wake chan struct{}
	done chan struct{}
}

// NewDispatcher creates a Dispatcher that delivers through sender.
// Call Start exactly once before enqueuing.
func NewDispatcher(sender Sender, cfg Config, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		config: cfg.withDefaults(),
		log:    log,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Enqueue appends a delivery task to the tail of the queue and returns
// immediately. It performs no network I/O and never waits on delivery.
// It returns false, without touching the queue, when the recipient is
// empty or the dispatcher has been stopped.
func (d *Dispatcher) Enqueue(recipient, displayName string) bool {
	if recipient == "" {
		TasksRejectedTotal.Inc()
		d.log.Warn().Msg("mail task rejected: empty recipient")
		return false
	}

	d.mu.Lock()
	if d.stopping {
		d.mu.Unlock()
		TasksRejectedTotal.Inc()
		d.log.Warn().Str("recipient", recipient).Msg("mail task rejected: dispatcher stopped")
		return false
	}
	d.pending = append(d.pending, item{Task: Task{Recipient: recipient, DisplayName: displayName}})
	QueueDepth.Set(float64(len(d.pending)))
	d.mu.Unlock()

	d.signal()

	TasksEnqueuedTotal.Inc()
	d.log.Info().Str("recipient", recipient).Msg("confirmation mail queued")
	return true
}

// Start launches the single background worker goroutine. Call once at
// process boot.
func (d *Dispatcher) Start() {
	go d.run()
	d.log.Info().
		Dur("idle_timeout", d.config.IdleTimeout).
		Dur("attempt_timeout", d.config.AttemptTimeout).
		Msg("mail dispatch worker started")
}

// Stop places a sentinel at the tail of the queue and waits for the
// worker to drain everything ahead of it, or for ctx to expire. Further
// Enqueue calls are rejected once Stop has been called.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopping {
		d.mu.Unlock()
	} else {
		d.stopping = true
		d.pending = append(d.pending, item{stop: true})
		d.mu.Unlock()
		d.signal()
	}

	select {
	case <-d.done:
		d.log.Info().Msg("mail dispatch worker stopped")
		return nil
	case <-ctx.Done():
		d.log.Warn().Msg("mail dispatch worker shutdown timed out")
		return ctx.Err()
	}
}

// signal nudges the worker without blocking the producer.
func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// run is the worker loop. It exits only on the stop sentinel; per-task
// failures never escape deliver.
func (d *Dispatcher) run() {
	defer close(d.done)

	for {
		it, ok := d.next()
		if !ok {
			// Idle timeout with an empty queue. Keep waiting.
			d.log.Debug().Msg("mail dispatch worker idle")
			continue
		}
		if it.stop {
			return
		}
		d.deliver(it.Task)
	}
}

// next pops the head of the queue, waiting up to IdleTimeout for a task
// to arrive. The second return value is false on idle timeout.
func (d *Dispatcher) next() (item, bool) {
	timeout := time.After(d.config.IdleTimeout)
	for {
		d.mu.Lock()
		if len(d.pending) > 0 {
			it := d.pending[0]
			d.pending = d.pending[1:]
			QueueDepth.Set(float64(len(d.pending)))
			d.mu.Unlock()
			return it, true
		}
		d.mu.Unlock()

		select {
		case <-d.wake:
		case <-timeout:
			return item{}, false
		}
	}
}

// deliver performs one delivery attempt. Every failure mode, including a
// panicking Sender, is contained here so the worker survives to process
// the next task.
func (d *Dispatcher) deliver(task Task) {
	defer func() {
		if r := recover(); r != nil {
			TasksProcessedTotal.WithLabelValues("failed").Inc()
			d.log.Error().
				Interface("panic", r).
				Str("recipient", task.Recipient).
				Msg("delivery attempt panicked")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.config.AttemptTimeout)
	defer cancel()

	start := time.Now()
	err := d.sender.Send(ctx, task.Recipient, task.DisplayName)
	DeliveryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		status := "failed"
		if errors.Is(err, mailer.ErrAuth) {
			status = "auth_failed"
		}
		TasksProcessedTotal.WithLabelValues(status).Inc()
		d.log.Error().Err(err).
			Str("recipient", task.Recipient).
			Str("status", status).
			Msg("confirmation mail delivery failed")
		return
	}

	TasksProcessedTotal.WithLabelValues("sent").Inc()
	d.log.Info().
		Str("recipient", task.Recipient).
		Dur("duration", time.Since(start)).
		Msg("confirmation mail delivered")
}
