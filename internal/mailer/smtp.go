package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-sasl"
	gosmtp "github.com/emersion/go-smtp"
	"github.com/rs/zerolog"
)

// ErrAuth marks a delivery attempt rejected by the transport's
// authentication step. It is terminal for the task, like any other
// delivery error, but is reported separately in logs and metrics.
var ErrAuth = errors.New("smtp authentication failed")

// Config holds outbound SMTP transport configuration. It is supplied
// opaquely by the application layer at construction time.
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	// From is the sender address used for all confirmations.
	From string `mapstructure:"from"`
	// FromName is the display name attached to From.
	FromName string `mapstructure:"from_name"`
	// TLS enables implicit TLS on connect (submission port 465).
	// When false the connection stays plaintext, for dev relays.
	TLS bool `mapstructure:"tls"`
	// StartTLS upgrades a plaintext connection with the STARTTLS
	// command before authenticating (submission port 587). Ignored
	// when TLS is set.
	StartTLS bool `mapstructure:"starttls"`
	// InsecureSkipVerify disables certificate verification. Dev only.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
	// Timeout bounds one whole delivery attempt: connect, auth,
	// transmit, quit. A slow or unreachable server fails the attempt
	// instead of stalling the worker.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Configured reports whether the transport has enough configuration to
// attempt delivery.
func (c Config) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != "" && c.From != ""
}

// SMTPSender delivers the sign-up confirmation over SMTP. It opens one
// connection per attempt and never retries; a failed attempt is the
// caller's to log and drop.
type SMTPSender struct {
	config Config
	log    zerolog.Logger
}

// NewSMTPSender creates an SMTPSender for the given transport config.
func NewSMTPSender(cfg Config, log zerolog.Logger) *SMTPSender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPSender{config: cfg, log: log}
}

// Send performs one blocking delivery attempt to recipient. The whole
// attempt is bounded by Config.Timeout and by ctx, whichever is sooner.
func (s *SMTPSender) Send(ctx context.Context, recipient, displayName string) error {
	deadline := time.Now().Add(s.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}

	// One deadline covers every command in the attempt.
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("set deadline: %w", err)
	}

	var c *gosmtp.Client
	if s.config.StartTLS && !s.config.TLS {
		c, err = gosmtp.NewClientStartTLS(conn, s.tlsConfig())
		if err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	} else {
		c = gosmtp.NewClient(conn)
	}
	defer c.Close()

	if s.config.Username != "" {
		auth := sasl.NewPlainClient("", s.config.Username, s.config.Password)
		if err := c.Auth(auth); err != nil {
			var smtpErr *gosmtp.SMTPError
			if errors.As(err, &smtpErr) {
				return fmt.Errorf("%w: %s", ErrAuth, smtpErr.Message)
			}
			return fmt.Errorf("auth: %w", err)
		}
	}

	msg, err := buildConfirmation(s.config.From, s.config.FromName, recipient, displayName)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	if err := c.SendMail(s.config.From, []string{recipient}, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("send: %w", err)
	}

	return c.Quit()
}

// dial opens the transport connection, with or without implicit TLS.
// STARTTLS connections start plaintext and are upgraded in Send.
func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: s.config.Timeout}

	if !s.config.TLS {
		return dialer.DialContext(ctx, "tcp", addr)
	}

	tlsDialer := &tls.Dialer{NetDialer: dialer, Config: s.tlsConfig()}
	return tlsDialer.DialContext(ctx, "tcp", addr)
}

func (s *SMTPSender) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName:         s.config.Host,
		InsecureSkipVerify: s.config.InsecureSkipVerify, //nolint:gosec // Intentional for dev relays with self-signed certs.
	}
}
