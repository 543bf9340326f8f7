package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New("info").Output(&buf)

	log.Info().Str("recipient", "a@x.com").Msg("confirmation queued")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON output, got error: %v, output: %s", err, buf.String())
	}

	if entry["message"] != "confirmation queued" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry["recipient"] != "a@x.com" {
		t.Errorf("unexpected recipient field %v", entry["recipient"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("expected 'time' field in JSON output")
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		logAt     string
		shouldLog bool
	}{
		{"info logger logs info", "info", "info", true},
		{"info logger logs warn", "info", "warn", true},
		{"info logger skips debug", "info", "debug", false},
		{"debug logger logs debug", "debug", "debug", true},
		{"warn logger skips info", "warn", "info", false},
		{"error logger skips warn", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(tt.level).Output(&buf)

			switch tt.logAt {
			case "debug":
				log.Debug().Msg("x")
			case "info":
				log.Info().Msg("x")
			case "warn":
				log.Warn().Msg("x")
			case "error":
				log.Error().Msg("x")
			}

			if got := buf.Len() > 0; got != tt.shouldLog {
				t.Errorf("level=%s, logAt=%s: expected output=%v, got %q",
					tt.level, tt.logAt, tt.shouldLog, buf.String())
			}
		})
	}
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("shouting").Output(&buf)

	log.Debug().Msg("hidden")
	if buf.Len() > 0 {
		t.Error("expected debug to be filtered at the fallback info level")
	}

	log.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Error("expected info to appear at the fallback info level")
	}
}

func TestWithCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-7f3a")

	if got := CorrelationIDFromContext(ctx); got != "req-7f3a" {
		t.Errorf("expected correlation ID req-7f3a, got %s", got)
	}
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty ID on a bare context, got %s", got)
	}
}

func TestFromContext_AttachesCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	log := New("info").Output(&buf)

	ctx := WithLogger(context.Background(), log)
	ctx = WithCorrelationID(ctx, "req-7f3a")

	ctxLog := FromContext(ctx)
	ctxLog.Info().Msg("submission recorded")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected valid JSON, got error: %v, output: %s", err, buf.String())
	}
	if entry["correlation_id"] != "req-7f3a" {
		t.Errorf("expected correlation_id req-7f3a, got %v", entry["correlation_id"])
	}
}

func TestFromContext_FallbackLogger(t *testing.T) {
	// A context without a logger still yields a working one.
	log := FromContext(context.Background())

	var buf bytes.Buffer
	bufLog := log.Output(&buf)
	bufLog.Info().Msg("fallback")

	if buf.Len() == 0 {
		t.Error("expected fallback logger to produce output")
	}
}

func TestNewCorrelationID(t *testing.T) {
	a, b := NewCorrelationID(), NewCorrelationID()

	if a == "" || a == b {
		t.Errorf("expected unique non-empty IDs, got %q and %q", a, b)
	}
	if len(strings.Split(a, "-")) != 5 {
		t.Errorf("expected UUID shape, got %s", a)
	}
}
