package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/nortiq/forms-backend/internal/metrics"
)

// Config holds spreadsheet configuration.
type Config struct {
	// SpreadsheetID is the key of the target spreadsheet.
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	// Range is the A1 range rows are appended to, usually the sheet name.
	Range string `mapstructure:"range"`
	// CredentialsFile is the service-account key path; the env fallback
	// chain applies when the file is absent.
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Configured reports whether a target spreadsheet is set.
func (c Config) Configured() bool { return c.SpreadsheetID != "" }

// Appender appends submission rows to one spreadsheet.
type Appender struct {
	svc           *sheetsapi.Service
	spreadsheetID string
	appendRange   string
	log           zerolog.Logger
}

// NewAppender builds a Sheets API client from the given credentials.
func NewAppender(ctx context.Context, cfg Config, creds *Credentials, log zerolog.Logger) (*Appender, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is not configured")
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(creds.Raw()),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	appendRange := cfg.Range
	if appendRange == "" {
		appendRange = "Sheet1"
	}

	return &Appender{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		appendRange:   appendRange,
		log:           log,
	}, nil
}

// Append adds one row to the bottom of the configured range. Values are
// written with USER_ENTERED so timestamps and numbers are typed by the
// spreadsheet, matching manual entry.
func (a *Appender) Append(ctx context.Context, row []interface{}) error {
	start := time.Now()

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := a.svc.Spreadsheets.Values.
		Append(a.spreadsheetID, a.appendRange, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	metrics.SheetsAppendDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.SheetsAppendTotal.WithLabelValues("error").Inc()
		a.log.Error().Err(err).
			Str("spreadsheet_id", a.spreadsheetID).
			Msg("sheet append failed")
		return fmt.Errorf("append row: %w", err)
	}

	metrics.SheetsAppendTotal.WithLabelValues("ok").Inc()
	a.log.Info().
		Str("spreadsheet_id", a.spreadsheetID).
		Dur("duration", time.Since(start)).
		Msg("submission row appended")
	return nil
}
