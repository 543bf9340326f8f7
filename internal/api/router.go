package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/nortiq/forms-backend/internal/sheets"
)

// RouterConfig carries the collaborators the routes need. Appender and
// Mail may be nil when the corresponding integration is not configured;
// the submit flow degrades gracefully instead of failing the request.
type RouterConfig struct {
	Log         zerolog.Logger
	Appender    RowAppender
	Mail        MailEnqueuer
	Credentials CredentialLoader
	Sheets      sheets.Config
	// SMTPConfigured feeds the configuration-visibility endpoints.
	SMTPConfigured bool
}

// NewRouter creates a chi.Mux with all routes and middleware configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// The form is posted from a static site on another origin.
	r.Use(cors.AllowAll().Handler)

	// Global middleware
	r.Use(CorrelationIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))
	r.Use(RecoverMiddleware(cfg.Log))
	r.Use(MetricsMiddleware)

	r.Get("/", HomeHandler(cfg))
	r.Get("/ping", PingHandler())
	r.Get("/healthz", HealthzHandler())
	r.Get("/status", StatusHandler(cfg))

	r.Get("/credentials", CredentialsHandler(cfg.Credentials))
	r.Get("/credentials/check", CredentialsCheckHandler(cfg.Credentials))

	r.Post("/submit", SubmitHandler(cfg.Appender, cfg.Mail))

	r.Handle("/metrics", promhttp.Handler())

	return r
}
