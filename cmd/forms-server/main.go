package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nortiq/forms-backend/internal/api"
	"github.com/nortiq/forms-backend/internal/config"
	"github.com/nortiq/forms-backend/internal/logger"
	"github.com/nortiq/forms-backend/internal/mailer"
	"github.com/nortiq/forms-backend/internal/mailqueue"
	"github.com/nortiq/forms-backend/internal/sheets"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewFromConfig(cfg.Logging)
	log.Info().Msg("starting forms server")

	ctx := context.Background()

	// Spreadsheet recorder. A missing integration degrades the submit
	// flow instead of refusing to boot; the status endpoints make the
	// gap visible.
	credLoader := func() (*sheets.Credentials, error) {
		return sheets.LoadCredentials(cfg.Sheets.CredentialsFile)
	}

	var appender api.RowAppender
	if cfg.Sheets.Configured() {
		creds, err := credLoader()
		if err != nil {
			log.Warn().Err(err).Msg("spreadsheet disabled: credentials unavailable")
		} else {
			a, err := sheets.NewAppender(ctx, cfg.Sheets, creds, log)
			if err != nil {
				log.Warn().Err(err).Msg("spreadsheet disabled: client init failed")
			} else {
				appender = a
				log.Info().
					Str("spreadsheet_id", cfg.Sheets.SpreadsheetID).
					Str("service_account", creds.ClientEmail).
					Msg("spreadsheet recorder ready")
			}
		}
	} else {
		log.Warn().Msg("spreadsheet not configured, submissions will not be recorded")
	}

	// Mail dispatch queue
	smtpCfg := cfg.SMTP
	if smtpCfg.From == "" {
		smtpCfg.From = smtpCfg.Username
	}

	var mail api.MailEnqueuer
	var dispatcher *mailqueue.Dispatcher
	if smtpCfg.Configured() {
		sender := mailer.NewSMTPSender(smtpCfg, log)
		dispatcher = mailqueue.NewDispatcher(sender, cfg.Queue, log)
		dispatcher.Start()
		mail = dispatcher
	} else {
		log.Warn().Msg("mail transport not configured, confirmations disabled")
	}

	// Build router
	router := api.NewRouter(api.RouterConfig{
		Log:            log,
		Appender:       appender,
		Mail:           mail,
		Credentials:    credLoader,
		Sheets:         cfg.Sheets,
		SMTPConfigured: smtpCfg.Configured(),
	})

	// Configure HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop taking requests first, then drain the mail queue.
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Stop(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mail queue did not drain")
		}
	}

	log.Info().Msg("server stopped")
}
