package api

import (
	"net/http"
	"os"
	"time"
)

// HomeHandler handles GET / with a service summary.
func HomeHandler(cfg RouterConfig) http.HandlerFunc {
	endpoints := []string{"/", "/ping", "/healthz", "/status", "/credentials", "/credentials/check", "/submit", "/metrics"}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "job-fair sign-up backend",
			"config": map[string]interface{}{
				"email":            cfg.SMTPConfigured,
				"google_sheets":    cfg.Sheets.Configured(),
				"credentials_file": cfg.Sheets.CredentialsFile,
			},
			"endpoints": endpoints,
		})
	}
}

// PingHandler handles GET /ping.
func PingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"pong": true,
			"time": time.Now().Format(time.RFC3339),
		})
	}
}

// HealthzHandler handles GET /healthz.
func HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// StatusHandler handles GET /status: configuration visibility without
// secret values, the way operators debug a misdeployed instance.
func StatusHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileExists := false
		if cfg.Sheets.CredentialsFile != "" {
			_, err := os.Stat(cfg.Sheets.CredentialsFile)
			fileExists = err == nil
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"email_configured":        cfg.SMTPConfigured,
			"google_sheet_configured": cfg.Sheets.Configured(),
			"credentials_file":        cfg.Sheets.CredentialsFile,
			"credentials_file_exists": fileExists,
			"server_time":             time.Now().Format(time.RFC3339),
		})
	}
}
