package api

import (
	"net/http"

	"github.com/nortiq/forms-backend/internal/logger"
	"github.com/nortiq/forms-backend/internal/sheets"
)

// CredentialLoader resolves service-account credentials on demand. The
// introspection endpoints load fresh on every request so a fixed secret
// file shows up without a restart.
type CredentialLoader func() (*sheets.Credentials, error)

// CredentialsHandler handles GET /credentials: a non-secret summary of
// the resolved service-account key.
func CredentialsHandler(load CredentialLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := load()
		if err != nil {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}

		respondJSON(w, http.StatusOK, creds.Inspect())
	}
}

// CredentialsCheckHandler handles GET /credentials/check: loads the key
// and verifies it with the oauth2 library, reporting the service-account
// address the spreadsheet must be shared with.
func CredentialsCheckHandler(load CredentialLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		creds, err := load()
		if err != nil {
			respondJSON(w, http.StatusNotFound, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}

		if err := creds.Verify(r.Context()); err != nil {
			log.Error().Err(err).Msg("credentials check failed")
			respondJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}

		inspection := creds.Inspect()
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"status":           "success",
			"message":          "credentials are valid",
			"credentials":      inspection,
			"share_sheet_with": inspection.ServiceAccount,
		})
	}
}
