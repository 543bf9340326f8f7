package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/nortiq/forms-backend/internal/logger"
	"github.com/nortiq/forms-backend/internal/metrics"
	"github.com/nortiq/forms-backend/internal/signup"
)

// RowAppender records a submission row to the spreadsheet.
type RowAppender interface {
	Append(ctx context.Context, row []interface{}) error
}

// MailEnqueuer queues a confirmation mail without blocking.
type MailEnqueuer interface {
	Enqueue(recipient, displayName string) bool
}

// submitResponse is the JSON response for a form submission. The sheet
// write is synchronous and reported truthfully; the email is queued for
// background delivery, so email_queued only means "accepted", never
// "delivered".
type submitResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	SheetsSaved bool   `json:"sheets_saved"`
	EmailQueued bool   `json:"email_queued"`
	Timestamp   string `json:"timestamp"`
}

// SubmitHandler handles POST /submit. Either collaborator may be nil
// when the integration is unconfigured; the submission still succeeds
// and the response flags record what actually happened.
func SubmitHandler(appender RowAppender, mail MailEnqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var sub signup.Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if errs := sub.Validate(); len(errs) > 0 {
			metrics.SubmissionsTotal.WithLabelValues("rejected").Inc()
			respondValidationErrors(w, errs)
			return
		}

		log.Info().
			Str("full_name", sub.FullName).
			Str("email", sub.Email).
			Msg("form submission received")

		sheetsSaved := false
		if appender != nil {
			if err := appender.Append(r.Context(), sub.Row(time.Now())); err != nil {
				// Logged by the appender; the submission is still accepted.
				sheetsSaved = false
			} else {
				sheetsSaved = true
			}
		} else {
			log.Warn().Msg("spreadsheet not configured, submission not recorded")
		}

		emailQueued := false
		if sub.Email == "" {
			log.Info().Msg("no email address provided, skipping confirmation")
		} else if mail == nil {
			log.Warn().Msg("mail transport not configured, skipping confirmation")
		} else {
			emailQueued = mail.Enqueue(sub.Email, sub.DisplayName())
		}

		metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
		respondJSON(w, http.StatusOK, submitResponse{
			Success:     true,
			Message:     "Form submitted successfully.",
			SheetsSaved: sheetsSaved,
			EmailQueued: emailQueued,
			Timestamp:   time.Now().Format(time.RFC3339),
		})
	}
}
