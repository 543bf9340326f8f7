// Package signup holds the job-fair sign-up submission model shared by
// the HTTP layer and the spreadsheet recorder.
package signup

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Submission is one job-fair sign-up form entry. Field names follow the
// form's JSON payload.
type Submission struct {
	FullName        string       `json:"fullName"`
	Email           string       `json:"email" validate:"omitempty,email"`
	DesiredPosition string       `json:"desiredPosition"`
	DesiredYear     string       `json:"desiredYear"`
	Interests       InterestList `json:"interests"`
	Comments        string       `json:"comments"`
}

// InterestList accepts the checkbox-array form as well as the single
// comma-joined string that older form clients send.
type InterestList []string

func (l *InterestList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*l = many
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("interests must be a string or an array of strings")
	}
	if one == "" {
		*l = nil
		return nil
	}
	*l = InterestList{one}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the submission and returns human-readable problems.
// An empty email is allowed (the confirmation is simply skipped); a
// malformed one is rejected so a typo does not silently eat the
// confirmation.
func (s Submission) Validate() []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var errs []string
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Email":
				errs = append(errs, "email is not a valid address")
			default:
				errs = append(errs, strings.ToLower(fe.Field())+" is invalid")
			}
		}
		return errs
	}
	return []string{"invalid submission"}
}

// DisplayName returns the name to address the submitter by. It is empty
// when the form carried no name; the confirmation template then falls
// back to its generic greeting.
func (s Submission) DisplayName() string {
	return strings.TrimSpace(s.FullName)
}

// Row flattens the submission into the spreadsheet row layout:
// full name, desired position, desired year, interests, comments,
// submission time.
func (s Submission) Row(submittedAt time.Time) []interface{} {
	return []interface{}{
		s.FullName,
		s.DesiredPosition,
		s.DesiredYear,
		strings.Join([]string(s.Interests), ", "),
		s.Comments,
		submittedAt.Format(time.RFC3339),
	}
}
