package signup

import (
	"encoding/json"
	"testing"
	"time"
)

func TestValidate_AcceptsEmptyEmail(t *testing.T) {
	s := Submission{FullName: "Anon", Email: ""}
	if errs := s.Validate(); errs != nil {
		t.Errorf("expected empty email to pass validation, got %v", errs)
	}
}

func TestValidate_AcceptsWellFormedEmail(t *testing.T) {
	s := Submission{FullName: "Ploy", Email: "ploy@example.com"}
	if errs := s.Validate(); errs != nil {
		t.Errorf("expected valid email to pass validation, got %v", errs)
	}
}

func TestValidate_RejectsMalformedEmail(t *testing.T) {
	for _, bad := range []string{"not-an-email", "a@", "@b.com", "a b@c.com"} {
		s := Submission{Email: bad}
		errs := s.Validate()
		if len(errs) == 0 {
			t.Errorf("expected %q to be rejected", bad)
			continue
		}
		if errs[0] != "email is not a valid address" {
			t.Errorf("unexpected message for %q: %v", bad, errs)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Submission{FullName: "Somsak"}).DisplayName(); got != "Somsak" {
		t.Errorf("expected Somsak, got %q", got)
	}
	// Anonymous submitters get the template's generic greeting, so the
	// display name stays empty rather than inventing a placeholder.
	if got := (Submission{}).DisplayName(); got != "" {
		t.Errorf("expected empty display name, got %q", got)
	}
	if got := (Submission{FullName: "  "}).DisplayName(); got != "" {
		t.Errorf("expected whitespace-only name to be treated as empty, got %q", got)
	}
}

func TestRow_Layout(t *testing.T) {
	at := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	s := Submission{
		FullName:        "Ploy",
		Email:           "ploy@example.com",
		DesiredPosition: "Network Engineer",
		DesiredYear:     "2027",
		Interests:       InterestList{"5G", "Optical"},
		Comments:        "Looking forward",
	}

	row := s.Row(at)
	want := []interface{}{
		"Ploy",
		"Network Engineer",
		"2027",
		"5G, Optical",
		"Looking forward",
		"2026-03-14T10:30:00Z",
	}

	if len(row) != len(want) {
		t.Fatalf("expected %d columns, got %d", len(want), len(row))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d: expected %v, got %v", i, want[i], row[i])
		}
	}
}

func TestUnmarshal_InterestsArray(t *testing.T) {
	var s Submission
	if err := json.Unmarshal([]byte(`{"interests": ["AI", "Robotics"]}`), &s); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if len(s.Interests) != 2 || s.Interests[0] != "AI" || s.Interests[1] != "Robotics" {
		t.Errorf("unexpected interests %v", s.Interests)
	}
}

func TestUnmarshal_InterestsScalar(t *testing.T) {
	// Older form clients send a single comma-joined string.
	var s Submission
	if err := json.Unmarshal([]byte(`{"interests": "AI, Robotics"}`), &s); err != nil {
		t.Fatalf("unmarshal returned error: %v", err)
	}
	if len(s.Interests) != 1 || s.Interests[0] != "AI, Robotics" {
		t.Errorf("unexpected interests %v", s.Interests)
	}
	if got := s.Row(time.Now())[3]; got != "AI, Robotics" {
		t.Errorf("unexpected interests column %v", got)
	}
}

func TestUnmarshal_InterestsRejectsObject(t *testing.T) {
	var s Submission
	if err := json.Unmarshal([]byte(`{"interests": {"a": 1}}`), &s); err == nil {
		t.Error("expected error for an object-valued interests field")
	}
}

func TestRow_EmptyInterests(t *testing.T) {
	row := Submission{FullName: "X"}.Row(time.Now())
	if row[3] != "" {
		t.Errorf("expected empty interests column, got %v", row[3])
	}
}
