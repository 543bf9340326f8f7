package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nortiq/forms-backend/internal/sheets"
)

func TestHealthzHandler_AlwaysOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	handler := HealthzHandler()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("expected status healthy, got %s", resp["status"])
	}

	ct := rec.Header().Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
}

func TestPingHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	PingHandler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["pong"] != true {
		t.Errorf("expected pong true, got %v", resp["pong"])
	}
}

func TestHomeHandler_ReportsConfiguration(t *testing.T) {
	cfg := RouterConfig{
		SMTPConfigured: true,
		Sheets:         sheets.Config{SpreadsheetID: "sheet123", CredentialsFile: "/etc/secrets/sa.json"},
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	HomeHandler(cfg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	conf, ok := resp["config"].(map[string]interface{})
	if !ok {
		t.Fatal("expected config object in response")
	}
	if conf["email"] != true {
		t.Error("expected email configured true")
	}
	if conf["google_sheets"] != true {
		t.Error("expected google_sheets configured true")
	}

	endpoints, ok := resp["endpoints"].([]interface{})
	if !ok || len(endpoints) == 0 {
		t.Error("expected endpoint list in response")
	}
}

func TestStatusHandler_CredentialsFilePresence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sa.json")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := RouterConfig{Sheets: sheets.Config{SpreadsheetID: "s", CredentialsFile: path}}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	StatusHandler(cfg).ServeHTTP(rec, req)

	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["credentials_file_exists"] != true {
		t.Error("expected credentials_file_exists true")
	}
	if resp["google_sheet_configured"] != true {
		t.Error("expected google_sheet_configured true")
	}

	// Same handler with a missing file reports false.
	cfg.Sheets.CredentialsFile = filepath.Join(dir, "missing.json")
	rec = httptest.NewRecorder()
	StatusHandler(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	resp = map[string]interface{}{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["credentials_file_exists"] != false {
		t.Error("expected credentials_file_exists false for missing file")
	}
}
