package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestProductionLogsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "production")

	log.CollaboratorDegraded("court_case", "job-1", errors.New("timeout"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON record, got %q", buf.String())
	}
	if record["msg"] != "collaborator_degraded" || record["collaborator"] != "court_case" || record["error"] != "timeout" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestDevelopmentLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "Development")

	log.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("expected debug output, got %q", buf.String())
	}
}

func TestServerErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "production")

	log.HTTPRequest("GET", "/api/v1/jobs", 503, 1.5, "10.0.0.1")
	if !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Fatalf("expected error level, got %q", buf.String())
	}
}
