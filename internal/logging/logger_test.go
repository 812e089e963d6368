package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func TestNewWritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "info")

	log.Info("import complete", map[string]interface{}{
		"owner_id": "abc",
		"vehicles": 3,
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "import complete" {
		t.Errorf("msg = %v, want import complete", entry["msg"])
	}
	if entry["owner_id"] != "abc" {
		t.Errorf("owner_id = %v, want abc", entry["owner_id"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v, want info", entry["level"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")

	log.Debug("hidden")
	log.Info("also hidden")
	if buf.Len() != 0 {
		t.Errorf("below-threshold entries were written: %q", buf.String())
	}

	log.Warn("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("warn entry was not written")
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "chatty")

	log.Debug("hidden")
	log.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug entry written at fallback info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info entry missing at fallback info level")
	}
}

func TestErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "error")

	log.Error("import failed", fmt.Errorf("disk full"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["error"] != "disk full" {
		t.Errorf("error field = %v, want disk full", entry["error"])
	}
}
