package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestSetupJSONLevel(t *testing.T) {
	var buf bytes.Buffer
	l := setup(&buf, "warn", "json")

	l.Info("dropped")
	l.Warn("kept", "name", "KQ UMa")

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered at warn level: %s", out)
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("output is not json: %v (%s)", err, out)
	}
	if rec["msg"] != "kept" || rec["name"] != "KQ UMa" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestSetupTextDefault(t *testing.T) {
	var buf bytes.Buffer
	l := setup(&buf, "", "")
	l.Debug("hidden")
	l.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "msg=shown") {
		t.Fatalf("unexpected text output: %q", out)
	}
}
