package commands

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionVariables(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Commit == "" {
		t.Error("Commit should not be empty")
	}
	if BuildDate == "" {
		t.Error("BuildDate should not be empty")
	}
}

func TestVersionCommand(t *testing.T) {
	h := newHarness(t, nil)

	if err := h.run("version"); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(h.stdout.String(), "tgbot "+Version) {
		t.Errorf("stdout = %q", h.stdout.String())
	}
}

func TestVersionCommandJSON(t *testing.T) {
	h := newHarness(t, nil)

	if err := h.run("--json", "version"); err != nil {
		t.Fatalf("version error = %v", err)
	}

	var out map[string]string
	if err := json.Unmarshal(h.stdout.Bytes(), &out); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, h.stdout.String())
	}
	if out["version"] != Version || out["goVersion"] == "" {
		t.Errorf("output = %v", out)
	}
}
