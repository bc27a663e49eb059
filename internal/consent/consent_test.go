package consent

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestAccepted(t *testing.T) {
	yes := []string{"y", "Y", "yes", "YES", " Yes "}
	no := []string{"", "n", "no", "q", "maybe", "yess"}
	for _, a := range yes {
		if !Accepted(a) {
			t.Errorf("Accepted(%q) = false", a)
		}
	}
	for _, a := range no {
		if Accepted(a) {
			t.Errorf("Accepted(%q) = true", a)
		}
	}
}

func TestGrantedNeedsFlagAndPatchedFile(t *testing.T) {
	dir := t.TempDir()
	patched := filepath.Join(dir, "cli-agents.js")

	if Granted(dir, patched) {
		t.Fatalf("granted with nothing on disk")
	}
	if err := os.WriteFile(FlagPath(dir), nil, 0o644); err != nil {
		t.Fatalf("write flag: %v", err)
	}
	// Flag alone is not enough: a reinstall removed the patched file, so
	// consent must be re-asked.
	if Granted(dir, patched) {
		t.Fatalf("granted without patched file")
	}
	if err := os.WriteFile(patched, []byte("x"), 0o755); err != nil {
		t.Fatalf("write patched: %v", err)
	}
	if !Granted(dir, patched) {
		t.Fatalf("expected granted with both files")
	}
}

func TestAskAcceptWritesFlag(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	prompt := func(q string) (string, error) { return "yes", nil }

	if err := Ask(dir, prompt, &out); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if _, err := os.Stat(FlagPath(dir)); err != nil {
		t.Fatalf("flag not written: %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("AGENTS.md")) {
		t.Fatalf("expected notice before prompt, got %q", out.String())
	}
}

func TestAskDeclineLeavesNoFlag(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	prompt := func(q string) (string, error) { return "n", nil }

	if err := Ask(dir, prompt, &out); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if _, err := os.Stat(FlagPath(dir)); err == nil {
		t.Fatalf("flag must not exist after decline")
	}
}

func TestAskPromptErrorIsDecline(t *testing.T) {
	prompt := func(q string) (string, error) { return "", errors.New("interrupted") }
	if err := Ask(t.TempDir(), prompt, &bytes.Buffer{}); !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
}
