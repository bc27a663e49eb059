package consent

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"agentsx/internal/debug"
	"agentsx/internal/locate"
)

// FlagName marks a granted consent inside the wrapped tool's install dir.
const FlagName = ".agentsx-consent"

// ErrDeclined is returned when the user does not approve patching.
var ErrDeclined = errors.New("patching declined; run again and answer yes, or use --claude")

// FlagPath returns the consent sentinel location for an install.
func FlagPath(installDir string) string {
	return filepath.Join(installDir, FlagName)
}

// Granted reports whether consent was previously recorded for this install
// and the patched entry file still exists. A reinstall of the wrapped tool
// removes the patched file and so forces re-consent.
func Granted(installDir, patchedPath string) bool {
	if _, err := os.Stat(patchedPath); err != nil {
		return false
	}
	_, err := os.Stat(FlagPath(installDir))
	return err == nil
}

// PromptFunc asks the user a question and returns the raw answer.
// Production wires LinerPrompt; tests inject canned answers.
type PromptFunc func(question string) (string, error)

// LinerPrompt reads one line from the terminal.
func LinerPrompt(question string) (string, error) {
	l := liner.NewLiner()
	defer l.Close()
	return l.Prompt(question)
}

// StdinIsTTY reports whether stdin is attached to a terminal.
func StdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Accepted reports whether an answer counts as an affirmative yes.
func Accepted(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// Ask runs the one-time consent gate for an install. On acceptance the flag
// file is written best-effort: a failed write means re-asking on the next
// run, not aborting this one.
func Ask(installDir string, prompt PromptFunc, out io.Writer) error {
	fmt.Fprintf(out, "agentsx rewrites CLAUDE.md references to AGENTS.md inside the installed copy of %s.\n", locate.Package)
	answer, err := prompt("Patch this install? [y/N] ")
	if err != nil || !Accepted(answer) {
		return ErrDeclined
	}
	if err := os.WriteFile(FlagPath(installDir), nil, 0o644); err != nil {
		debug.Logf("could not record consent: %v", err)
	}
	return nil
}
