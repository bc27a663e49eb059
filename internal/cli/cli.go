package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"agentsx/internal/commands"
	"agentsx/internal/consent"
	"agentsx/internal/dispatch"
	"agentsx/internal/locate"
	"agentsx/internal/mode"
	"agentsx/internal/npmx"
	"agentsx/internal/version"
)

// Execute is the agentsx entrypoint. Wrapper subcommands are handled here;
// every other invocation dispatches into the wrapped tool, with any
// unrecognized arguments passed through to its own parser.
func Execute(args []string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("resolve home dir: %w", err)
	}
	modePath := mode.Path(home)
	npm := &npmx.CLI{}

	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println(version.Version)
			return nil
		case "mode":
			return commands.Mode(args[1:], modePath, os.Stdout)
		case "status":
			start, err := startDir()
			if err != nil {
				return err
			}
			return commands.Status(args[1:], modePath, start, npm, os.Stdout)
		case "restore":
			start, err := startDir()
			if err != nil {
				return err
			}
			return commands.Restore(start, npm, os.Stdout)
		case "help":
			return usage()
		}
	}

	start, err := startDir()
	if err != nil {
		return err
	}
	env := dispatch.Env{
		StartDir:    start,
		ModePath:    modePath,
		NPM:         npm,
		Node:        npm,
		Prompt:      consent.LinerPrompt,
		Interactive: consent.StdinIsTTY(),
	}
	err = dispatch.Run(args, env, os.Stdin, os.Stdout, os.Stderr)
	// Mirror the wrapped tool's exit code instead of reporting it as a
	// wrapper failure.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		os.Exit(exitErr.ExitCode())
	}
	return err
}

// startDir anchors the package-root walk at the agentsx binary's directory
// so a local install resolves relative to where agentsx itself lives.
func startDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate agentsx binary: %w", err)
	}
	return filepath.Dir(exe), nil
}

func usage() error {
	prog := filepath.Base(os.Args[0])
	fmt.Printf(`Usage: %s [--claude|--no-agents] [ARGS ...]

Wraps the %s CLI. In AGENTS mode (the default) the tool's entry
file is patched so CLAUDE.md references read AGENTS.md, then launched.
All ARGS are passed through to the wrapped CLI untouched.

Options:
  --claude, --no-agents   Launch the unmodified CLI for this run only

Subcommands:
  mode [agents|claude]    Show or set the persisted mode
  status [--format table|json]
                          Show resolved install, mode, and consent state
  restore                 Remove the patched entry file and consent flag
  version                 Print the agentsx version
  help                    Show this help

Environment:
  AGENTSX_DEBUG=1         Print diagnostic lines
`, prog, locate.Package)
	return nil
}
