package dispatch

import (
	"fmt"
	"io"

	"agentsx/internal/consent"
	"agentsx/internal/debug"
	"agentsx/internal/locate"
	"agentsx/internal/mode"
	"agentsx/internal/npmx"
	"agentsx/internal/patch"
	"agentsx/internal/update"
)

// Options capture the wrapper-owned flags; everything else is passed
// through untouched to the wrapped tool's own argument parser.
type Options struct {
	ForceClaude bool
	Passthrough []string
}

// ParseArgs strips agentsx's flags and keeps the remaining args in order.
func ParseArgs(args []string) Options {
	var o Options
	for _, a := range args {
		switch a {
		case "--claude", "--no-agents":
			o.ForceClaude = true
		default:
			o.Passthrough = append(o.Passthrough, a)
		}
	}
	return o
}

// Env carries the collaborators Run needs. The CLI wires the real npm/node
// commands and the liner prompt; tests inject fakes.
type Env struct {
	StartDir    string // anchor for the package-root walk
	ModePath    string // persisted mode file
	NPM         npmx.NPM
	Node        npmx.Node
	Prompt      consent.PromptFunc
	Interactive bool // stdin is a terminal
}

// Run locates the wrapped tool, refreshes it, and launches either the
// original or the patched entry file depending on mode and flags.
func Run(args []string, env Env, in io.Reader, out, errOut io.Writer) error {
	o := ParseArgs(args)

	inst := locate.Resolve(env.NPM, env.StartDir)
	debug.Logf("install root: %s", inst.Root)
	debug.Logf("install dir: %s (global=%v)", inst.Dir, inst.Global)

	// Both modes refresh before dispatch.
	update.Check(env.NPM, inst, out, errOut)

	entry, err := locate.FindEntry(inst.Dir)
	if err != nil {
		return err
	}

	if o.ForceClaude || mode.Load(env.ModePath) == mode.Claude {
		debug.Logf("launching unmodified entry %s", entry.Original)
		return env.Node.Launch(entry.Original, o.Passthrough, in, out, errOut)
	}

	if !consent.Granted(inst.Dir, entry.Patched) {
		if !env.Interactive {
			return fmt.Errorf("consent required but stdin is not a terminal; run agentsx interactively once, or use --claude")
		}
		if err := consent.Ask(inst.Dir, env.Prompt, out); err != nil {
			return err
		}
	}

	if err := patch.WritePatched(entry.Original, entry.Patched, !inst.Global); err != nil {
		return err
	}
	debug.Logf("launching patched entry %s", entry.Patched)
	return env.Node.Launch(entry.Patched, o.Passthrough, in, out, errOut)
}
