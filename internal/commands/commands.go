package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"agentsx/internal/consent"
	"agentsx/internal/locate"
	"agentsx/internal/mode"
	"agentsx/internal/npmx"
	"agentsx/internal/update"
)

// Mode implements `agentsx mode [agents|claude]`: with no argument it prints
// the persisted mode, otherwise it switches it.
func Mode(args []string, modePath string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprintln(out, mode.Load(modePath))
		return nil
	}
	var value string
	switch strings.ToLower(args[0]) {
	case "agents":
		value = mode.Agents
	case "claude":
		value = mode.Claude
	default:
		return fmt.Errorf("unknown mode %q (want agents or claude)", args[0])
	}
	if err := mode.Save(modePath, value); err != nil {
		return fmt.Errorf("save mode: %w", err)
	}
	fmt.Fprintf(out, "Mode set to %s\n", value)
	return nil
}

type statusInfo struct {
	Mode          string `json:"mode"`
	InstallRoot   string `json:"install_root"`
	InstallDir    string `json:"install_dir"`
	Global        bool   `json:"global"`
	Entry         string `json:"entry,omitempty"`
	Patched       string `json:"patched,omitempty"`
	PatchedExists bool   `json:"patched_exists"`
	Consent       bool   `json:"consent"`
	Pinned        string `json:"pinned_version,omitempty"`
	Installed     string `json:"installed_version,omitempty"`
}

// Status implements `agentsx status [--format table|json]`.
func Status(args []string, modePath, startDir string, npm npmx.NPM, out io.Writer) error {
	format := "table"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--format":
			if i+1 >= len(args) {
				return fmt.Errorf("--format requires a value")
			}
			format = args[i+1]
			i++
		default:
			return fmt.Errorf("unknown arg %q", args[i])
		}
	}
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}

	inst := locate.Resolve(npm, startDir)
	info := statusInfo{
		Mode:        mode.Load(modePath),
		InstallRoot: inst.Root,
		InstallDir:  inst.Dir,
		Global:      inst.Global,
		Installed:   update.InstalledVersion(inst.Dir),
	}
	if entry, err := locate.FindEntry(inst.Dir); err == nil {
		info.Entry = entry.Original
		info.Patched = entry.Patched
		if _, err := os.Stat(entry.Patched); err == nil {
			info.PatchedExists = true
		}
		info.Consent = consent.Granted(inst.Dir, entry.Patched)
	}
	if pinned, err := update.PinnedVersion(filepath.Join(inst.Root, "package.json")); err == nil {
		info.Pinned = pinned
	}

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintf(out, "Mode:         %s\n", info.Mode)
	fmt.Fprintf(out, "Install root: %s\n", info.InstallRoot)
	fmt.Fprintf(out, "Install dir:  %s (global=%v)\n", info.InstallDir, info.Global)
	if info.Entry != "" {
		fmt.Fprintf(out, "Entry:        %s\n", info.Entry)
		fmt.Fprintf(out, "Patched:      %s (exists=%v)\n", info.Patched, info.PatchedExists)
	} else {
		fmt.Fprintf(out, "Entry:        not found\n")
	}
	fmt.Fprintf(out, "Consent:      %v\n", info.Consent)
	if info.Pinned != "" {
		fmt.Fprintf(out, "Pinned:       %s\n", info.Pinned)
	}
	if info.Installed != "" {
		fmt.Fprintf(out, "Installed:    %s\n", info.Installed)
	}
	return nil
}

// Restore removes the patched entry file and the consent flag so the next
// AGENTS-mode run re-asks for consent against a clean install.
func Restore(startDir string, npm npmx.NPM, out io.Writer) error {
	inst := locate.Resolve(npm, startDir)
	targets := []string{consent.FlagPath(inst.Dir)}
	if entry, err := locate.FindEntry(inst.Dir); err == nil {
		targets = append(targets, entry.Patched)
	}
	removed := 0
	for _, p := range targets {
		err := os.Remove(p)
		switch {
		case err == nil:
			fmt.Fprintf(out, "Removed %s\n", p)
			removed++
		case !os.IsNotExist(err):
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	if removed == 0 {
		fmt.Fprintln(out, "Nothing to restore.")
	}
	return nil
}
