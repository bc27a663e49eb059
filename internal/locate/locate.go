package locate

import (
	"fmt"
	"os"
	"path/filepath"

	"agentsx/internal/debug"
	"agentsx/internal/npmx"
)

const (
	// Package is the npm name of the wrapped tool.
	Package = "@anthropic-ai/claude-code"
	// selfPackage is agentsx's own npm name, used for the nested fallback
	// when agentsx is installed as a dependency of another package.
	selfPackage = "agentsx"
)

// Install describes a resolved installation of the wrapped tool.
type Install struct {
	Root   string // nearest enclosing package root (contains node_modules)
	Dir    string // wrapped tool's install directory
	Global bool   // Dir came from npm's global root
}

// Entry is a located entry file and the sibling path its patched copy uses.
type Entry struct {
	Original string
	Patched  string
}

// entryCandidates lists the module-file conventions the wrapped tool has
// shipped under, in preference order. The candidate that exists determines
// the patched sibling's name.
var entryCandidates = []struct{ name, patched string }{
	{"cli.js", "cli-agents.js"},
	{"cli.mjs", "cli-agents.mjs"},
}

// FindPackageRoot walks parent directories from start until one contains a
// node_modules directory. Reports false when the filesystem root is reached
// without a hit.
func FindPackageRoot(start string) (string, bool) {
	current := filepath.Clean(start)
	for {
		if fi, err := os.Stat(filepath.Join(current, "node_modules")); err == nil && fi.IsDir() {
			return current, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

// GlobalInstallDir asks npm for its global root and returns the wrapped
// tool's directory under it. Absence of a global install is not an error
// and must never abort startup.
func GlobalInstallDir(npm npmx.NPM) (string, bool) {
	root, err := npm.RootGlobal()
	if err != nil || root == "" {
		debug.Logf("global install lookup failed: %v", err)
		return "", false
	}
	dir := filepath.Join(root, Package)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		return dir, true
	}
	return "", false
}

// LocalInstallDir computes the wrapped tool's path under root, falling back
// to the nested copy used when agentsx is itself an installed dependency.
// The returned path is not revalidated: a missing install surfaces later as
// a fatal entry-file error naming the path.
func LocalInstallDir(root string) string {
	primary := filepath.Join(root, "node_modules", Package)
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	return filepath.Join(root, "node_modules", selfPackage, "node_modules", Package)
}

// Resolve picks the wrapped tool's installation, preferring a global install
// when one exists on disk.
func Resolve(npm npmx.NPM, start string) Install {
	root, ok := FindPackageRoot(start)
	if !ok {
		root = filepath.Clean(start)
	}
	if dir, ok := GlobalInstallDir(npm); ok {
		return Install{Root: root, Dir: dir, Global: true}
	}
	return Install{Root: root, Dir: LocalInstallDir(root)}
}

// FindEntry locates the wrapped tool's entry file in dir.
func FindEntry(dir string) (Entry, error) {
	for _, c := range entryCandidates {
		original := filepath.Join(dir, c.name)
		if fi, err := os.Stat(original); err == nil && !fi.IsDir() {
			return Entry{Original: original, Patched: filepath.Join(dir, c.patched)}, nil
		}
	}
	return Entry{}, fmt.Errorf("no entry file (cli.js or cli.mjs) in %s; is %s installed?", dir, Package)
}
