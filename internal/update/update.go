package update

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"agentsx/internal/debug"
	"agentsx/internal/locate"
	"agentsx/internal/npmx"
)

const manifestName = "package.json"

// manifest sections that may carry the wrapped tool's version pin, in
// lookup order.
var dependencyKeys = []string{"dependencies", "devDependencies"}

// Check compares the manifest's pinned version of the wrapped tool with the
// registry's latest and refreshes the install when they diverge. Every
// lookup failure is absorbed: an unreachable registry must never block the
// wrapped tool from launching.
func Check(npm npmx.NPM, inst locate.Install, out, errOut io.Writer) {
	latest, err := npm.LatestVersion(locate.Package)
	if err != nil {
		debug.Logf("update check skipped: %v", err)
		return
	}
	if inst.Global {
		if v := InstalledVersion(inst.Dir); v != "" {
			debug.Logf("global %s version: %s", locate.Package, v)
		}
	}
	manifest := filepath.Join(inst.Root, manifestName)
	pinned, err := PinnedVersion(manifest)
	if err != nil {
		debug.Logf("update check skipped: %v", err)
		return
	}
	switch {
	case pinned == "latest":
		// A floating pin resolves freshly on every run.
		runInstall(npm, inst.Root, out, errOut)
	case pinned != latest:
		fmt.Fprintf(out, "Updating %s %s -> %s\n", locate.Package, pinned, latest)
		if err := rewritePin(manifest, latest); err != nil {
			fmt.Fprintf(errOut, "Warning: could not update %s: %v\n", manifestName, err)
			return
		}
		runInstall(npm, inst.Root, out, errOut)
	}
}

// runInstall refreshes dependencies; a failed install is reported and the
// run continues with whatever was previously installed.
func runInstall(npm npmx.NPM, dir string, out, errOut io.Writer) {
	if err := npm.Install(dir, out, errOut); err != nil {
		fmt.Fprintf(errOut, "Warning: npm install failed: %v\n", err)
	}
}

// PinnedVersion reads the wrapped tool's version pin from a package.json.
func PinnedVersion(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	for _, key := range dependencyKeys {
		if deps, ok := data[key].(map[string]any); ok {
			if v, ok := deps[locate.Package].(string); ok {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("%s does not depend on %s", path, locate.Package)
}

// rewritePin updates the wrapped tool's version pin in place, preserving
// the rest of the manifest.
func rewritePin(path, version string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	updated := false
	for _, key := range dependencyKeys {
		if deps, ok := data[key].(map[string]any); ok {
			if _, ok := deps[locate.Package]; ok {
				deps[locate.Package] = version
				updated = true
			}
		}
	}
	if !updated {
		return fmt.Errorf("no %s pin in %s", locate.Package, path)
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(out, '\n'), 0o644)
}

// InstalledVersion reads the concrete version of an installed copy, or ""
// when it cannot be determined. Diagnostic use only.
func InstalledVersion(dir string) string {
	raw, err := os.ReadFile(filepath.Join(dir, manifestName))
	if err != nil {
		return ""
	}
	var m struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return ""
	}
	return m.Version
}
