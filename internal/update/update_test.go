package update

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"agentsx/internal/locate"
	"agentsx/internal/npmx"
)

func writeManifest(t *testing.T, root, pin string) string {
	t.Helper()
	path := filepath.Join(root, "package.json")
	content := `{"name":"host","dependencies":{"` + locate.Package + `":"` + pin + `"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestCheckNoopWhenVersionsMatch(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "1.2.3")
	f := &npmx.Fake{LatestVal: "1.2.3"}
	var out, errOut bytes.Buffer

	Check(f, locate.Install{Root: root}, &out, &errOut)

	if len(f.InstallDirs) != 0 {
		t.Fatalf("expected no install, got %v", f.InstallDirs)
	}
	if out.Len() != 0 || errOut.Len() != 0 {
		t.Fatalf("expected silence, got out=%q err=%q", out.String(), errOut.String())
	}
}

func TestCheckFloatingPinAlwaysInstalls(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "latest")
	f := &npmx.Fake{LatestVal: "9.9.9"}
	var out, errOut bytes.Buffer

	Check(f, locate.Install{Root: root}, &out, &errOut)

	if len(f.InstallDirs) != 1 || f.InstallDirs[0] != root {
		t.Fatalf("expected one install in %s, got %v", root, f.InstallDirs)
	}
	// The floating pin itself stays untouched.
	if pinned, err := PinnedVersion(path); err != nil || pinned != "latest" {
		t.Fatalf("pin = %q err=%v", pinned, err)
	}
}

func TestCheckRewritesPinAndInstalls(t *testing.T) {
	root := t.TempDir()
	path := writeManifest(t, root, "1.0.0")
	f := &npmx.Fake{LatestVal: "1.0.1"}
	var out, errOut bytes.Buffer

	Check(f, locate.Install{Root: root}, &out, &errOut)

	if pinned, err := PinnedVersion(path); err != nil || pinned != "1.0.1" {
		t.Fatalf("pin = %q err=%v", pinned, err)
	}
	if len(f.InstallDirs) != 1 {
		t.Fatalf("expected one install, got %v", f.InstallDirs)
	}
	if !strings.Contains(out.String(), "1.0.0 -> 1.0.1") {
		t.Fatalf("expected update notice, got %q", out.String())
	}
}

func TestCheckAbsorbsRegistryFailure(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "1.0.0")
	f := &npmx.Fake{LatestErr: errors.New("network down")}
	var out, errOut bytes.Buffer

	Check(f, locate.Install{Root: root}, &out, &errOut)

	if len(f.InstallDirs) != 0 {
		t.Fatalf("expected no install, got %v", f.InstallDirs)
	}
	if errOut.Len() != 0 {
		t.Fatalf("registry failure should stay quiet, got %q", errOut.String())
	}
}

func TestCheckAbsorbsMissingManifest(t *testing.T) {
	f := &npmx.Fake{LatestVal: "1.0.0"}
	var out, errOut bytes.Buffer
	Check(f, locate.Install{Root: t.TempDir()}, &out, &errOut)
	if len(f.InstallDirs) != 0 || errOut.Len() != 0 {
		t.Fatalf("expected quiet no-op, installs=%v err=%q", f.InstallDirs, errOut.String())
	}
}

func TestCheckWarnsOnInstallFailureAndContinues(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "latest")
	f := &npmx.Fake{LatestVal: "1.0.0", InstallErr: errors.New("EACCES")}
	var out, errOut bytes.Buffer

	Check(f, locate.Install{Root: root}, &out, &errOut)

	if !strings.Contains(errOut.String(), "npm install failed") {
		t.Fatalf("expected warning, got %q", errOut.String())
	}
}

func TestRewritePinPreservesRestOfManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "package.json")
	content := `{"name":"host","scripts":{"start":"node ."},"dependencies":{"` + locate.Package + `":"1.0.0","left":"2.0.0"}}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := rewritePin(path, "1.0.1"); err != nil {
		t.Fatalf("rewritePin: %v", err)
	}
	raw, _ := os.ReadFile(path)
	for _, want := range []string{`"1.0.1"`, `"left": "2.0.0"`, `"start": "node ."`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("manifest missing %s: %s", want, raw)
		}
	}
}

func TestInstalledVersion(t *testing.T) {
	dir := t.TempDir()
	if v := InstalledVersion(dir); v != "" {
		t.Fatalf("expected empty for missing manifest, got %q", v)
	}
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"version":"3.1.4"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if v := InstalledVersion(dir); v != "3.1.4" {
		t.Fatalf("InstalledVersion = %q", v)
	}
}
