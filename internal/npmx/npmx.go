package npmx

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// NPM abstracts npm operations for testability.
type NPM interface {
	// RootGlobal returns npm's global node_modules directory.
	RootGlobal() (string, error)
	// LatestVersion returns the newest published version of pkg.
	LatestVersion(pkg string) (string, error)
	// Install runs `npm install` in dir with visible output.
	Install(dir string, out, errOut io.Writer) error
}

// Node abstracts launching a script under the node runtime.
type Node interface {
	Launch(script string, args []string, in io.Reader, out, errOut io.Writer) error
}

// CLI implements NPM and Node using the local npm and node commands.
type CLI struct{}

func npmOutput(args ...string) ([]byte, error) {
	cmd := exec.Command("npm", args...)
	return cmd.Output()
}

func (CLI) RootGlobal() (string, error) {
	out, err := npmOutput("root", "-g")
	if err != nil {
		return "", fmt.Errorf("npm root -g failed: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (CLI) LatestVersion(pkg string) (string, error) {
	out, err := npmOutput("view", pkg, "version")
	if err != nil {
		return "", fmt.Errorf("npm view %s version failed: %w", pkg, err)
	}
	v := strings.TrimSpace(string(out))
	if v == "" {
		return "", fmt.Errorf("npm view %s returned no version", pkg)
	}
	return v, nil
}

func (CLI) Install(dir string, out, errOut io.Writer) error {
	cmd := exec.Command("npm", "install")
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = errOut
	return cmd.Run()
}

// Launch runs node on the given script with wired stdio. A non-zero child
// exit surfaces as *exec.ExitError so the caller can mirror the code.
func (CLI) Launch(script string, args []string, in io.Reader, out, errOut io.Writer) error {
	cmd := exec.Command("node", append([]string{script}, args...)...)
	cmd.Stdin = in
	cmd.Stdout = out
	cmd.Stderr = errOut
	return cmd.Run()
}
