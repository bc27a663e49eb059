package npmx

import "io"

// Fake is a simple in-memory NPM/Node implementation for tests.
type Fake struct {
	RootGlobalVal string
	RootGlobalErr error
	LatestVal     string
	LatestErr     error
	InstallErr    error
	LaunchErr     error

	LatestCalls []string
	InstallDirs []string
	LaunchCalls [][]string
}

func (f *Fake) RootGlobal() (string, error) { return f.RootGlobalVal, f.RootGlobalErr }

func (f *Fake) LatestVersion(pkg string) (string, error) {
	f.LatestCalls = append(f.LatestCalls, pkg)
	return f.LatestVal, f.LatestErr
}

func (f *Fake) Install(dir string, out, errOut io.Writer) error {
	f.InstallDirs = append(f.InstallDirs, dir)
	return f.InstallErr
}

func (f *Fake) Launch(script string, args []string, in io.Reader, out, errOut io.Writer) error {
	f.LaunchCalls = append(f.LaunchCalls, append([]string{script}, args...))
	return f.LaunchErr
}
