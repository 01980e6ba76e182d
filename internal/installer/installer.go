package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Installer installs the dependencies declared for a project.
type Installer interface {
	// Install runs in dir. A process that starts and exits non-zero is
	// reported through Output.ExitCode with a nil error; the error return is
	// for launch failures, I/O failures, and context cancellation.
	Install(ctx context.Context, dir string) (*Output, error)
}

// Output captures the result of an install.
type Output struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the install process exited cleanly.
func (o *Output) Succeeded() bool {
	return o != nil && o.ExitCode == 0
}

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerPNPM = "pnpm"
	ManagerYarn = "yarn"
)

// Managers lists the supported package manager names.
var Managers = []string{ManagerNPM, ManagerPNPM, ManagerYarn}

// ErrUnsupportedManager is returned for a package manager not in Managers.
var ErrUnsupportedManager = errors.New("unsupported package manager")

// CheckManager returns an error wrapping ErrUnsupportedManager unless name
// is one of Managers.
func CheckManager(name string) error {
	if slices.Contains(Managers, name) {
		return nil
	}
	return fmt.Errorf("%w %q: supported package managers are %q", ErrUnsupportedManager, name, Managers)
}

// Dispatch returns the Installer for the named package manager. Install
// output is streamed to stdout and stderr as well as captured; nil writers
// discard it. Unknown names yield an Installer that always fails.
func Dispatch(manager string, stdout, stderr io.Writer) Installer {
	switch manager {
	case ManagerNPM, ManagerPNPM, ManagerYarn:
		return &NodeInstaller{
			Command: manager,
			Args:    []string{"install"},
			Stdout:  stdout,
			Stderr:  stderr,
		}
	default:
		return &unknownInstaller{name: manager}
	}
}

// unknownInstaller is returned when the package manager is not recognized.
type unknownInstaller struct {
	name string
}

func (u *unknownInstaller) Install(_ context.Context, _ string) (*Output, error) {
	return nil, CheckManager(u.name)
}
