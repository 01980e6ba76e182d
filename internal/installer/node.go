package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds the wait for output pipes still held by grandchildren
// after the process is killed.
const waitDelay = 5 * time.Second

// NodeInstaller runs a Node.js package manager as a child process.
type NodeInstaller struct {
	Command string
	Args    []string

	// Stdout and Stderr receive the live process output; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Install runs `<Command> <Args...>` in dir and waits for it to exit.
func (n *NodeInstaller) Install(ctx context.Context, dir string) (*Output, error) {
	bin, err := exec.LookPath(n.Command)
	if err != nil {
		return nil, fmt.Errorf("installing dependencies requires %s: %w", n.Command, err)
	}

	if info, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("install directory %s: %w", dir, err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("install directory %s is not a directory", dir)
	}

	cmd := exec.CommandContext(ctx, bin, n.Args...)
	cmd.Dir = dir
	cmd.Env = buildEnv(os.Environ())
	cmd.WaitDelay = waitDelay

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(orDiscard(n.Stdout), &stdoutBuf)
	cmd.Stderr = io.MultiWriter(orDiscard(n.Stderr), &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Command: strings.Join(append([]string{n.Command}, n.Args...), " "),
		Stdout:  stdoutBuf.String(),
		Stderr:  stderrBuf.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		output.ExitCode = -1
		return output, fmt.Errorf("running %s: %w", output.Command, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("running %s: %w", output.Command, err)
	}

	output.ExitCode = 0
	return output, nil
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// buildEnv inherits the current environment and silences package-manager
// chatter that has no place in a scaffolding run.
func buildEnv(env []string) []string {
	env = setEnv(env, "npm_config_fund", "false")
	env = setEnv(env, "npm_config_update_notifier", "false")
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
