// Package runner executes the external programs ship drives: git, the
// ecosystem build tools, and user-configured hook commands.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ErrCommandFailed wraps every non-zero child exit.
var ErrCommandFailed = errors.New("command failed")

// Runner runs external commands sequentially. In silent mode the child's
// stdout and stderr are discarded for the duration of the call and the
// command line is not echoed.
type Runner struct {
	Dir    string
	Silent bool
	Logger *logrus.Logger

	// Stdout/Stderr receive child output in non-silent mode. They default
	// to the process streams and exist so tests can capture output.
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner executing commands in dir.
func New(dir string, silent bool, logger *logrus.Logger) *Runner {
	return &Runner{
		Dir:    dir,
		Silent: silent,
		Logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run executes program with args and waits for it. A non-zero exit status
// is returned as an ErrCommandFailed naming the command and the code.
// There is no retry: the wrapped operations (git push, build tools) are
// not safe to blindly re-run.
func (r *Runner) Run(program string, args ...string) error {
	if !r.Silent {
		r.Logger.Infof("running: %s", commandLine(program, args))
	}

	cmd := exec.Command(program, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin

	// Scoped redirection: the writers are chosen per call, so the process
	// streams are untouched once Run returns, whatever the outcome.
	if r.Silent {
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	} else {
		cmd.Stdout = r.stdout()
		cmd.Stderr = r.stderr()
	}

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exited with code %d", ErrCommandFailed, commandLine(program, args), exitErr.ExitCode())
	}
	return fmt.Errorf("%w: %s: %v", ErrCommandFailed, commandLine(program, args), err)
}

// Output executes program with args and returns its trimmed stdout.
// Child stderr is discarded in silent mode, passed through otherwise.
func (r *Runner) Output(program string, args ...string) (string, error) {
	cmd := exec.Command(program, args...)
	cmd.Dir = r.Dir
	if r.Silent {
		cmd.Stderr = io.Discard
	} else {
		cmd.Stderr = r.stderr()
	}

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("%w: %s exited with code %d", ErrCommandFailed, commandLine(program, args), exitErr.ExitCode())
		}
		return "", fmt.Errorf("%w: %s: %v", ErrCommandFailed, commandLine(program, args), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RunScript executes a shell command string via sh -c. Hook commands from
// the config file go through here.
func (r *Runner) RunScript(script string) error {
	return r.Run("sh", "-c", script)
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}

// commandLine renders a command for logging, with newlines escaped so the
// echo stays on one line.
func commandLine(program string, args []string) string {
	line := program
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	return strings.ReplaceAll(line, "\n", `\n`)
}
