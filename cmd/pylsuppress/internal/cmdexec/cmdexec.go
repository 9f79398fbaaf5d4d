package cmdexec

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/advdv/pylsuppress/cmd/pylsuppress/internal/config"
	"github.com/cockroachdb/errors"
)

// Executor provides a common interface for executing external commands.
type Executor interface {
	// WithStderr returns a new Executor that forwards the child's stderr to w.
	WithStderr(w io.Writer) Executor

	// WithEnv returns a new Executor with an additional environment variable.
	WithEnv(key, value string) Executor

	// Dir returns the working directory for this executor.
	Dir() string

	// Capture executes a command and returns its stdout together with the exit
	// status. A non-zero exit status is reported in the result, not as an error.
	Capture(ctx context.Context, name string, args ...string) (Capture, error)
}

// Capture is the observable result of a finished command.
type Capture struct {
	Stdout   string
	ExitCode int
}

// executor is the default implementation of Executor.
type executor struct {
	dir    string
	stderr io.Writer
	env    []string
}

// New creates an Executor from config.Config. Commands run in the working
// directory with the configured environment added.
func New(cfg config.Config) Executor {
	exec := NewWithDir(cfg.WorkDir)
	for _, key := range cfg.Inner.EnvKeys() {
		exec = exec.WithEnv(key, cfg.Inner.Env[key])
	}
	return exec
}

// NewWithDir creates an Executor with an explicit working directory.
func NewWithDir(dir string) Executor {
	return &executor{
		dir: dir,
	}
}

func (e *executor) WithStderr(w io.Writer) Executor {
	return &executor{
		dir:    e.dir,
		stderr: w,
		env:    e.env,
	}
}

func (e *executor) WithEnv(key, value string) Executor {
	newEnv := make([]string, len(e.env), len(e.env)+1)
	copy(newEnv, e.env)
	newEnv = append(newEnv, key+"="+value)

	return &executor{
		dir:    e.dir,
		stderr: e.stderr,
		env:    newEnv,
	}
}

func (e *executor) Dir() string {
	return e.dir
}

func (e *executor) Capture(ctx context.Context, name string, args ...string) (Capture, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.dir
	if e.stderr != nil {
		cmd.Stderr = e.stderr
	}
	e.applyEnv(cmd)

	output, err := cmd.Output()
	if err == nil {
		return Capture{Stdout: string(output)}, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Capture{}, errors.Wrapf(ctxErr, "%s interrupted", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Capture{Stdout: string(output), ExitCode: exitErr.ExitCode()}, nil
	}

	return Capture{}, errors.Wrapf(err, "%s failed", name)
}

func (e *executor) applyEnv(cmd *exec.Cmd) {
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}
}
