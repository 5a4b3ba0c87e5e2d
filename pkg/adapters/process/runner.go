package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/aretw0/baxter/pkg/template"
)

// ErrNotRegistered is returned for commands outside the allow-list.
var ErrNotRegistered = errors.New("command not registered")

// Runner executes local processes on behalf of actions.
// It follows a Strict Registry pattern for security (Allow-Listing).
type Runner struct {
	registry map[string]CommandConfig
	baseDir  string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithCommands populates the allow-list, overriding same-named entries.
func WithCommands(commands map[string]CommandConfig) RunnerOption {
	return func(r *Runner) {
		for name, c := range commands {
			r.registry[name] = c
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// NewRunner creates a new Process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]CommandConfig),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a trusted command to the allow-list.
func (r *Runner) Register(name string, command string, args ...string) {
	r.registry[name] = CommandConfig{
		Command: command,
		Args:    args,
	}
}

// Run executes the named command and returns its trimmed stdout.
// Every argument is formatted against values and passed as a separate argv
// entry; values are also exported as BAXTER_ARG_<KEY> environment variables.
// No shell is involved.
func (r *Runner) Run(ctx context.Context, name string, values map[string]any) (string, error) {
	proc, ok := r.registry[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}

	args := make([]string, 0, len(proc.Args))
	for _, a := range proc.Args {
		formatted, err := template.Format(a, values)
		if err != nil {
			return "", fmt.Errorf("command %s: %w", name, err)
		}
		args = append(args, formatted)
	}

	cmd := exec.CommandContext(ctx, proc.Command, args...)
	cmd.Dir = r.baseDir

	env := cmd.Environ()
	for k, v := range proc.Env {
		env = append(env, k+"="+v)
	}
	for k, v := range values {
		env = append(env, fmt.Sprintf("BAXTER_ARG_%s=%v", strings.ToUpper(k), v))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("execution failed: %w. Stderr: %s", err, strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// OpenURL opens url with the open_url command.
func (r *Runner) OpenURL(ctx context.Context, url string) error {
	_, err := r.Run(ctx, CommandOpenURL, map[string]any{"url": url})
	return err
}
