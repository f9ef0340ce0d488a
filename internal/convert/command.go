package convert

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes converter commands. The default implementation shells
// out; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, stdin, name string, args ...string) (string, error)
}

// osRunner executes real commands via exec.CommandContext.
type osRunner struct{}

func (osRunner) Run(ctx context.Context, stdin, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = strings.NewReader(stdin)

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s failed: %w\nstderr: %s",
			name, err, stderr.String())
	}

	return stdout.String(), nil
}

// Command converts content by piping it through an external program,
// e.g. "markdown" or "pandoc -f markdown -t html". A failed or missing
// command is an error; there is no fallback to unconverted content.
type Command struct {
	name   string
	args   []string
	runner Runner
}

// NewCommand creates a converter backed by the named program.
func NewCommand(name string, args ...string) *Command {
	return &Command{name: name, args: args, runner: osRunner{}}
}

// Convert runs the program with src on standard input and returns its
// standard output.
func (c *Command) Convert(ctx context.Context, src string) (string, error) {
	out, err := c.runner.Run(ctx, src, c.name, c.args...)
	if err != nil {
		return "", fmt.Errorf("converter %s: %w", c.name, err)
	}
	return out, nil
}
