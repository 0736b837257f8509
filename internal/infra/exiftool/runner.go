package exiftool

import (
	"context"
	"os/exec"
)

// CommandRunner runs external commands. Tests substitute a fake.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecCommandRunner is the production implementation using os/exec.
type ExecCommandRunner struct{}

func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}
