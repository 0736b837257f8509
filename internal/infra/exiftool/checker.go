package exiftool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	appErrors "clipdate/internal/errors"
)

// DefaultBinary is looked up on PATH unless another path is configured.
const DefaultBinary = "exiftool"

// Checker verifies once, before any file is touched, that ExifTool can be run.
type Checker struct {
	binary   string
	runner   CommandRunner
	lookPath func(string) (string, error)
}

type CheckerOption func(*Checker)

func WithCheckerBinary(path string) CheckerOption {
	return func(c *Checker) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithCheckerCommandRunner sets a custom command runner (for testing).
func WithCheckerCommandRunner(runner CommandRunner) CheckerOption {
	return func(c *Checker) {
		c.runner = runner
	}
}

// WithLookPath replaces exec.LookPath (for testing).
func WithLookPath(fn func(string) (string, error)) CheckerOption {
	return func(c *Checker) {
		c.lookPath = fn
	}
}

func NewChecker(opts ...CheckerOption) *Checker {
	c := &Checker{
		binary:   DefaultBinary,
		runner:   &ExecCommandRunner{},
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the ExifTool version. Any failure is a MissingDependency.
func (c *Checker) Check(ctx context.Context) (string, error) {
	path, err := c.lookPath(c.binary)
	if err != nil {
		return "", appErrors.Wrap(appErrors.MissingDependency, "lookpath", c.binary, err)
	}
	out, err := c.runner.Output(ctx, path, "-ver")
	if err != nil {
		return "", appErrors.Wrap(appErrors.MissingDependency, "exiftool -ver", path, fmt.Errorf("%s is not runnable: %w", path, err))
	}
	return strings.TrimSpace(string(out)), nil
}
