// Package gitcmd runs git subcommands with context cancellation and
// structured failure reporting.
//
// The artifact store and the ad-hoc manifest fetcher both drive a plain git
// CLI: init, remote add, sparse-checkout configuration, shallow pull, shallow
// fetch, hard reset. A [Runner] abstracts that boundary so the stores can be
// tested with a scripted fake instead of a real git binary.
package gitcmd

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"strings"
	"time"

	"github.com/reposcout/reposcout/pkg/errors"
)

// DefaultTimeout bounds a single git invocation. Shallow transfers of a
// single ref should finish well inside this; a hung remote should not hang
// the pipeline.
const DefaultTimeout = 120 * time.Second

// Runner executes one git subcommand in the given working directory and
// returns its trimmed stdout. A non-zero exit is an error carrying the
// failed arguments and the command's diagnostic output.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// CLI is the production Runner backed by the git binary on PATH.
type CLI struct {
	// Timeout per invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

// NewCLI returns a CLI runner with the default per-command timeout.
func NewCLI() *CLI {
	return &CLI{Timeout: DefaultTimeout}
}

// Run executes `git args...` in dir. The subprocess is killed if ctx is
// cancelled or the per-command timeout elapses.
func (c *CLI) Run(ctx context.Context, dir string, args ...string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		switch {
		case stderrors.Is(ctx.Err(), context.DeadlineExceeded):
			return "", errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "git %s", strings.Join(args, " "))
		case ctx.Err() != nil:
			// Caller cancellation; keep context.Canceled visible to errors.Is.
			return "", ctx.Err()
		}
		return "", errors.Wrap(errors.ErrCodeGitCommand, err,
			"git %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Ensure CLI implements Runner.
var _ Runner = (*CLI)(nil)
