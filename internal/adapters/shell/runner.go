// Package shell provides the command runner adapter for toolchain invocations.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec. Toolchain processes
// are blocking and synchronous; the invocation inherits whatever environment
// the enclosing scheduler provides.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes name with args, capturing stdout and stderr. A non-zero exit
// is returned as an error carrying the exit code and the stderr tail, so the
// caller can surface the tool's own diagnostics.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // Toolchain path comes from the manifest

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Info("exec: " + name + " " + strings.Join(args, " "))

	if err := cmd.Run(); err != nil {
		exitCode := -1 // Unknown or signal
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		wrapped := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		wrapped = zerr.With(wrapped, "command", name)
		wrapped = zerr.With(wrapped, "stderr", stderrTail(stderr.Bytes()))
		return stdout.Bytes(), stderr.Bytes(), wrapped
	}

	return stdout.Bytes(), stderr.Bytes(), nil
}

// stderrTail keeps error metadata readable when a tool dumps pages of output.
func stderrTail(b []byte) string {
	const maxLines = 20
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return strings.Join(lines, "\n")
}
