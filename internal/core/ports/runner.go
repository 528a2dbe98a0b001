package ports

import "context"

// CommandRunner executes one external tool invocation to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes name with args and returns captured stdout and stderr.
	// A non-zero exit is returned as an error with stderr attached.
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}
