package ports

import "go.trai.ch/xdso/internal/core/domain"

// ToolchainProvider resolves the platform toolchain for a target cpu.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type ToolchainProvider interface {
	// For returns the toolchain for the given cpu.
	// It returns domain.ErrUnknownCpu when none is configured.
	For(cpu domain.TargetCpu) (domain.Toolchain, error)
}
