// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/xdso/internal/adapters/cas"
	_ "go.trai.ch/xdso/internal/adapters/config"
	_ "go.trai.ch/xdso/internal/adapters/elf"
	_ "go.trai.ch/xdso/internal/adapters/fs"
	_ "go.trai.ch/xdso/internal/adapters/logger"
	_ "go.trai.ch/xdso/internal/adapters/shell"
	_ "go.trai.ch/xdso/internal/adapters/symdump"
	_ "go.trai.ch/xdso/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/xdso/internal/app"
	_ "go.trai.ch/xdso/internal/engine/planner"
	_ "go.trai.ch/xdso/internal/engine/scheduler"
)
