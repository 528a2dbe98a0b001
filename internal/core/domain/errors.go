package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyInput is returned when a plan is requested with no libraries at all.
	ErrEmptyInput = zerr.New("no libraries to relink")

	// ErrCyclicLibraryGraph is returned when the library dependency graph has a cycle.
	ErrCyclicLibraryGraph = zerr.New("cycle in library dependency graph")

	// ErrUnknownCpu is returned when an input library targets a cpu with no configured toolchain.
	ErrUnknownCpu = zerr.New("no toolchain for cpu")

	// ErrMissingSymbolArtifact is returned when an upstream symbols-needed file is absent.
	ErrMissingSymbolArtifact = zerr.New("symbols artifact missing")

	// ErrToolchain is returned when the symbol dumper or the linker exits non-zero.
	ErrToolchain = zerr.New("toolchain invocation failed")

	// ErrLink is returned when the linker succeeded but the relinked library is malformed.
	ErrLink = zerr.New("relinked library is malformed")
)
