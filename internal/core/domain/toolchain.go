package domain

// Toolchain describes the platform tools for one TargetCpu. Paths and flags
// come from the manifest; nothing here is discovered at runtime.
type Toolchain struct {
	// Linker is the path to the platform linker driver.
	Linker string

	// SymbolDumper is the path to the dynamic-symbol dumper (an nm-style tool).
	SymbolDumper string

	// DumperFlags are passed to SymbolDumper before the library path.
	DumperFlags []string

	// LinkFlags are the default flags passed to every relink invocation.
	LinkFlags []string

	// MandatorySymbols must stay exported even when no dependent references
	// them (e.g. __bss_start, _edata, _end). The list is toolchain-defined.
	MandatorySymbols []string
}
