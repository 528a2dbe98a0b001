package relink

import (
	"bytes"

	"go.trai.ch/xdso/internal/core/domain"
)

// buildVersionScript renders a linker version script with a single anonymous
// version: every member of exported is declared global, everything else is
// hidden. Output is byte-stable for a given set (sorted iteration).
func buildVersionScript(exported *domain.SymbolSet) []byte {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	if exported.Len() > 0 {
		buf.WriteString("global:\n")
		for _, name := range exported.Names() {
			buf.WriteString("  ")
			buf.WriteString(name)
			buf.WriteString(";\n")
		}
	}
	buf.WriteString("local: *;\n};\n")
	return buf.Bytes()
}
