package symdump

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/xdso/internal/core/domain"
)

// parseSymbols splits an nm-style dynamic symbol listing into exported
// definitions and undefined references.
//
// Lines come in two shapes:
//
//	0000000000001040 T foo
//	                 U printf@GLIBC_2.2.5
//
// The single-letter type decides the side. 'U' and the weak-undefined
// lowercase 'v'/'w' are undefined references. Uppercase types and the unique
// global 'u' are exported definitions. Remaining lowercase types have LOCAL
// binding and are dropped. Version suffixes are part of the printed name and
// carried verbatim. File headers ("libfoo.so:"), blank lines and "no symbols"
// notices are skipped.
func parseSymbols(listing []byte) (defined, undefined *domain.SymbolSet) {
	defined = domain.NewSymbolSet()
	undefined = domain.NewSymbolSet()

	sc := bufio.NewScanner(bytes.NewReader(listing))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasSuffix(line, ":") || strings.Contains(line, "no symbols") {
			continue
		}

		typ, name, ok := splitSymbolLine(line)
		if !ok {
			continue
		}

		switch {
		case typ == 'U' || typ == 'v' || typ == 'w':
			undefined.Insert(name)
		case typ == 'u' || (typ >= 'A' && typ <= 'Z'):
			defined.Insert(name)
		}
	}
	return defined, undefined
}

// splitSymbolLine extracts the type letter and symbol name from one listing
// line, tolerating the missing address column of undefined entries.
func splitSymbolLine(line string) (byte, string, bool) {
	fields := strings.Fields(line)
	switch {
	case len(fields) >= 3 && len(fields[1]) == 1:
		return fields[1][0], fields[2], true
	case len(fields) == 2 && len(fields[0]) == 1:
		return fields[0][0], fields[1], true
	default:
		return 0, "", false
	}
}
