package domain

import (
	"bufio"
	"io"
	"sort"

	"go.trai.ch/zerr"
)

// SymbolSet is an unordered set of linker symbol names. Version suffixes
// ("@VER", "@@VER") are part of the name and preserved verbatim.
//
// The serialized form is canonical: one symbol per line, sorted
// lexicographically, LF-terminated, no blank lines. Two sets are equal iff
// their serialized forms are byte-identical.
type SymbolSet struct {
	names map[string]struct{}
}

// NewSymbolSet creates a SymbolSet containing the given names.
func NewSymbolSet(names ...string) *SymbolSet {
	s := &SymbolSet{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.names[n] = struct{}{}
	}
	return s
}

// Insert adds a symbol name to the set.
func (s *SymbolSet) Insert(name string) {
	s.names[name] = struct{}{}
}

// Contains reports whether the set holds the given name.
func (s *SymbolSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Len returns the number of symbols in the set.
func (s *SymbolSet) Len() int {
	return len(s.names)
}

// Union returns a new set holding every symbol present in either set.
func (s *SymbolSet) Union(other *SymbolSet) *SymbolSet {
	out := &SymbolSet{names: make(map[string]struct{}, len(s.names)+other.Len())}
	for n := range s.names {
		out.names[n] = struct{}{}
	}
	for n := range other.names {
		out.names[n] = struct{}{}
	}
	return out
}

// Intersect returns a new set holding the symbols present in both sets.
func (s *SymbolSet) Intersect(other *SymbolSet) *SymbolSet {
	small, large := s, other
	if other.Len() < s.Len() {
		small, large = other, s
	}
	out := NewSymbolSet()
	for n := range small.names {
		if large.Contains(n) {
			out.names[n] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets hold exactly the same symbols.
func (s *SymbolSet) Equal(other *SymbolSet) bool {
	if len(s.names) != len(other.names) {
		return false
	}
	for n := range s.names {
		if !other.Contains(n) {
			return false
		}
	}
	return true
}

// Names returns the symbols in sorted order.
func (s *SymbolSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// WriteTo serializes the set in canonical form.
func (s *SymbolSet) WriteTo(w io.Writer) (int64, error) {
	var written int64
	bw := bufio.NewWriter(w)
	for _, name := range s.Names() {
		n, err := bw.WriteString(name)
		written += int64(n)
		if err != nil {
			return written, zerr.Wrap(err, "failed to write symbol")
		}
		if err := bw.WriteByte('\n'); err != nil {
			return written, zerr.Wrap(err, "failed to write symbol")
		}
		written++
	}
	if err := bw.Flush(); err != nil {
		return written, zerr.Wrap(err, "failed to flush symbols")
	}
	return written, nil
}

// ReadSymbolSet deserializes a set from its canonical form.
func ReadSymbolSet(r io.Reader) (*SymbolSet, error) {
	s := NewSymbolSet()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		s.names[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to read symbols")
	}
	return s, nil
}
