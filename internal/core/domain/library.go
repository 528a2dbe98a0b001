// Package domain contains the core domain models for the native-library relinker.
package domain

// TargetCpu identifies the cpu architecture a library was compiled for.
// It is an opaque key used to select the matching toolchain; symbols never
// cross cpu boundaries.
type TargetCpu string

const (
	// CpuArm is the 32-bit ARM architecture.
	CpuArm TargetCpu = "arm"
	// CpuArm64 is the 64-bit ARM architecture.
	CpuArm64 TargetCpu = "arm64"
	// CpuX86 is the 32-bit x86 architecture.
	CpuX86 TargetCpu = "x86"
	// CpuX86_64 is the 64-bit x86 architecture.
	CpuX86_64 TargetCpu = "x86_64"
)

// NodeID identifies a node in the host build graph (e.g. a rule label).
type NodeID string

// LibraryKey uniquely identifies one library within the package.
// Name is the on-disk filename, e.g. "libfoo.so".
type LibraryKey struct {
	Cpu  TargetCpu
	Name InternedString
}

// NewLibraryKey creates a LibraryKey for the given cpu and filename.
func NewLibraryKey(cpu TargetCpu, name string) LibraryKey {
	return LibraryKey{Cpu: cpu, Name: NewInternedString(name)}
}

// String returns the "cpu/name" form of the key.
func (k LibraryKey) String() string {
	return string(k.Cpu) + "/" + k.Name.String()
}

// LibraryHandle is the source-of-truth pointer to a library file.
// It is a value type: a path plus an origin tag. An owned handle carries the
// build-graph node that produced the library; a copied handle has unknown
// provenance and no resolvable dependents.
type LibraryHandle struct {
	path     string
	producer NodeID
	owned    bool
}

// OwnedHandle creates a handle for a library produced by a known build-graph node.
func OwnedHandle(path string, producer NodeID) LibraryHandle {
	return LibraryHandle{path: path, producer: producer, owned: true}
}

// CopiedHandle creates a handle for a library of unknown provenance.
func CopiedHandle(path string) LibraryHandle {
	return LibraryHandle{path: path}
}

// Path returns the on-disk location of the library.
func (h LibraryHandle) Path() string {
	return h.path
}

// Owned reports whether the library's producer node is known.
func (h LibraryHandle) Owned() bool {
	return h.owned
}

// Producer returns the producing build-graph node. The second return is false
// for copied handles.
func (h LibraryHandle) Producer() (NodeID, bool) {
	if !h.owned {
		return "", false
	}
	return h.producer, true
}
