package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/xdso/internal/adapters/config"
	"go.trai.ch/xdso/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xdso.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return path
}

const sampleManifest = `
version: "1"
toolchains:
  arm64:
    linker: /ndk/bin/clang
    symbol_dumper: /ndk/bin/llvm-nm
    dumper_flags: ["--dynamic", "--with-symbol-versions"]
    link_flags: ["-shared"]
    mandatory_symbols: ["__bss_start", "_edata", "_end"]
libraries:
  - name: libfoo.so
    cpu: arm64
    path: libs/arm64/libfoo.so
    rule: //native:foo
  - name: libthird.so
    cpu: arm64
    path: prebuilt/arm64/libthird.so
  - name: libasset.so
    cpu: arm64
    path: assets/arm64/libasset.so
    rule: //native:asset
    asset: true
graph:
  - from: //app:main
    to: //native:foo
  - from: //native:foo
    to: //native:asset
`

func TestLoader_Load(t *testing.T) {
	path := writeManifest(t, sampleManifest)

	req, toolchains, oracle, err := config.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keyFoo := domain.NewLibraryKey(domain.CpuArm64, "libfoo.so")
	keyThird := domain.NewLibraryKey(domain.CpuArm64, "libthird.so")
	keyAsset := domain.NewLibraryKey(domain.CpuArm64, "libasset.so")

	if req.Libs[keyFoo] != "libs/arm64/libfoo.so" {
		t.Errorf("unexpected libs partition: %v", req.Libs)
	}
	if req.Libs[keyThird] != "prebuilt/arm64/libthird.so" {
		t.Errorf("expected copied library in libs partition: %v", req.Libs)
	}
	if req.AssetLibs[keyAsset] != "assets/arm64/libasset.so" {
		t.Errorf("unexpected asset partition: %v", req.AssetLibs)
	}

	tc, err := toolchains.For(domain.CpuArm64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tc.Linker != "/ndk/bin/clang" || len(tc.MandatorySymbols) != 3 {
		t.Errorf("unexpected toolchain: %+v", tc)
	}

	if _, err := toolchains.For(domain.CpuX86); !errors.Is(err, domain.ErrUnknownCpu) {
		t.Errorf("expected ErrUnknownCpu, got %v", err)
	}

	node, ok := oracle.NodeForLibrary("libs/arm64/libfoo.so")
	if !ok || node != domain.NodeID("//native:foo") {
		t.Errorf("unexpected producer: %v (ok=%v)", node, ok)
	}
	if _, ok := oracle.NodeForLibrary("prebuilt/arm64/libthird.so"); ok {
		t.Error("rule-less library must not resolve to a producer")
	}

	in := oracle.IncomingEdges("//native:foo")
	if len(in) != 1 || in[0] != domain.NodeID("//app:main") {
		t.Errorf("unexpected incoming edges: %v", in)
	}
}

func TestLoader_DuplicateLibrary(t *testing.T) {
	path := writeManifest(t, `
toolchains:
  arm:
    linker: clang
    symbol_dumper: nm
libraries:
  - {name: libfoo.so, cpu: arm, path: a/libfoo.so}
  - {name: libfoo.so, cpu: arm, path: b/libfoo.so}
`)

	_, _, _, err := config.NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for duplicate library key")
	}
}

func TestLoader_IncompleteToolchain(t *testing.T) {
	path := writeManifest(t, `
toolchains:
  arm:
    linker: clang
`)

	_, _, _, err := config.NewLoader().Load(path)
	if err == nil {
		t.Fatal("expected error for toolchain without symbol_dumper")
	}
}

func TestLoader_MissingFile(t *testing.T) {
	_, _, _, err := config.NewLoader().Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
}
