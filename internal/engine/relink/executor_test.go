package relink_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.trai.ch/xdso/internal/adapters/fs"
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports/mocks"
	"go.trai.ch/xdso/internal/engine/relink"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestExecutor_RelinkOwned(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	source := filepath.Join(dir, "src", "libbot.so")
	writeFile(t, source, "original elf")

	upstream := filepath.Join(dir, "up", "libtop.so.symbols")
	writeFile(t, upstream, "x\ny\nz_from_elsewhere\n")

	node := &domain.RelinkNode{
		Key:   domain.NewLibraryKey(domain.CpuArm64, "libbot.so"),
		Input: domain.OwnedHandle(source, "//native:bot"),
		UpstreamDeps: []*domain.RelinkNode{
			{SymbolsNeededPath: upstream},
		},
		OutputPath:        filepath.Join(dir, "out", "libbot.so"),
		SymbolsNeededPath: filepath.Join(dir, "out", "libbot.so.symbols"),
	}

	tc := domain.Toolchain{
		Linker:           "/ndk/bin/clang",
		SymbolDumper:     "/ndk/bin/llvm-nm",
		LinkFlags:        []string{"-shared"},
		MandatorySymbols: []string{"__bss_start"},
	}

	toolchains := mocks.NewMockToolchainProvider(ctrl)
	toolchains.EXPECT().For(domain.CpuArm64).Return(tc, nil)

	extractor := mocks.NewMockSymbolExtractor(ctrl)
	// Old binary defines x, y and dead; only x and y are demanded upstream.
	extractor.EXPECT().Extract(gomock.Any(), source, tc).
		Return(domain.NewSymbolSet("x", "y", "dead", "__bss_start"), domain.NewSymbolSet(), nil)
	// New binary still references one in-package symbol and libc.
	extractor.EXPECT().Extract(gomock.Any(), node.OutputPath, tc).
		Return(domain.NewSymbolSet("x", "y", "__bss_start"), domain.NewSymbolSet("helper_from_libaux", "printf@GLIBC_2.2.5"), nil)

	var scriptContent string
	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), "/ndk/bin/clang", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
			var out string
			for i, a := range args {
				if a == "-o" && i+1 < len(args) {
					out = args[i+1]
				}
				if strings.HasPrefix(a, "-Wl,--version-script,") {
					script := strings.TrimPrefix(a, "-Wl,--version-script,")
					data, err := os.ReadFile(script)
					if err != nil {
						t.Errorf("version script not readable during link: %v", err)
					}
					scriptContent = string(data)
				}
			}
			if out == "" {
				t.Error("linker invoked without -o")
				return nil, nil, errors.New("no output")
			}
			return nil, nil, os.WriteFile(out, []byte("relinked elf"), 0o755)
		})

	verifier := mocks.NewMockLinkVerifier(ctrl)
	verifier.EXPECT().Soname(source).Return("libbot.so", nil)
	verifier.EXPECT().Soname(gomock.Any()).Return("libbot.so", nil)
	verifier.EXPECT().VerifyExports(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ string, want *domain.SymbolSet) error {
			if !want.Equal(domain.NewSymbolSet("x", "y", "__bss_start")) {
				t.Errorf("unexpected audited export set: %v", want.Names())
			}
			return nil
		})

	known := map[domain.TargetCpu]*domain.SymbolSet{
		domain.CpuArm64: domain.NewSymbolSet("x", "y", "dead", "helper_from_libaux"),
	}

	exec := relink.NewExecutor(extractor, runner, verifier, toolchains, known, nopLogger{})
	if err := exec.Relink(context.Background(), node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The version script exports the demanded defines plus mandatory symbols.
	wantScript := "{\nglobal:\n  __bss_start;\n  x;\n  y;\nlocal: *;\n};\n"
	if scriptContent != wantScript {
		t.Errorf("unexpected version script:\n%s\nwant:\n%s", scriptContent, wantScript)
	}

	data, err := os.ReadFile(node.OutputPath)
	if err != nil {
		t.Fatalf("relinked library not published: %v", err)
	}
	if string(data) != "relinked elf" {
		t.Errorf("unexpected relinked content: %q", data)
	}

	// symbolsNeeded is the new undefined set filtered to the known pool.
	needed, err := fs.ReadSymbolsFile(node.SymbolsNeededPath)
	if err != nil {
		t.Fatalf("symbols-needed not published: %v", err)
	}
	if !needed.Equal(domain.NewSymbolSet("helper_from_libaux")) {
		t.Errorf("unexpected symbolsNeeded: %v", needed.Names())
	}
}

func TestExecutor_MissingUpstreamArtifact(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	source := filepath.Join(dir, "libfoo.so")
	writeFile(t, source, "elf")

	node := &domain.RelinkNode{
		Key:   domain.NewLibraryKey(domain.CpuArm, "libfoo.so"),
		Input: domain.OwnedHandle(source, "//native:foo"),
		UpstreamDeps: []*domain.RelinkNode{
			{SymbolsNeededPath: filepath.Join(dir, "never-written.symbols")},
		},
		OutputPath:        filepath.Join(dir, "out", "libfoo.so"),
		SymbolsNeededPath: filepath.Join(dir, "out", "libfoo.so.symbols"),
	}

	toolchains := mocks.NewMockToolchainProvider(ctrl)
	toolchains.EXPECT().For(domain.CpuArm).Return(domain.Toolchain{}, nil)

	exec := relink.NewExecutor(
		mocks.NewMockSymbolExtractor(ctrl),
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockLinkVerifier(ctrl),
		toolchains,
		nil,
		nopLogger{},
	)

	err := exec.Relink(context.Background(), node)
	if !errors.Is(err, domain.ErrMissingSymbolArtifact) {
		t.Errorf("expected ErrMissingSymbolArtifact, got %v", err)
	}
}

func TestExecutor_LinkerFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	source := filepath.Join(dir, "libfoo.so")
	writeFile(t, source, "elf")

	node := &domain.RelinkNode{
		Key:               domain.NewLibraryKey(domain.CpuArm, "libfoo.so"),
		Input:             domain.OwnedHandle(source, "//native:foo"),
		OutputPath:        filepath.Join(dir, "out", "libfoo.so"),
		SymbolsNeededPath: filepath.Join(dir, "out", "libfoo.so.symbols"),
	}

	tc := domain.Toolchain{Linker: "clang"}
	toolchains := mocks.NewMockToolchainProvider(ctrl)
	toolchains.EXPECT().For(domain.CpuArm).Return(tc, nil)

	extractor := mocks.NewMockSymbolExtractor(ctrl)
	extractor.EXPECT().Extract(gomock.Any(), source, tc).
		Return(domain.NewSymbolSet("foo"), domain.NewSymbolSet(), nil)

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "clang", gomock.Any()).
		Return(nil, []byte("undefined reference to `bar'"), errors.New("exit status 1"))

	exec := relink.NewExecutor(extractor, runner, mocks.NewMockLinkVerifier(ctrl), toolchains, nil, nopLogger{})

	err := exec.Relink(context.Background(), node)
	if !errors.Is(err, domain.ErrToolchain) {
		t.Errorf("expected ErrToolchain, got %v", err)
	}
	if _, statErr := os.Stat(node.OutputPath); !os.IsNotExist(statErr) {
		t.Error("failed relink must not publish an output library")
	}
}

func TestExecutor_SonameMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	source := filepath.Join(dir, "libfoo.so")
	writeFile(t, source, "elf")

	node := &domain.RelinkNode{
		Key:               domain.NewLibraryKey(domain.CpuArm, "libfoo.so"),
		Input:             domain.OwnedHandle(source, "//native:foo"),
		OutputPath:        filepath.Join(dir, "out", "libfoo.so"),
		SymbolsNeededPath: filepath.Join(dir, "out", "libfoo.so.symbols"),
	}

	tc := domain.Toolchain{Linker: "clang"}
	toolchains := mocks.NewMockToolchainProvider(ctrl)
	toolchains.EXPECT().For(domain.CpuArm).Return(tc, nil)

	extractor := mocks.NewMockSymbolExtractor(ctrl)
	extractor.EXPECT().Extract(gomock.Any(), source, tc).
		Return(domain.NewSymbolSet("foo"), domain.NewSymbolSet(), nil)

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().Run(gomock.Any(), "clang", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
			for i, a := range args {
				if a == "-o" {
					return nil, nil, os.WriteFile(args[i+1], []byte("relinked"), 0o755)
				}
			}
			return nil, nil, errors.New("no output")
		})

	verifier := mocks.NewMockLinkVerifier(ctrl)
	verifier.EXPECT().Soname(source).Return("libfoo.so", nil)
	verifier.EXPECT().Soname(gomock.Any()).Return("libfoo.so.1", nil)

	exec := relink.NewExecutor(extractor, runner, verifier, toolchains, nil, nopLogger{})

	err := exec.Relink(context.Background(), node)
	if !errors.Is(err, domain.ErrLink) {
		t.Errorf("expected ErrLink, got %v", err)
	}
}

func TestExecutor_CopiedFastPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	source := filepath.Join(dir, "prebuilt", "libthird.so")
	writeFile(t, source, "sealed prebuilt")

	node := &domain.RelinkNode{
		Key:               domain.NewLibraryKey(domain.CpuArm64, "libthird.so"),
		Input:             domain.CopiedHandle(source),
		OutputPath:        filepath.Join(dir, "out", "libthird.so"),
		SymbolsNeededPath: filepath.Join(dir, "out", "libthird.so.symbols"),
	}

	tc := domain.Toolchain{SymbolDumper: "nm"}
	toolchains := mocks.NewMockToolchainProvider(ctrl)
	toolchains.EXPECT().For(domain.CpuArm64).Return(tc, nil)

	extractor := mocks.NewMockSymbolExtractor(ctrl)
	extractor.EXPECT().Extract(gomock.Any(), source, tc).
		Return(domain.NewSymbolSet("third_entry"), domain.NewSymbolSet("a", "printf"), nil)

	// No linker invocation: the runner mock has no expectations.
	exec := relink.NewExecutor(
		extractor,
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockLinkVerifier(ctrl),
		toolchains,
		map[domain.TargetCpu]*domain.SymbolSet{domain.CpuArm64: domain.NewSymbolSet("a", "b")},
		nopLogger{},
	)

	if err := exec.Relink(context.Background(), node); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(node.OutputPath)
	if err != nil {
		t.Fatalf("copied library not published: %v", err)
	}
	if string(data) != "sealed prebuilt" {
		t.Errorf("copied library must be verbatim, got %q", data)
	}

	needed, err := fs.ReadSymbolsFile(node.SymbolsNeededPath)
	if err != nil {
		t.Fatalf("symbols-needed not published: %v", err)
	}
	if !needed.Equal(domain.NewSymbolSet("a")) {
		t.Errorf("expected symbolsNeeded {a}, got %v", needed.Names())
	}
}
