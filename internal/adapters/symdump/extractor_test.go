package symdump_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/xdso/internal/adapters/symdump"
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestExtractor_InvokesDumper(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tc := domain.Toolchain{
		SymbolDumper: "/ndk/bin/llvm-nm",
		DumperFlags:  []string{"--dynamic", "--with-symbol-versions"},
	}

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), "/ndk/bin/llvm-nm", "--dynamic", "--with-symbol-versions", "libs/libfoo.so").
		Return([]byte("0000000000001000 T foo\n                 U bar\n"), nil, nil)

	defined, undefined, err := symdump.NewExtractor(runner).Extract(context.Background(), "libs/libfoo.so", tc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !defined.Contains("foo") || defined.Len() != 1 {
		t.Errorf("unexpected defined set: %v", defined.Names())
	}
	if !undefined.Contains("bar") || undefined.Len() != 1 {
		t.Errorf("unexpected undefined set: %v", undefined.Names())
	}
}

func TestExtractor_DumperFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	runner := mocks.NewMockCommandRunner(ctrl)
	runner.EXPECT().
		Run(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, []byte("not an ELF file"), errors.New("exit status 1"))

	_, _, err := symdump.NewExtractor(runner).Extract(context.Background(), "libs/garbage.so", domain.Toolchain{SymbolDumper: "nm"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrToolchain) {
		t.Errorf("expected ErrToolchain, got %v", err)
	}
}
