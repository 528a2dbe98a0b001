package commands_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/xdso/cmd/xdso/commands"
	"go.trai.ch/xdso/internal/adapters/telemetry"
	"go.trai.ch/xdso/internal/app"
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports/mocks"
	"go.trai.ch/xdso/internal/engine/planner"
	"go.trai.ch/xdso/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

type nopExtractor struct{}

func (nopExtractor) Extract(context.Context, string, domain.Toolchain) (*domain.SymbolSet, *domain.SymbolSet, error) {
	return domain.NewSymbolSet(), domain.NewSymbolSet(), nil
}

func newCLI(t *testing.T, ctrl *gomock.Controller, loader *mocks.MockManifestLoader) *commands.CLI {
	t.Helper()
	a := app.New(
		loader,
		planner.New(nopExtractor{}, nopLogger{}),
		scheduler.NewScheduler(nopLogger{}, telemetry.NewNoOpTracer()),
		nopExtractor{},
		mocks.NewMockCommandRunner(ctrl),
		mocks.NewMockLinkVerifier(ctrl),
		mocks.NewMockArtifactStore(ctrl),
		nopLogger{},
	)
	return commands.New(a)
}

func TestRelink_DefaultManifestPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockManifestLoader(ctrl)
	loader.EXPECT().Load("xdso.yaml").Return(nil, nil, nil, errors.New("no manifest"))

	cli := newCLI(t, ctrl, loader)
	cli.SetArgs([]string{"relink"})

	if err := cli.Execute(context.Background()); err == nil {
		t.Fatal("expected loader error to propagate")
	}
}

func TestRelink_ConfigFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockManifestLoader(ctrl)
	loader.EXPECT().Load("custom/manifest.yaml").Return(nil, nil, nil, errors.New("no manifest"))

	cli := newCLI(t, ctrl, loader)
	cli.SetArgs([]string{"relink", "-c", "custom/manifest.yaml"})

	if err := cli.Execute(context.Background()); err == nil {
		t.Fatal("expected loader error to propagate")
	}
}

func TestRelink_EmptyManifest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockManifestLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(&domain.RelinkRequest{}, nil, nil, nil)

	cli := newCLI(t, ctrl, loader)
	cli.SetArgs([]string{"relink"})

	err := cli.Execute(context.Background())
	if !errors.Is(err, domain.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestRoot_Help(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli := newCLI(t, ctrl, mocks.NewMockManifestLoader(ctrl))
	cli.SetArgs([]string{"--help"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error for help, got: %v", err)
	}
}

func TestVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cli := newCLI(t, ctrl, mocks.NewMockManifestLoader(ctrl))
	cli.SetArgs([]string{"version"})

	if err := cli.Execute(context.Background()); err != nil {
		t.Errorf("expected no error for version, got: %v", err)
	}
}
