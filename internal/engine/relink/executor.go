// Package relink executes planned relink actions: version script synthesis,
// linker invocation and symbols-needed emission.
package relink

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/xdso/internal/adapters/fs" //nolint:depguard // Artifact IO discipline lives in the fs adapter
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Relinker = (*Executor)(nil)

// Executor implements ports.Relinker. One Executor is built per plan: it
// carries the plan-scoped known-symbols pool, not process-global state.
type Executor struct {
	extractor  ports.SymbolExtractor
	runner     ports.CommandRunner
	verifier   ports.LinkVerifier
	toolchains ports.ToolchainProvider
	known      map[domain.TargetCpu]*domain.SymbolSet
	logger     ports.Logger
}

// NewExecutor creates an Executor bound to one plan's known-symbols pool.
func NewExecutor(
	extractor ports.SymbolExtractor,
	runner ports.CommandRunner,
	verifier ports.LinkVerifier,
	toolchains ports.ToolchainProvider,
	known map[domain.TargetCpu]*domain.SymbolSet,
	logger ports.Logger,
) *Executor {
	return &Executor{
		extractor:  extractor,
		runner:     runner,
		verifier:   verifier,
		toolchains: toolchains,
		known:      known,
		logger:     logger,
	}
}

// Relink produces the node's relinked library and symbols-needed artifact.
// Copied libraries are passed through verbatim: their provenance is unknown,
// so no export can be proven dead.
func (e *Executor) Relink(ctx context.Context, node *domain.RelinkNode) error {
	tc, err := e.toolchains.For(node.Key.Cpu)
	if err != nil {
		return err
	}

	if !node.Input.Owned() {
		return e.copyVerbatim(ctx, node, tc)
	}
	return e.relinkOwned(ctx, node, tc)
}

// copyVerbatim is the copied-library fast path: the library is copied
// unchanged and only its own symbol demands are published.
func (e *Executor) copyVerbatim(ctx context.Context, node *domain.RelinkNode, tc domain.Toolchain) error {
	if err := fs.CopyFileAtomic(node.OutputPath, node.Input.Path()); err != nil {
		return err
	}

	_, undefined, err := e.extractor.Extract(ctx, node.Input.Path(), tc)
	if err != nil {
		return err
	}
	needed := undefined.Intersect(e.knownFor(node.Key.Cpu))
	if err := fs.WriteSymbolsAtomic(node.SymbolsNeededPath, needed); err != nil {
		return err
	}

	e.logger.Info("copied " + node.ActionID() + " verbatim, demands " + strconv.Itoa(needed.Len()) + " symbols")
	return nil
}

func (e *Executor) relinkOwned(ctx context.Context, node *domain.RelinkNode, tc domain.Toolchain) error {
	// 1. Union the symbol demands of every already-relinked dependent.
	demanded := domain.NewSymbolSet()
	for _, artifact := range node.UpstreamSymbolArtifacts() {
		set, err := fs.ReadSymbolsFile(artifact)
		if err != nil {
			return err
		}
		demanded = demanded.Union(set)
	}

	// 2. Keep only the demands this library can actually satisfy; the rest
	// belong to other libraries.
	definedOld, _, err := e.extractor.Extract(ctx, node.Input.Path(), tc)
	if err != nil {
		return err
	}
	exports := demanded.Intersect(definedOld)

	scope, err := fs.NewScopedDir(filepath.Dir(node.OutputPath), ".xdso-*")
	if err != nil {
		return err
	}
	defer scope.Close() //nolint:errcheck // Best effort cleanup in defer

	// 3. Version script: the export set plus the toolchain's mandatory
	// symbols, which must never be hidden.
	mandatory := domain.NewSymbolSet(tc.MandatorySymbols...)
	script := filepath.Join(scope.Path, "version_script")
	if err := os.WriteFile(script, buildVersionScript(exports.Union(mandatory)), 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write version script"), "path", script)
	}

	// 4. Re-link into the scoped dir, then publish by rename.
	tmpOut := filepath.Join(scope.Path, node.Key.Name.String())
	args := slices.Clone(tc.LinkFlags)
	args = append(args, "-o", tmpOut, node.Input.Path(), "-Wl,--version-script,"+script)
	if _, stderr, err := e.runner.Run(ctx, tc.Linker, args...); err != nil {
		terr := zerr.With(zerr.Wrap(domain.ErrToolchain, "linker failed"), "tool", tc.Linker)
		terr = zerr.With(terr, "action", node.ActionID())
		return zerr.With(terr, "stderr", string(stderr))
	}

	if err := e.verifyRelinked(node, tmpOut, exports.Union(mandatory.Intersect(definedOld))); err != nil {
		return err
	}

	if err := os.Rename(tmpOut, node.OutputPath); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish relinked library"), "path", node.OutputPath)
	}

	// 5. The new binary's undefined references, filtered to symbols some
	// input library of this cpu defines, become our own demand set.
	_, undefinedNew, err := e.extractor.Extract(ctx, node.OutputPath, tc)
	if err != nil {
		return err
	}
	needed := undefinedNew.Intersect(e.knownFor(node.Key.Cpu))
	if err := fs.WriteSymbolsAtomic(node.SymbolsNeededPath, needed); err != nil {
		return err
	}

	e.logger.Info("relinked " + node.ActionID() + ": exports " + strconv.Itoa(exports.Len()) +
		" of " + strconv.Itoa(definedOld.Len()) + " symbols")
	return nil
}

// verifyRelinked audits the fresh library before it is published: the soname
// must be preserved bit-exact and the dynamic symbol table must expose
// exactly the intended export set.
func (e *Executor) verifyRelinked(node *domain.RelinkNode, tmpOut string, want *domain.SymbolSet) error {
	origSoname, err := e.verifier.Soname(node.Input.Path())
	if err != nil {
		return err
	}
	newSoname, err := e.verifier.Soname(tmpOut)
	if err != nil {
		return err
	}
	if origSoname != newSoname {
		lerr := zerr.With(zerr.Wrap(domain.ErrLink, "soname changed"), "action", node.ActionID())
		lerr = zerr.With(lerr, "soname", origSoname)
		return zerr.With(lerr, "got_soname", newSoname)
	}

	if err := e.verifier.VerifyExports(tmpOut, want); err != nil {
		return zerr.With(err, "action", node.ActionID())
	}
	return nil
}

func (e *Executor) knownFor(cpu domain.TargetCpu) *domain.SymbolSet {
	if set, ok := e.known[cpu]; ok {
		return set
	}
	return domain.NewSymbolSet()
}
