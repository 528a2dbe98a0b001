// Package config provides the manifest loader for xdso.
package config

import (
	"os"

	"go.trai.ch/xdso/internal/adapters/buildgraph" //nolint:depguard // The loader materializes the oracle
	"go.trai.ch/xdso/internal/core/domain"
	"go.trai.ch/xdso/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader implements ports.ManifestLoader using a YAML file.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Toolchains implements ports.ToolchainProvider over the manifest's toolchain
// section.
type Toolchains map[domain.TargetCpu]domain.Toolchain

// For returns the toolchain for the given cpu.
func (t Toolchains) For(cpu domain.TargetCpu) (domain.Toolchain, error) {
	tc, ok := t[cpu]
	if !ok {
		return domain.Toolchain{}, zerr.With(zerr.Wrap(domain.ErrUnknownCpu, "toolchain lookup failed"), "cpu", string(cpu))
	}
	return tc, nil
}

// Load parses the manifest at path into the request, the toolchain provider
// and the dependency oracle.
func (l *Loader) Load(path string) (*domain.RelinkRequest, ports.ToolchainProvider, ports.DependencyOracle, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, nil, nil, zerr.Wrap(err, "failed to read manifest")
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, nil, zerr.Wrap(err, "failed to parse manifest")
	}

	toolchains := make(Toolchains, len(manifest.Toolchains))
	for cpu, dto := range manifest.Toolchains {
		if dto.Linker == "" || dto.SymbolDumper == "" {
			return nil, nil, nil, zerr.With(zerr.New("toolchain needs linker and symbol_dumper"), "cpu", cpu)
		}
		toolchains[domain.TargetCpu(cpu)] = domain.Toolchain{
			Linker:           dto.Linker,
			SymbolDumper:     dto.SymbolDumper,
			DumperFlags:      dto.DumperFlags,
			LinkFlags:        dto.LinkFlags,
			MandatorySymbols: dto.MandatorySymbols,
		}
	}

	req := &domain.RelinkRequest{
		Libs:      make(map[domain.LibraryKey]string),
		AssetLibs: make(map[domain.LibraryKey]string),
	}
	graph := buildgraph.NewGraph()

	for _, dto := range manifest.Libraries {
		if dto.Name == "" || dto.Cpu == "" || dto.Path == "" {
			return nil, nil, nil, zerr.With(zerr.New("library needs name, cpu and path"), "library", dto.Name)
		}

		key := domain.NewLibraryKey(domain.TargetCpu(dto.Cpu), dto.Name)
		if _, dup := req.Libs[key]; dup {
			return nil, nil, nil, zerr.With(zerr.New("duplicate library"), "library", key.String())
		}
		if _, dup := req.AssetLibs[key]; dup {
			return nil, nil, nil, zerr.With(zerr.New("duplicate library"), "library", key.String())
		}

		if dto.Asset {
			req.AssetLibs[key] = dto.Path
		} else {
			req.Libs[key] = dto.Path
		}

		if dto.Rule != "" {
			graph.SetProducer(dto.Path, domain.NodeID(dto.Rule))
		}
	}

	for _, edge := range manifest.Graph {
		if edge.From == "" || edge.To == "" {
			return nil, nil, nil, zerr.New("graph edge needs from and to")
		}
		graph.AddEdge(domain.NodeID(edge.From), domain.NodeID(edge.To))
	}

	return req, toolchains, graph, nil
}
