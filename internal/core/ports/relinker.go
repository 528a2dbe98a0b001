package ports

import (
	"context"

	"go.trai.ch/xdso/internal/core/domain"
)

// Relinker executes one planned relink action. The scheduler guarantees that
// every upstream symbols-needed artifact exists before Relink is called.
//
//go:generate go run go.uber.org/mock/mockgen -source=relinker.go -destination=mocks/mock_relinker.go -package=mocks
type Relinker interface {
	// Relink produces node.OutputPath and node.SymbolsNeededPath atomically.
	Relink(ctx context.Context, node *domain.RelinkNode) error
}
