// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never YAML nodes or other infrastructure types
//   - Error returns use domain error types (ErrInvalidDocument, ErrUnavailable, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/xup/internal/domain"
)

// DoctrineSource supplies the doctrines of one document.
//
// Implementations return the doctrines in document order. Any malformed
// entry fails the whole load with an error matching domain.ErrInvalidDocument;
// a source that cannot be read returns an error matching domain.ErrUnavailable.
type DoctrineSource interface {
	Load(ctx context.Context) ([]domain.Doctrine, error)
}
