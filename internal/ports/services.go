// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never storage records or wire DTOs
//   - Error returns use domain error types (ErrNotFound, ErrValidation, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/learning-journal/internal/domain"
)

// MutateFunc receives the full stored collection and returns the collection
// to persist. Returning an error aborts the write and leaves the store as it was.
type MutateFunc func(entries []domain.Reflection) ([]domain.Reflection, error)

// ReflectionStore persists the whole reflection collection as one unit.
// Every operation reads the complete collection and, for writes, replaces it
// completely.
type ReflectionStore interface {
	// Load returns every stored reflection in stored order.
	// A missing or unreadable backing store yields an empty collection.
	Load(ctx context.Context) ([]domain.Reflection, error)

	// Update runs a load-mutate-save cycle. Cycles issued through the same
	// store value do not interleave.
	Update(ctx context.Context, mutate MutateFunc) error
}

// Journal is the create/list surface shared by the local application
// service and the remote API client. The console tool works against it.
type Journal interface {
	// Create validates and stores a new reflection and returns it with its
	// assigned identifier.
	Create(ctx context.Context, input domain.NewReflection) (*domain.Reflection, error)

	// List returns all reflections in stored order.
	List(ctx context.Context) ([]domain.Reflection, error)
}
