// Package app contains the application services that orchestrate the
// journal's use cases over the ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/platform/logging"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

// ReflectionService implements create, list, update and delete over a
// ReflectionStore. Every call reads the whole collection; writes replace it.
type ReflectionService struct {
	store   ports.ReflectionStore
	metrics *Metrics
	logger  *slog.Logger
	now     func() time.Time
}

var _ ports.Journal = (*ReflectionService)(nil)

// ReflectionServiceConfig contains the service dependencies. Only Store is
// required.
type ReflectionServiceConfig struct {
	Store   ports.ReflectionStore
	Metrics *Metrics
	Logger  *slog.Logger

	// Clock supplies the default date for new reflections. Defaults to time.Now.
	Clock func() time.Time
}

// NewReflectionService creates a reflection service.
func NewReflectionService(cfg ReflectionServiceConfig) *ReflectionService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &ReflectionService{
		store:   cfg.Store,
		metrics: cfg.Metrics,
		logger:  logger.With(slog.String("component", "app.ReflectionService")),
		now:     now,
	}
}

// Create validates input, assigns the next id and appends the reflection.
// The store is not touched when validation fails.
func (s *ReflectionService) Create(ctx context.Context, input domain.NewReflection) (*domain.Reflection, error) {
	logger := s.loggerFrom(ctx)

	if err := input.Validate(); err != nil {
		s.metrics.observe(operationCreate, resultInvalid)
		logger.InfoContext(ctx, "rejected reflection", slog.Any("error", err))

		return nil, fmt.Errorf("validating reflection: %w", err)
	}

	var (
		created domain.Reflection
		count   int
	)

	err := s.store.Update(ctx, func(entries []domain.Reflection) ([]domain.Reflection, error) {
		created = input.Build(domain.NextID(entries), s.now())
		entries = append(entries, created)
		count = len(entries)

		return entries, nil
	})
	if err != nil {
		s.metrics.observe(operationCreate, resultError)
		logger.ErrorContext(ctx, "failed to save reflection", slog.Any("error", err))

		return nil, fmt.Errorf("saving reflection: %w", err)
	}

	s.metrics.observe(operationCreate, resultSuccess)
	s.metrics.setStored(count)
	logger.InfoContext(ctx, "created reflection",
		slog.Int("reflection_id", created.ID),
		slog.String("date", created.Date),
	)

	return &created, nil
}

// List returns every reflection in stored order.
func (s *ReflectionService) List(ctx context.Context) ([]domain.Reflection, error) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.metrics.observe(operationList, resultError)
		return nil, fmt.Errorf("loading reflections: %w", err)
	}

	s.metrics.observe(operationList, resultSuccess)
	s.metrics.setStored(len(entries))
	s.loggerFrom(ctx).DebugContext(ctx, "listed reflections", slog.Int("count", len(entries)))

	return entries, nil
}

// Update overwrites the fields present in patch on the reflection with id.
// Title and content are not re-checked for emptiness.
func (s *ReflectionService) Update(ctx context.Context, id int, patch domain.ReflectionPatch) (*domain.Reflection, error) {
	logger := s.loggerFrom(ctx).With(slog.Int("reflection_id", id))

	if err := patch.Validate(); err != nil {
		s.metrics.observe(operationUpdate, resultInvalid)
		return nil, fmt.Errorf("validating patch: %w", err)
	}

	var updated domain.Reflection

	err := s.store.Update(ctx, func(entries []domain.Reflection) ([]domain.Reflection, error) {
		i := domain.IndexOf(entries, id)
		if i < 0 {
			return nil, domain.NewNotFoundError(domain.EntityReflection, id)
		}

		patch.Apply(&entries[i])
		updated = entries[i]

		return entries, nil
	})
	if err != nil {
		s.observeFailure(operationUpdate, err)

		if !domain.IsNotFound(err) {
			logger.ErrorContext(ctx, "failed to update reflection", slog.Any("error", err))
		}

		return nil, fmt.Errorf("updating reflection: %w", err)
	}

	s.metrics.observe(operationUpdate, resultSuccess)
	logger.InfoContext(ctx, "updated reflection")

	return &updated, nil
}

// Delete removes the reflection with id.
func (s *ReflectionService) Delete(ctx context.Context, id int) error {
	logger := s.loggerFrom(ctx).With(slog.Int("reflection_id", id))

	var count int

	err := s.store.Update(ctx, func(entries []domain.Reflection) ([]domain.Reflection, error) {
		kept, removed := domain.Remove(entries, id)
		if !removed {
			return nil, domain.NewNotFoundError(domain.EntityReflection, id)
		}

		count = len(kept)

		return kept, nil
	})
	if err != nil {
		s.observeFailure(operationDelete, err)

		if !domain.IsNotFound(err) {
			logger.ErrorContext(ctx, "failed to delete reflection", slog.Any("error", err))
		}

		return fmt.Errorf("deleting reflection: %w", err)
	}

	s.metrics.observe(operationDelete, resultSuccess)
	s.metrics.setStored(count)
	logger.InfoContext(ctx, "deleted reflection")

	return nil
}

func (s *ReflectionService) observeFailure(operation string, err error) {
	switch {
	case domain.IsNotFound(err):
		s.metrics.observe(operation, resultNotFound)
	case errors.Is(err, domain.ErrValidation):
		s.metrics.observe(operation, resultInvalid)
	default:
		s.metrics.observe(operation, resultError)
	}
}

// loggerFrom prefers the request-scoped logger so request ids follow the
// use case logs.
func (s *ReflectionService) loggerFrom(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}
