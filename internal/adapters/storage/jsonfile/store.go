// Package jsonfile persists the reflection collection as a single
// pretty-printed JSON array on local disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/platform/logging"
	"github.com/jsamuelsen/learning-journal/internal/platform/telemetry"
	"github.com/jsamuelsen/learning-journal/internal/ports"
)

const (
	checkerName = "reflection-store"
	indent      = "    "
	dirMode     = 0o755
	fileMode    = 0o644
)

// record is the on-disk shape of a reflection. Field order here is the
// field order in the file.
type record struct {
	ID      int      `json:"id"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// Store reads and writes the whole collection on every call.
// Update cycles on one Store never interleave; other processes writing the
// same file are not coordinated with.
type Store struct {
	path   string
	logger *slog.Logger
	tracer trace.Tracer
	mu     sync.Mutex
}

var (
	_ ports.ReflectionStore = (*Store)(nil)
	_ ports.HealthChecker   = (*Store)(nil)
)

// New returns a store backed by the file at path. The file need not exist.
func New(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.FromContext(context.Background())
	}

	return &Store{
		path:   path,
		logger: logger.With(slog.String("component", checkerName), slog.String("path", path)),
		tracer: telemetry.Tracer(),
	}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored reflections. A missing, unreadable or malformed
// file yields an empty collection; the only error is ctx's.
func (s *Store) Load(ctx context.Context) ([]domain.Reflection, error) {
	ctx, span := s.tracer.Start(ctx, "jsonfile.Load")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries := s.read(ctx)
	span.SetAttributes(attribute.Int("reflections.count", len(entries)))

	return entries, nil
}

// Save replaces the file with entries.
func (s *Store) Save(ctx context.Context, entries []domain.Reflection) error {
	ctx, span := s.tracer.Start(ctx, "jsonfile.Save")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.write(entries); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "write failed")

		return err
	}

	s.logger.Log(ctx, logging.LevelTrace, "reflections saved", slog.Int("count", len(entries)))

	return nil
}

// Update loads the collection, applies mutate and saves the result while
// holding the store lock. Nothing is written when mutate fails.
func (s *Store) Update(ctx context.Context, mutate ports.MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.Load(ctx)
	if err != nil {
		return err
	}

	updated, err := mutate(entries)
	if err != nil {
		return err
	}

	return s.Save(ctx, updated)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return checkerName
}

// Check reports whether the data directory exists (or can be created) and
// accepts new files.
func (s *Store) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return domain.NewUnavailableError(checkerName, err.Error())
	}

	probe, err := os.CreateTemp(dir, ".health-*")
	if err != nil {
		return domain.NewUnavailableError(checkerName, err.Error())
	}

	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return nil
}

func (s *Store) read(ctx context.Context) []domain.Reflection {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.WarnContext(ctx, "reading reflections failed, treating store as empty", slog.Any("error", err))
		}

		return []domain.Reflection{}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		s.logger.WarnContext(ctx, "reflections file is malformed, treating store as empty", slog.Any("error", err))
		return []domain.Reflection{}
	}

	entries := make([]domain.Reflection, 0, len(records))
	for _, r := range records {
		entries = append(entries, fromRecord(r))
	}

	return entries
}

func (s *Store) write(entries []domain.Reflection) error {
	records := make([]record, 0, len(entries))
	for _, e := range entries {
		records = append(records, toRecord(e))
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding reflections: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing reflections: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpName, fileMode); err != nil {
		return fmt.Errorf("setting file mode: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing reflections file: %w", err)
	}

	return nil
}

func toRecord(r domain.Reflection) record {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return record{ID: r.ID, Date: r.Date, Title: r.Title, Content: r.Content, Tags: tags}
}

func fromRecord(r record) domain.Reflection {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.Reflection{ID: r.ID, Date: r.Date, Title: r.Title, Content: r.Content, Tags: tags}
}
