package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/learning-journal/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	return New(filepath.Join(t.TempDir(), "backend", "reflections.json"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sample() []domain.Reflection {
	return []domain.Reflection{
		{ID: 1, Date: "2024-01-15", Title: "Go interfaces", Content: "Accept interfaces, return structs.", Tags: []string{"go"}},
		{ID: 2, Date: "2024-01-16", Title: "Café <notes>", Content: "naïve & ünïcode", Tags: []string{}},
	}
}

func TestLoad_MissingFile(t *testing.T) {
	entries, err := newTestStore(t).Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoad_MalformedFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"id": 1, "title": `},
		{"object instead of array", `{"id": 1}`},
		{"empty file", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer

			path := filepath.Join(t.TempDir(), "reflections.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			store := New(path, slog.New(slog.NewJSONHandler(&logs, nil)))

			entries, err := store.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, entries)
			assert.Contains(t, logs.String(), `"level":"WARN"`)
		})
	}
}

func TestLoad_NullTagsBecomeEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reflections.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"date":"2024-01-01","title":"t","content":"c"}]`), 0o600))

	entries, err := New(path, nil).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{}, entries[0].Tags)
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestStore(t).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sample()))

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sample(), entries)
}

func TestSave_FileFormat(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), sample()[1:]))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	expected := "[\n" +
		"    {\n" +
		"        \"id\": 2,\n" +
		"        \"date\": \"2024-01-16\",\n" +
		"        \"title\": \"Café <notes>\",\n" +
		"        \"content\": \"naïve & ünïcode\",\n" +
		"        \"tags\": []\n" +
		"    }\n" +
		"]\n"
	assert.Equal(t, expected, string(data))
}

func TestSave_EmptyCollection(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), nil))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), sample()))

	files, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "reflections.json", files[0].Name())
}

func TestUpdate_AppliesMutation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, func(entries []domain.Reflection) ([]domain.Reflection, error) {
		return append(entries, domain.Reflection{ID: domain.NextID(entries), Title: "first", Content: "c", Tags: []string{}}), nil
	})
	require.NoError(t, err)

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].ID)
}

func TestUpdate_MutationErrorSkipsWrite(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, sample()))

	before, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, func([]domain.Reflection) ([]domain.Reflection, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	after, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate_ConcurrentAppendsKeepUniqueIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 20

	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_ = store.Update(ctx, func(entries []domain.Reflection) ([]domain.Reflection, error) {
				return append(entries, domain.Reflection{ID: domain.NextID(entries), Title: "t", Content: "c"}), nil
			})
		}()
	}

	wg.Wait()

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, writers)

	seen := make(map[int]bool, writers)
	for _, e := range entries {
		assert.False(t, seen[e.ID], "duplicate id %d", e.ID)
		seen[e.ID] = true
	}
}

func TestCheck(t *testing.T) {
	store := newTestStore(t)

	assert.Equal(t, "reflection-store", store.Name())
	require.NoError(t, store.Check(context.Background()))

	files, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCheck_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	store := New(filepath.Join(blocker, "reflections.json"), nil)

	err := store.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
}
