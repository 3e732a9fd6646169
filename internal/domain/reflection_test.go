package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name     string
		entries  []Reflection
		expected int
	}{
		{name: "empty store starts at one", entries: nil, expected: 1},
		{name: "single entry", entries: []Reflection{{ID: 1}}, expected: 2},
		{name: "uses max not length", entries: []Reflection{{ID: 7}, {ID: 3}}, expected: 8},
		{name: "gaps are not reused", entries: []Reflection{{ID: 1}, {ID: 5}}, expected: 6},
		{name: "missing ids count as zero", entries: []Reflection{{ID: 0}, {ID: 0}}, expected: 1},
		{name: "negative ids count as zero", entries: []Reflection{{ID: -4}}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextID(tt.entries))
		})
	}
}

func TestNewReflection_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     NewReflection
		wantField string
	}{
		{name: "valid minimal", input: NewReflection{Title: "T", Content: "C"}},
		{name: "valid with date", input: NewReflection{Title: "T", Content: "C", Date: "2024-02-29"}},
		{name: "missing title", input: NewReflection{Content: "C"}, wantField: "title"},
		{name: "missing content", input: NewReflection{Title: "T"}, wantField: "content"},
		{name: "bad date", input: NewReflection{Title: "T", Content: "C", Date: "29/02/2024"}, wantField: "date"},
		{name: "impossible date", input: NewReflection{Title: "T", Content: "C", Date: "2023-02-29"}, wantField: "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantField, validation.Field)
		})
	}
}

func TestNewReflection_Build(t *testing.T) {
	now := time.Date(2025, time.March, 9, 22, 15, 0, 0, time.UTC)

	t.Run("applies defaults", func(t *testing.T) {
		r := NewReflection{Title: "T", Content: "C"}.Build(3, now)

		assert.Equal(t, Reflection{
			ID:      3,
			Date:    "2025-03-09",
			Title:   "T",
			Content: "C",
			Tags:    []string{},
		}, r)
	})

	t.Run("keeps supplied values", func(t *testing.T) {
		r := NewReflection{
			Date:    "2024-01-01",
			Title:   "T",
			Content: "C",
			Tags:    []string{"go"},
		}.Build(1, now)

		assert.Equal(t, "2024-01-01", r.Date)
		assert.Equal(t, []string{"go"}, r.Tags)
	})
}

func TestReflectionPatch_Apply(t *testing.T) {
	base := func() Reflection {
		return Reflection{ID: 1, Date: "2024-01-01", Title: "T", Content: "C", Tags: []string{"a"}}
	}

	t.Run("content only", func(t *testing.T) {
		r := base()
		ReflectionPatch{Content: ptr("new")}.Apply(&r)

		assert.Equal(t, Reflection{ID: 1, Date: "2024-01-01", Title: "T", Content: "new", Tags: []string{"a"}}, r)
	})

	t.Run("all fields", func(t *testing.T) {
		r := base()
		ReflectionPatch{
			Date:    ptr("2024-06-30"),
			Title:   ptr("T2"),
			Content: ptr("C2"),
			Tags:    ptr([]string{"b", "c"}),
		}.Apply(&r)

		assert.Equal(t, Reflection{ID: 1, Date: "2024-06-30", Title: "T2", Content: "C2", Tags: []string{"b", "c"}}, r)
	})

	t.Run("empty title is allowed", func(t *testing.T) {
		r := base()
		ReflectionPatch{Title: ptr("")}.Apply(&r)

		assert.Empty(t, r.Title)
	})

	t.Run("nil tags slice becomes empty list", func(t *testing.T) {
		r := base()
		var none []string
		ReflectionPatch{Tags: &none}.Apply(&r)

		assert.NotNil(t, r.Tags)
		assert.Empty(t, r.Tags)
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		r := base()
		p := ReflectionPatch{}
		p.Apply(&r)

		assert.True(t, p.IsEmpty())
		assert.Equal(t, base(), r)
	})
}

func TestReflectionPatch_Validate(t *testing.T) {
	require.NoError(t, ReflectionPatch{}.Validate())
	require.NoError(t, ReflectionPatch{Date: ptr("2024-12-31")}.Validate())
	assert.True(t, IsValidation(ReflectionPatch{Date: ptr("yesterday")}.Validate()))
}

func TestIndexOfAndRemove(t *testing.T) {
	entries := []Reflection{{ID: 1}, {ID: 2}, {ID: 3}}

	assert.Equal(t, 1, IndexOf(entries, 2))
	assert.Equal(t, -1, IndexOf(entries, 999))

	kept, removed := Remove(entries, 2)
	assert.True(t, removed)
	assert.Equal(t, []Reflection{{ID: 1}, {ID: 3}}, kept)
	assert.Len(t, entries, 3, "input must not be modified")

	kept, removed = Remove(kept, 2)
	assert.False(t, removed)
	assert.Len(t, kept, 2)
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{input: "", expected: []string{}},
		{input: "go", expected: []string{"go"}},
		{input: " go , testing ,, ", expected: []string{"go", "testing"}},
		{input: ",,,", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseTags(tt.input))
		})
	}
}
