// Package domain contains core business entities and rules.
package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for reflection dates (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// EntityReflection names the reflection entity in errors and logs.
const EntityReflection = "reflection"

// Reflection is a single learning-journal entry.
// This is a domain entity - it has no knowledge of how it is stored or served.
type Reflection struct {
	// ID is the store-assigned identifier, unique within the store.
	ID int

	// Date is the calendar day of the entry in DateLayout form.
	Date string

	// Title is a short, required heading.
	Title string

	// Content is the required body text.
	Content string

	// Tags are free-form labels. Never nil for entries built by this package.
	Tags []string
}

// NewReflection carries the caller-supplied fields for creating a reflection.
// The identifier is always assigned by the store.
type NewReflection struct {
	Date    string
	Title   string
	Content string
	Tags    []string
}

// Validate checks the creation rules: title and content are required and
// a supplied date must be a valid calendar date.
func (n NewReflection) Validate() error {
	if n.Title == "" {
		return NewValidationError("title", "title is required")
	}

	if n.Content == "" {
		return NewValidationError("content", "content is required")
	}

	if n.Date != "" {
		return ValidateDate(n.Date)
	}

	return nil
}

// Build materializes the reflection with the given id, defaulting the date
// to the calendar day of now and the tags to an empty list.
func (n NewReflection) Build(id int, now time.Time) Reflection {
	date := n.Date
	if date == "" {
		date = now.Format(DateLayout)
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}

	return Reflection{
		ID:      id,
		Date:    date,
		Title:   n.Title,
		Content: n.Content,
		Tags:    tags,
	}
}

// ReflectionPatch is a partial update. Nil fields are left untouched.
type ReflectionPatch struct {
	Date    *string
	Title   *string
	Content *string
	Tags    *[]string
}

// IsEmpty reports whether the patch changes nothing.
func (p ReflectionPatch) IsEmpty() bool {
	return p.Date == nil && p.Title == nil && p.Content == nil && p.Tags == nil
}

// Validate checks the fields present in the patch. Title and content are
// deliberately not re-checked for emptiness.
func (p ReflectionPatch) Validate() error {
	if p.Date != nil {
		return ValidateDate(*p.Date)
	}

	return nil
}

// Apply overwrites the fields of r that are present in the patch.
func (p ReflectionPatch) Apply(r *Reflection) {
	if p.Title != nil {
		r.Title = *p.Title
	}

	if p.Content != nil {
		r.Content = *p.Content
	}

	if p.Date != nil {
		r.Date = *p.Date
	}

	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}

		r.Tags = tags
	}
}

// ValidateDate reports a validation error unless s is a DateLayout date.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return NewValidationErrorWithValue("date", "date must be in YYYY-MM-DD format", s)
	}

	return nil
}

// NextID returns the identifier for a new reflection: 1 for an empty
// store, otherwise one more than the largest existing id. Non-positive ids
// count as 0.
func NextID(entries []Reflection) int {
	highest := 0
	for _, e := range entries {
		if e.ID > highest {
			highest = e.ID
		}
	}

	return highest + 1
}

// IndexOf returns the position of the reflection with the given id, or -1.
func IndexOf(entries []Reflection, id int) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}

	return -1
}

// Remove returns entries without any reflection carrying id and whether
// something was removed. The input slice is not modified.
func Remove(entries []Reflection, id int) ([]Reflection, bool) {
	kept := make([]Reflection, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}

	return kept, len(kept) != len(entries)
}

// ParseTags splits a comma-separated tag list, trimming whitespace and
// dropping empty tokens.
func ParseTags(input string) []string {
	tags := []string{}
	for _, token := range strings.Split(input, ",") {
		if tag := strings.TrimSpace(token); tag != "" {
			tags = append(tags, tag)
		}
	}

	return tags
}
