package acl

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsamuelsen/learning-journal/internal/domain"
)

// reflectionDTO is an entry as the service encodes it.
type reflectionDTO struct {
	ID      int      `json:"id"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// createDTO is the POST body. The service assigns the id.
type createDTO struct {
	Date    string   `json:"date,omitempty"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// updateDTO is the PUT body. Nil fields are left out so the service keeps
// the stored values.
type updateDTO struct {
	Date    *string   `json:"date,omitempty"`
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

func toCreateDTO(in domain.NewReflection) createDTO {
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	return createDTO{Date: in.Date, Title: in.Title, Content: in.Content, Tags: tags}
}

func toUpdateDTO(p domain.ReflectionPatch) updateDTO {
	return updateDTO{Date: p.Date, Title: p.Title, Content: p.Content, Tags: p.Tags}
}

// translateReflection validates a wire entry and converts it. Entries
// without a usable id are rejected; dates are taken as stored since older
// files may hold free-form values.
func translateReflection(ext *reflectionDTO) (*domain.Reflection, error) {
	if ext.ID <= 0 {
		return nil, domain.NewValidationErrorWithValue("id", "must be positive", ext.ID)
	}

	tags := ext.Tags
	if tags == nil {
		tags = []string{}
	}

	return &domain.Reflection{
		ID:      ext.ID,
		Date:    ext.Date,
		Title:   ext.Title,
		Content: ext.Content,
		Tags:    tags,
	}, nil
}

// Translator converts an external DTO into a domain value, validating it.
type Translator[External any, Domain any] func(ext *External) (*Domain, error)

// TranslateSlice applies translate to every item, stopping at the first error.
func TranslateSlice[E any, D any](items []E, translate Translator[E, D]) ([]D, error) {
	result := make([]D, 0, len(items))

	for i := range items {
		translated, err := translate(&items[i])
		if err != nil {
			return nil, fmt.Errorf("translating item %d: %w", i, err)
		}

		result = append(result, *translated)
	}

	return result, nil
}

// DecodeResponse decodes a JSON body into T and closes it.
func DecodeResponse[T any](body io.ReadCloser) (*T, error) {
	if body == nil {
		return nil, fmt.Errorf("response body is nil")
	}
	defer func() { _ = body.Close() }()

	var result T
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}
