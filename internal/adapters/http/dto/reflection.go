package dto

import (
	"github.com/jsamuelsen/learning-journal/internal/domain"
)

// CreateReflectionRequest is the POST /api/reflections body. Any id sent by
// the client is ignored.
type CreateReflectionRequest struct {
	Date    string   `json:"date"    validate:"omitempty,datetime=2006-01-02"`
	Title   string   `json:"title"   validate:"required"`
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// ToDomain converts the request into creation input.
func (r *CreateReflectionRequest) ToDomain() domain.NewReflection {
	return domain.NewReflection{
		Date:    r.Date,
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
	}
}

// UpdateReflectionRequest is the PUT /api/reflections/:id body. Absent keys
// leave the stored value alone; present keys overwrite it, empty strings
// included.
type UpdateReflectionRequest struct {
	Date    *string   `json:"date"    validate:"omitempty,datetime=2006-01-02"`
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// ToDomain converts the request into a patch.
func (r *UpdateReflectionRequest) ToDomain() domain.ReflectionPatch {
	return domain.ReflectionPatch{
		Date:    r.Date,
		Title:   r.Title,
		Content: r.Content,
		Tags:    r.Tags,
	}
}

// ReflectionResponse is the wire form of a reflection.
type ReflectionResponse struct {
	ID      int      `json:"id"`
	Date    string   `json:"date"`
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// NewReflectionResponse converts a domain reflection. Tags are never null.
func NewReflectionResponse(r *domain.Reflection) ReflectionResponse {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}

	return ReflectionResponse{
		ID:      r.ID,
		Date:    r.Date,
		Title:   r.Title,
		Content: r.Content,
		Tags:    tags,
	}
}

// NewReflectionListResponse converts a collection, keeping order. An empty
// collection encodes as [].
func NewReflectionListResponse(entries []domain.Reflection) []ReflectionResponse {
	out := make([]ReflectionResponse, 0, len(entries))
	for i := range entries {
		out = append(out, NewReflectionResponse(&entries[i]))
	}

	return out
}

// MessageResponse carries a plain confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}
