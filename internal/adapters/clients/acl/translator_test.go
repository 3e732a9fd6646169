package acl

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/domain"
)

func response(status int, body string) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(body))}
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name      string
		resp      *http.Response
		clientErr error
		check     func(*testing.T, error)
	}{
		{
			name: "not found carries id",
			resp: response(http.StatusNotFound, `{"error":"Entry not found","code":"NOT_FOUND"}`),
			check: func(t *testing.T, err error) {
				var nf *domain.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, 12, nf.ID)
				assert.Equal(t, domain.EntityReflection, nf.Entity)
			},
		},
		{
			name: "validation with details",
			resp: response(http.StatusBadRequest, `{"error":"Title and content are required","code":"VALIDATION_ERROR","details":{"title":"this field is required"}}`),
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "title", ve.Field)
				assert.Equal(t, "this field is required", ve.Message)
			},
		},
		{
			name: "validation without details keeps message",
			resp: response(http.StatusBadRequest, `{"error":"Request body must be valid JSON","code":"BAD_REQUEST"}`),
			check: func(t *testing.T, err error) {
				var ve *domain.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "Request body must be valid JSON", ve.Message)
			},
		},
		{
			name: "server error without body",
			resp: response(http.StatusInternalServerError, ``),
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUnavailable(err))
				assert.Contains(t, err.Error(), "status 500")
			},
		},
		{
			name:      "circuit open",
			clientErr: clients.ErrCircuitOpen,
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUnavailable(err))
				assert.Contains(t, err.Error(), "circuit breaker open")
			},
		},
		{
			name:      "retries exhausted",
			clientErr: errors.Join(clients.ErrMaxRetriesExceeded, errors.New("connection refused")),
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUnavailable(err))
				assert.Contains(t, err.Error(), "max retries")
			},
		},
		{
			name: "no response",
			check: func(t *testing.T, err error) {
				assert.True(t, domain.IsUnavailable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(tt.resp, tt.clientErr, "journal-service", "update reflection", 12)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestMapHTTPError_SuccessIsNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(response(http.StatusCreated, `{}`), nil, "journal-service", "create", 0))
}

func TestTranslateReflection(t *testing.T) {
	t.Run("null tags become empty", func(t *testing.T) {
		r, err := translateReflection(&reflectionDTO{ID: 3, Date: "2024-01-01", Title: "t", Content: "c"})
		require.NoError(t, err)
		assert.Equal(t, []string{}, r.Tags)
	})

	t.Run("non-positive id rejected", func(t *testing.T) {
		_, err := translateReflection(&reflectionDTO{ID: 0, Title: "t"})
		assert.True(t, domain.IsValidation(err))
	})
}

func TestTranslateSlice_ReportsIndex(t *testing.T) {
	_, err := TranslateSlice([]reflectionDTO{{ID: 1}, {ID: -1}}, translateReflection)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "item 1")
}

func TestUpdateDTO_OmitsNilFields(t *testing.T) {
	title := ""
	data, err := json.Marshal(toUpdateDTO(domain.ReflectionPatch{Title: &title}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"title":""}`, string(data))
}

func TestCreateDTO_NilTagsEncodeAsArray(t *testing.T) {
	data, err := json.Marshal(toCreateDTO(domain.NewReflection{Title: "t", Content: "c"}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"t","content":"c","tags":[]}`, string(data))
}

func TestDecodeResponse(t *testing.T) {
	got, err := DecodeResponse[reflectionDTO](io.NopCloser(strings.NewReader(`{"id":1,"title":"x"}`)))
	require.NoError(t, err)
	assert.Equal(t, 1, got.ID)

	_, err = DecodeResponse[reflectionDTO](io.NopCloser(strings.NewReader(`nope`)))
	require.Error(t, err)

	_, err = DecodeResponse[reflectionDTO](nil)
	require.Error(t, err)
}
