package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/learning-journal/internal/domain"
	"github.com/jsamuelsen/learning-journal/internal/platform/logging"
)

// Messages shared with the browser client.
const (
	MessageNotFound        = "Entry not found"
	MessageFieldsRequired  = "Title and content are required"
	MessageInvalidJSON     = "Request body must be valid JSON"
	MessageTimeout         = "request timed out"
	MessageInternal        = "an internal error occurred"
	MessageDeleted         = "Entry deleted successfully"
	MessageSaveFailed      = "Failed to save entry"
	MessageUpdateFailed    = "Failed to update entry"
	MessageDeleteFailed    = "Failed to delete entry"
	MessageLoadFailed      = "Failed to load entries"
	MessageRequestTooLarge = "request body too large"
)

// MapDomainError maps err to a status and error body. Errors that are not
// domain errors become a 500 carrying fallback, so internals never leak.
func MapDomainError(err error, fallback string) (int, *ErrorResponse) {
	var validationErr *domain.ValidationError

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, MessageNotFound)

	case errors.As(err, &validationErr):
		resp := NewErrorResponse(ErrorCodeValidation, validationErr.Message)
		if validationErr.Field != "" {
			resp.WithDetails(map[string]string{validationErr.Field: validationErr.Message})
		}

		return http.StatusBadRequest, resp

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, MessageTimeout)

	default:
		if fallback == "" {
			fallback = MessageInternal
		}

		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, fallback)
	}
}

// HandleError writes the error response for err. Server-side failures are
// logged with the full error.
func HandleError(c *gin.Context, err error, fallback string) {
	status, resp := MapDomainError(err, fallback)
	resp.WithTraceID(GetTraceID(c))

	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Int("status", status),
			slog.Any("error", err),
		)
	}

	c.JSON(status, resp)
}

// HandleBindError writes the 400 for a body that failed BindAndValidate.
// Missing title or content keeps the historical message.
func HandleBindError(c *gin.Context, err error) {
	var maxErr *http.MaxBytesError

	switch {
	case errors.As(err, &maxErr):
		c.JSON(http.StatusRequestEntityTooLarge,
			NewErrorResponse(ErrorCodeBadRequest, MessageRequestTooLarge).WithTraceID(GetTraceID(c)))

	case errors.Is(err, ErrBinding):
		c.JSON(http.StatusBadRequest,
			NewErrorResponse(ErrorCodeBadRequest, MessageInvalidJSON).WithTraceID(GetTraceID(c)))

	default:
		details := ValidationErrors(err)

		message := "request validation failed"
		if _, ok := details["title"]; ok {
			message = MessageFieldsRequired
		} else if _, ok := details["content"]; ok {
			message = MessageFieldsRequired
		} else if msg, ok := details["date"]; ok {
			message = "date " + msg
		}

		c.JSON(http.StatusBadRequest,
			NewErrorResponse(ErrorCodeValidation, message).WithDetails(details).WithTraceID(GetTraceID(c)))
	}
}
