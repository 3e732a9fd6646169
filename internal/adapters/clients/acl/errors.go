package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/learning-journal/internal/adapters/clients"
	"github.com/jsamuelsen/learning-journal/internal/domain"
)

// errorBody is the error envelope returned by the journal service.
type errorBody struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details"`
}

// parseErrorBody decodes an error envelope. It returns nil when the body is
// empty or not an envelope.
func parseErrorBody(body io.Reader) *errorBody {
	if body == nil {
		return nil
	}

	var eb errorBody
	if err := json.NewDecoder(body).Decode(&eb); err != nil {
		return nil
	}

	if eb.Error == "" && eb.Code == "" {
		return nil
	}

	return &eb
}

// MapHTTPError maps a failed call to a domain error. Either clientErr is set
// (no usable response) or resp carries a non-2xx status. id names the entry
// for not-found errors; pass 0 when the call was not about one entry.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string, id int) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	eb := parseErrorBody(resp.Body)

	message := fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	if eb != nil && eb.Error != "" {
		message = eb.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NewNotFoundError(domain.EntityReflection, id)

	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity,
		resp.StatusCode == http.StatusRequestEntityTooLarge:
		if eb != nil {
			for field, msg := range eb.Details {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)

	default:
		return domain.NewUnavailableError(serviceName, message)
	}
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName, "circuit breaker open during "+operation)

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName, "max retries exceeded during "+operation)

	default:
		return domain.NewUnavailableError(serviceName, fmt.Sprintf("%s failed: %v", operation, err))
	}
}
