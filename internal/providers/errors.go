package providers

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrProviderUnavailable signals a nil or misconfigured provider.
var ErrProviderUnavailable = errors.New("provider unavailable")

// APIError captures a non-2xx upstream response. Detail carries the
// structured message from the JSON body when one was present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = "upstream request failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", detail, e.StatusCode)
	}
	return detail
}

// AsAPIError attempts to unwrap an error into an APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether the error is an upstream 404.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.StatusCode == http.StatusNotFound
}

// Detail extracts the upstream message from an error, falling back to the
// given message for transport failures and decode errors. Validation-style
// upstream rejections keep their original wording so the caller can show
// them verbatim.
func Detail(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
