package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when a 401 response could not be recovered by
// the one-shot token refresh and the caller must return to the login flow.
var ErrSessionExpired = errors.New("session expired")

// Error is a failure reported by the backend. Validation failures carry the
// backend's field errors untouched so the form layer can display them.
type Error struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// IsValidation reports whether this is a field-level validation failure.
func (e *Error) IsValidation() bool {
	return len(e.Fields) > 0
}

// decodeError turns a non-2xx response into an *Error, preserving the
// backend's message and field errors when the body is parseable.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return apiErr
	}

	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	} else if msg := strings.TrimSpace(string(data)); msg != "" && len(msg) < 200 {
		apiErr.Message = msg
	}

	return apiErr
}
