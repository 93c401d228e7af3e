package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError represents a non-2xx HTTP response from the back-office API,
// normalized to a fixed shape regardless of what the backend sent.
type APIError struct {
	StatusCode int
	Message    string
	Details    any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ConnError represents a transport-level failure: no response was
// received at all. The original cause is attached for unwrapping.
type ConnError struct {
	Err error
}

func (e *ConnError) Error() string {
	return "connection error: unable to reach the server"
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// IsStatus returns true if err (or any wrapped error) is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}

// IsConnError returns true if err (or any wrapped error) is a ConnError.
func IsConnError(err error) bool {
	var connErr *ConnError
	return errors.As(err, &connErr)
}

// statusMessages are the fallback messages used when the error body
// carries no message of its own.
var statusMessages = map[int]string{
	400: "invalid credentials",
	401: "not authenticated",
	403: "forbidden",
	404: "not found",
	409: "conflict (e.g., duplicate email)",
	500: "internal error",
}

// genericMessage is the last-resort message for unknown statuses.
const genericMessage = "unexpected API error"

// errorBody is the shape the backend uses for error responses.
// Message is either a single string or a list of validation messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
	Details any             `json:"details"`
}

// mapError normalizes an HTTP failure status and its (possibly nil or
// malformed) response body into an *APIError. Message resolution order:
// the body's own message field, then a per-status default, then a
// generic fallback. mapError never returns nil.
func mapError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var parsed errorBody
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		apiErr.Message = decodeMessage(parsed.Message)
		apiErr.Details = parsed.Details
	}
	if apiErr.Message == "" {
		apiErr.Message = statusMessages[status]
	}
	if apiErr.Message == "" {
		apiErr.Message = genericMessage
	}
	return apiErr
}

// decodeMessage handles the two message shapes the backend emits:
// a plain string, or a list of validation strings joined with ", ".
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if json.Unmarshal(raw, &single) == nil {
		return single
	}
	var many []string
	if json.Unmarshal(raw, &many) == nil {
		return strings.Join(many, ", ")
	}
	return ""
}
