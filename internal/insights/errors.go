package insights

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// unknownErrorMessage is used when neither the body nor the status code yield a message.
const unknownErrorMessage = "An unknown error occurred"

// APIError is the single failure kind returned for a request that did not succeed:
// a non-2xx response, a transport failure, or an invalid argument caught before sending.
// Error returns Message unchanged so callers can show it as-is.
type APIError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// MalformedResponseError reports a 2xx response whose body does not match the declared shape.
type MalformedResponseError struct {
	Endpoint string
	Cause    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Cause)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}

// errorMessage extracts the message for a failed response: a non-empty string "detail"
// field when the body carries one, else the status reason phrase.
func errorMessage(statusCode int, body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if detail, ok := payload.Detail.(string); ok && detail != "" {
			return detail
		}
	}

	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return unknownErrorMessage
}
