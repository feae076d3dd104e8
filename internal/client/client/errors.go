package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadResponse  = errors.New("malformed server response")
)

// NetworkError is a transport-level failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrUnavailable }

// APIError is a non-2xx response from the backend. Message is the
// "message" field of a JSON error body, when there is one.
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Message    string
}

func newAPIError(op string, status int, body []byte) *APIError {
	e := &APIError{Op: op, StatusCode: status, Body: string(body)}
	var msg struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &msg) == nil {
		e.Message = msg.Message
	}
	return e
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: api error: %d %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("%s: api error: %d %s: %s", e.Op, e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

func (e *APIError) Is(target error) bool {
	if target != ErrUnauthorized {
		return false
	}
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
