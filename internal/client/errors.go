package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnexpectedStatus marks a response whose status is not the one an
// operation requires, e.g. a delete answered with anything but 204.
var ErrUnexpectedStatus = errors.New("unexpected status")

// APIError is a non-success response from one of the services.
type APIError struct {
	Status int
	Detail string
	// fallback replaces the generic status message when Detail is empty.
	fallback string
	wrapped  error
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.fallback != "" {
		return e.fallback
	}
	return fmt.Sprintf("HTTP error! status: %d", e.Status)
}

func (e *APIError) Unwrap() error { return e.wrapped }

// IsStatus reports whether err is an APIError carrying the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// validationIssue mirrors one entry of a list-shaped detail payload.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// decodeError turns a failed response into an APIError, preferring the
// server-supplied detail text.
func decodeError(resp *http.Response, fallback string) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, fallback: fallback}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		apiErr.Detail = detail
		return apiErr
	}

	var issues []validationIssue
	if err := json.Unmarshal(payload.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg != "" {
				msgs = append(msgs, issue.Msg)
			}
		}
		apiErr.Detail = strings.Join(msgs, "; ")
	}
	return apiErr
}
