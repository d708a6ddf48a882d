package notion

import (
	"errors"
	"fmt"
)

var (
	ErrMissingToken      = errors.New("notion: missing integration token")
	ErrMissingDatabaseID = errors.New("notion: missing database id")
	ErrMalformedResponse = errors.New("notion: malformed query response")
)

// APIError is the error object Notion returns with non-2xx responses.
// Error returns the upstream message unchanged.
type APIError struct {
	Object  string `json:"object"`
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("notion: request failed with status %d (%s)", e.Status, e.Code)
	}
	return e.Message
}
