package netsuite

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Sentinel errors for invalid call arguments, returned before any network
// call is attempted.
var (
	ErrNoRecordType = errors.New("netsuite: record type is required")
	ErrNoRecordID   = errors.New("netsuite: record ID is required")
	ErrNoScript     = errors.New("netsuite: restlet script and deploy IDs are required")
	ErrNoQuery      = errors.New("netsuite: query string is required")
)

// ConfigurationError reports a missing credential field, detected at client
// construction before any network call.
type ConfigurationError struct {
	Field string
}

func (e *ConfigurationError) Error() string {
	return "netsuite: missing credential: " + e.Field
}

// EncodingError reports a request that could not be serialized or signed:
// a malformed target URL or a body that does not marshal to JSON.
type EncodingError = api.EncodingError

// TransportError reports a network-level failure (connection refused,
// timeout, DNS). HTTP error statuses are not transport errors; they come
// back as ordinary Response values.
type TransportError = api.TransportError

// PaginationError reports a query pagination loop that could not run to
// completion: the page ceiling was exceeded, a page body was malformed, or
// the server reported more results without a continuation link.
type PaginationError struct {
	Pages int // pages fetched before the failure
	Err   error
}

func (e *PaginationError) Error() string {
	return fmt.Sprintf("netsuite: pagination failed after %d pages: %v", e.Pages, e.Err)
}

func (e *PaginationError) Unwrap() error { return e.Err }

// APIError is a NetSuite error response body. It is only produced on demand
// by Response.Err; the client itself never turns an HTTP status into an
// error.
type APIError struct {
	Type    string        `json:"type,omitempty"`
	Title   string        `json:"title,omitempty"`
	Status  int           `json:"status"`
	Details []ErrorDetail `json:"o:errorDetails,omitempty"`
}

// ErrorDetail is one entry of the o:errorDetails array NetSuite attaches to
// error responses.
type ErrorDetail struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"o:errorCode,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("netsuite: API error %d: %s: %s", e.Status, e.Title, e.Details[0].Detail)
	}
	return fmt.Sprintf("netsuite: API error %d: %s", e.Status, e.Title)
}

// Err interprets the response status code: nil for a 2xx, otherwise an
// *APIError parsed from the NetSuite error body. Falls back to the raw body
// text when the body is not the documented error shape.
func (r *Response) Err() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{}
	if err := json.Unmarshal(r.Body, apiErr); err != nil || apiErr.Title == "" {
		apiErr.Title = strings.TrimSpace(string(r.Body))
	}
	apiErr.Status = r.StatusCode
	return apiErr
}
