package netsuite

import (
	"context"
	"net/http"
	"net/url"

	"github.com/tphakala/go-netsuite/internal/api"
)

const recordPath = "/services/rest/record/v1"

// RecordService provides access to the SuiteTalk REST record API.
//
// Every method returns the server's response whatever its status code; a
// non-nil error means the request never completed (configuration, encoding
// or network failure), not that NetSuite rejected it. Use Response.Err to
// interpret the status when that is what you want.
type RecordService interface {
	// Get retrieves a single record by type and internal ID.
	Get(ctx context.Context, recordType, id string, opts ...RequestOption) (*Response, error)

	// List retrieves a page of records of the given type. params may be nil
	// for the server defaults.
	List(ctx context.Context, recordType string, params *ListParams, opts ...RequestOption) (*Response, error)

	// Create inserts a new record. body is serialized to JSON.
	Create(ctx context.Context, recordType string, body any, opts ...RequestOption) (*Response, error)

	// Update patches an existing record. Passing null for a field value
	// deletes that value from the record.
	Update(ctx context.Context, recordType, id string, body any, opts ...RequestOption) (*Response, error)

	// Delete removes a record by type and internal ID.
	Delete(ctx context.Context, recordType, id string, opts ...RequestOption) (*Response, error)

	// Do issues a request against a caller-built absolute URL, for
	// endpoints the typed methods do not cover.
	Do(ctx context.Context, method, rawURL string, body any, opts ...RequestOption) (*Response, error)
}

// recordService implements RecordService.
type recordService struct {
	transport *api.Transport
	baseURL   string
}

func newRecordService(transport *api.Transport, baseURL string) *recordService {
	return &recordService{transport: transport, baseURL: baseURL}
}

func (s *recordService) recordURL(recordType, id string) string {
	u := s.baseURL + recordPath + "/" + url.PathEscape(recordType)
	if id != "" {
		u += "/" + url.PathEscape(id)
	}
	return u
}

// Get retrieves a single record by type and internal ID.
func (s *recordService) Get(ctx context.Context, recordType, id string, opts ...RequestOption) (*Response, error) {
	if recordType == "" {
		return nil, ErrNoRecordType
	}
	if id == "" {
		return nil, ErrNoRecordID
	}
	return s.Do(ctx, http.MethodGet, s.recordURL(recordType, id), nil, opts...)
}

// List retrieves a page of records of the given type.
func (s *recordService) List(ctx context.Context, recordType string, params *ListParams, opts ...RequestOption) (*Response, error) {
	if recordType == "" {
		return nil, ErrNoRecordType
	}
	u := s.recordURL(recordType, "")
	if query := params.values().Encode(); query != "" {
		u += "?" + query
	}
	return s.Do(ctx, http.MethodGet, u, nil, opts...)
}

// Create inserts a new record.
func (s *recordService) Create(ctx context.Context, recordType string, body any, opts ...RequestOption) (*Response, error) {
	if recordType == "" {
		return nil, ErrNoRecordType
	}
	return s.Do(ctx, http.MethodPost, s.recordURL(recordType, ""), body, opts...)
}

// Update patches an existing record.
func (s *recordService) Update(ctx context.Context, recordType, id string, body any, opts ...RequestOption) (*Response, error) {
	if recordType == "" {
		return nil, ErrNoRecordType
	}
	if id == "" {
		return nil, ErrNoRecordID
	}
	return s.Do(ctx, http.MethodPatch, s.recordURL(recordType, id), body, opts...)
}

// Delete removes a record by type and internal ID.
func (s *recordService) Delete(ctx context.Context, recordType, id string, opts ...RequestOption) (*Response, error) {
	if recordType == "" {
		return nil, ErrNoRecordType
	}
	if id == "" {
		return nil, ErrNoRecordID
	}
	return s.Do(ctx, http.MethodDelete, s.recordURL(recordType, id), nil, opts...)
}

// Do issues a single signed request against an absolute URL.
func (s *recordService) Do(ctx context.Context, method, rawURL string, body any, opts ...RequestOption) (*Response, error) {
	reqCfg := newRequestConfig()
	reqCfg.apply(opts...)

	resp, err := s.transport.Do(ctx, &api.Request{
		Method:  method,
		URL:     rawURL,
		Body:    body,
		Headers: reqCfg.headers,
	})
	if err != nil {
		return nil, err
	}
	return newResponse(resp), nil
}
