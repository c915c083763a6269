package netsuite

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tphakala/go-netsuite/internal/api"
)

// Response is the raw result of one API call. The client hands every
// response back as-is, including non-2xx statuses; inspect StatusCode (or
// call Err) before reading the body.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// JSON unmarshals the response body into v.
func (r *Response) JSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

func newResponse(r *api.Response) *Response {
	return &Response{
		StatusCode: r.StatusCode,
		Body:       r.Body,
		Headers:    r.Headers,
	}
}

// Row is one result row of a SuiteQL query, mapping column name to value in
// the server-declared shape.
type Row map[string]any

// Link is a HATEOAS link from a query or list response.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// QueryPage is one page of SuiteQL results.
type QueryPage struct {
	Links        []Link `json:"links"`
	Count        int    `json:"count"`
	HasMore      bool   `json:"hasMore"`
	Offset       int    `json:"offset"`
	TotalResults int    `json:"totalResults"`
	Items        []Row  `json:"items"`
}

// Next returns the continuation URL for the following page, or "" when the
// server supplied none. The URL is opaque; it is echoed back verbatim on
// the next request.
func (p *QueryPage) Next() string {
	for _, link := range p.Links {
		if link.Rel == "next" {
			return link.Href
		}
	}
	return ""
}

// ListParams configures record list requests. The zero value requests the
// server defaults.
type ListParams struct {
	// Limit caps the number of records per page.
	Limit int

	// Offset skips that many records from the start of the result set.
	Offset int

	// Query is a record filter expression, passed through as the "q"
	// parameter.
	Query string
}

func (p *ListParams) values() url.Values {
	v := url.Values{}
	if p == nil {
		return v
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		v.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	return v
}
