package netsuite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"

	"github.com/tphakala/go-netsuite/internal/api"
)

const (
	suiteQLPath = "/services/rest/query/v1/suiteql"

	// maxQueryPages caps the pagination loop. NetSuite serves at most 1000
	// rows per page, so a run this long means the server is looping or
	// lying about hasMore.
	maxQueryPages = 10000
)

// NetSuite routes SuiteQL traffic by this cookie.
var routingCookie = &http.Cookie{Name: "NS_ROUTING_VERSION", Value: "LAGGING"}

// SuiteQLService executes SuiteQL queries. Query text is passed through
// opaquely; it is not parsed or validated client-side.
type SuiteQLService interface {
	// Query returns an iterator over all rows of the query result, fetching
	// pages lazily as you iterate.
	Query(ctx context.Context, query string, opts ...RequestOption) iter.Seq2[Row, error]

	// QueryAll fetches every page and returns the complete result set in
	// server order. Any page failure aborts the whole operation; no partial
	// results are returned.
	QueryAll(ctx context.Context, query string, opts ...RequestOption) ([]Row, error)

	// QueryPage fetches a single page. An empty pageURL requests the first
	// page; otherwise pageURL must be the continuation URL from the
	// previous page's Next link.
	QueryPage(ctx context.Context, query, pageURL string, opts ...RequestOption) (*QueryPage, error)
}

// suiteQLService implements SuiteQLService.
type suiteQLService struct {
	transport *api.Transport
	queryURL  string
}

func newSuiteQLService(transport *api.Transport, queryURL string) *suiteQLService {
	return &suiteQLService{transport: transport, queryURL: queryURL}
}

// suiteQLRequest is the query endpoint's wire format.
type suiteQLRequest struct {
	Q string `json:"q"`
}

// Query returns an iterator over all rows of the query result.
func (s *suiteQLService) Query(ctx context.Context, query string, opts ...RequestOption) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		pageURL := ""

		for n := 0; ; n++ {
			if n >= maxQueryPages {
				yield(nil, &PaginationError{Pages: n, Err: errors.New("page ceiling exceeded")})
				return
			}

			page, err := s.QueryPage(ctx, query, pageURL, opts...)
			if err != nil {
				yield(nil, err)
				return
			}

			for _, row := range page.Items {
				if err := ctx.Err(); err != nil {
					yield(nil, err)
					return
				}
				if !yield(row, nil) {
					return
				}
			}

			if !page.HasMore {
				return
			}

			pageURL = page.Next()
			if pageURL == "" {
				yield(nil, &PaginationError{Pages: n + 1, Err: errors.New("server reported more results but sent no next link")})
				return
			}
		}
	}
}

// QueryAll fetches every page and returns the complete result set.
func (s *suiteQLService) QueryAll(ctx context.Context, query string, opts ...RequestOption) ([]Row, error) {
	var rows []Row
	pageURL := ""

	for n := 0; ; n++ {
		if n >= maxQueryPages {
			return nil, &PaginationError{Pages: n, Err: errors.New("page ceiling exceeded")}
		}

		page, err := s.QueryPage(ctx, query, pageURL, opts...)
		if err != nil {
			return nil, err
		}

		rows = append(rows, page.Items...)

		if !page.HasMore {
			return rows, nil
		}

		pageURL = page.Next()
		if pageURL == "" {
			return nil, &PaginationError{Pages: n + 1, Err: errors.New("server reported more results but sent no next link")}
		}
	}
}

// QueryPage fetches a single page of results.
func (s *suiteQLService) QueryPage(ctx context.Context, query, pageURL string, opts ...RequestOption) (*QueryPage, error) {
	if query == "" {
		return nil, ErrNoQuery
	}

	reqCfg := newRequestConfig()
	reqCfg.apply(opts...)

	u := pageURL
	if u == "" {
		u = s.queryURL
	}

	resp, err := s.transport.Do(ctx, &api.Request{
		Method:  http.MethodPost,
		URL:     u,
		Body:    suiteQLRequest{Q: query},
		Headers: reqCfg.headers,
		Cookies: []*http.Cookie{routingCookie},
	})
	if err != nil {
		return nil, err
	}

	// Unlike the record and RESTlet surfaces, a query cannot meaningfully
	// return a non-2xx page, so the status is interpreted here.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newResponse(resp).Err()
	}

	page := &QueryPage{}
	if resp.StatusCode == http.StatusNoContent {
		return page, nil
	}

	if err := json.Unmarshal(resp.Body, page); err != nil {
		return nil, &PaginationError{Err: fmt.Errorf("decoding query page: %w", err)}
	}
	return page, nil
}
