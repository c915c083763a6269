// Package api provides the signed HTTP transport shared by every NetSuite
// surface: record REST, RESTlet and SuiteQL.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-netsuite/internal/oauth"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB
)

// EncodingError reports a request that could not be serialized or signed:
// a malformed target URL or a body that does not marshal to JSON.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return "netsuite: encoding request: " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure: connection refused,
// timeout, DNS resolution. It never wraps an HTTP status code.
type TransportError struct {
	Op  string // "METHOD url"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("netsuite: transport: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Transport signs and dispatches HTTP requests. Each call issues exactly one
// network request; retry policy belongs to the caller or to the configured
// http.Client.
type Transport struct {
	Signer     *oauth.Signer
	HTTPClient *http.Client
	Logger     *zap.Logger
	UserAgent  string
}

// NewTransport creates a Transport with the given configuration.
func NewTransport(signer *oauth.Signer, httpClient *http.Client, logger *zap.Logger) *Transport {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: defaultHTTPTimeout,
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Transport{
		Signer:     signer,
		HTTPClient: httpClient,
		Logger:     logger,
		UserAgent:  "go-netsuite/1.0",
	}
}

// Request represents one outbound API request. URL must be absolute; each
// service variant builds its own.
type Request struct {
	Method  string
	URL     string
	Body    any
	Headers http.Header
	Cookies []*http.Cookie
}

// Response captures the raw result of a request. Non-2xx status codes are
// data, not errors; interpretation is the caller's.
type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
}

// Do executes an API request and returns the raw response.
func (t *Transport) Do(ctx context.Context, req *Request) (*Response, error) {
	httpReq, err := t.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	t.Logger.Debug("sending request",
		zap.String("method", httpReq.Method),
		zap.String("url", req.URL))

	httpResp, err := t.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Op: httpReq.Method + " " + req.URL, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	// Limit response body size to prevent memory exhaustion
	limitedReader := io.LimitReader(httpResp.Body, defaultMaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, &TransportError{Op: httpReq.Method + " " + req.URL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if int64(len(body)) > defaultMaxBodySize {
		return nil, fmt.Errorf("response too large: exceeds %d bytes", defaultMaxBodySize)
	}

	t.Logger.Debug("received response",
		zap.String("method", httpReq.Method),
		zap.String("url", req.URL),
		zap.Int("status", httpResp.StatusCode))

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
		Headers:    httpResp.Header,
	}, nil
}

func (t *Transport) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	method := strings.ToUpper(req.Method)

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &EncodingError{Err: fmt.Errorf("marshaling request body: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	// A fresh nonce/timestamp pair and signature per request, computed over
	// this exact method and URL.
	authorization, err := t.Signer.Header(method, req.URL)
	if err != nil {
		return nil, &EncodingError{Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, bodyReader)
	if err != nil {
		return nil, &EncodingError{Err: fmt.Errorf("creating request: %w", err)}
	}

	// Set default headers
	httpReq.Header.Set("Authorization", authorization)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Prefer", "transient")
	httpReq.Header.Set("Cache-Control", "no-cache")
	httpReq.Header.Set("User-Agent", t.UserAgent)

	// Apply custom headers
	maps.Copy(httpReq.Header, req.Headers)

	for _, cookie := range req.Cookies {
		httpReq.AddCookie(cookie)
	}

	return httpReq, nil
}
