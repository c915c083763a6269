// Package retry provides an opt-in retrying http.RoundTripper for use with
// netsuite.WithHTTPClient. The client core never retries on its own; plug
// this in when the caller wants exponential backoff around transient
// failures.
//
//	client, err := netsuite.NewClient(
//	    netsuite.WithConfig(cfg),
//	    netsuite.WithHTTPClient(&http.Client{
//	        Transport: &retry.Transport{MaxElapsed: 30 * time.Second},
//	        Timeout:   5 * time.Second,
//	    }),
//	)
//
// Retried attempts replay the original request bytes, including its signed
// Authorization header.
package retry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultMaxElapsed = 2 * time.Minute

// Transport retries network errors and 5xx responses with exponential
// backoff. 4xx responses are never retried, and a 5xx that persists past the
// backoff window is handed back as an ordinary response, preserving the
// client's status-pass-through contract.
type Transport struct {
	// Base is the underlying round tripper. Defaults to
	// http.DefaultTransport.
	Base http.RoundTripper

	// MaxElapsed bounds the total time spent on attempts. Defaults to two
	// minutes.
	MaxElapsed time.Duration

	// InitialInterval and MaxInterval tune the backoff schedule; zero
	// values take the backoff package defaults.
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// serverStatusError marks a retryable 5xx inside the backoff loop.
type serverStatusError struct {
	code int
}

func (e *serverStatusError) Error() string {
	return fmt.Sprintf("server error: %d", e.code)
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	// Buffer the body so attempts can replay it.
	var body []byte
	if req.Body != nil {
		var err error
		body, err = io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, err
		}
	}

	expBackoff := backoff.NewExponentialBackOff()
	if t.InitialInterval > 0 {
		expBackoff.InitialInterval = t.InitialInterval
	}
	if t.MaxInterval > 0 {
		expBackoff.MaxInterval = t.MaxInterval
	}

	maxElapsed := t.MaxElapsed
	if maxElapsed == 0 {
		maxElapsed = defaultMaxElapsed
	}

	var lastResp *http.Response

	operation := func() (*http.Response, error) {
		attempt := req.Clone(req.Context())
		if body != nil {
			attempt.Body = io.NopCloser(bytes.NewReader(body))
		}

		resp, err := base.RoundTrip(attempt)
		if err != nil {
			// network errors are retryable
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			// Re-buffer the body so the response is still usable if this
			// turns out to be the final attempt.
			b, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				return nil, backoff.Permanent(readErr)
			}
			resp.Body = io.NopCloser(bytes.NewReader(b))
			lastResp = resp
			return nil, &serverStatusError{code: resp.StatusCode}
		}

		return resp, nil
	}

	resp, err := backoff.Retry(req.Context(), operation,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxElapsedTime(maxElapsed),
	)
	if err != nil {
		var statusErr *serverStatusError
		if errors.As(err, &statusErr) && lastResp != nil {
			return lastResp, nil
		}
		return nil, err
	}

	return resp, nil
}
