package netsuite

import (
	"context"
	"net/url"

	"github.com/tphakala/go-netsuite/internal/api"
)

const restletPath = "/app/site/hosting/restlet.nl"

// RestletService invokes deployed RESTlet scripts. The HTTP verb selects
// the script's entry point (get/post/put/delete); what the call does is
// whatever the deployed script implements, which need not match the verb's
// REST semantics. The verb is sent exactly as given.
type RestletService interface {
	// Call invokes the script identified by its script and deployment IDs
	// on the account's RESTlet domain.
	Call(ctx context.Context, method, script, deploy string, body any, opts ...RequestOption) (*Response, error)

	// CallURL invokes a RESTlet via its full external URL, as shown on the
	// script deployment record.
	CallURL(ctx context.Context, method, rawURL string, body any, opts ...RequestOption) (*Response, error)
}

// restletService implements RestletService.
type restletService struct {
	transport *api.Transport
	baseURL   string
}

func newRestletService(transport *api.Transport, baseURL string) *restletService {
	return &restletService{transport: transport, baseURL: baseURL}
}

// Call invokes a deployed script by script and deployment ID.
func (s *restletService) Call(ctx context.Context, method, script, deploy string, body any, opts ...RequestOption) (*Response, error) {
	if script == "" || deploy == "" {
		return nil, ErrNoScript
	}

	q := url.Values{}
	q.Set("script", script)
	q.Set("deploy", deploy)

	return s.CallURL(ctx, method, s.baseURL+restletPath+"?"+q.Encode(), body, opts...)
}

// CallURL invokes a RESTlet via its full external URL.
func (s *restletService) CallURL(ctx context.Context, method, rawURL string, body any, opts ...RequestOption) (*Response, error) {
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
