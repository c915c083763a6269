package netsuite

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	accountID      string
	consumerKey    string
	consumerSecret string
	tokenKey       string
	tokenSecret    string
	restBaseURL    string
	restletBaseURL string
	httpClient     *http.Client
	timeout        time.Duration
	userAgent      string
	logger         *zap.Logger
}

// WithAccount sets the NetSuite account ID. It is used as the OAuth realm
// and to derive the account-specific API domains.
func WithAccount(accountID string) ClientOption {
	return func(c *clientConfig) {
		c.accountID = accountID
	}
}

// WithConsumer sets the integration record's consumer key and secret.
func WithConsumer(key, secret string) ClientOption {
	return func(c *clientConfig) {
		c.consumerKey = key
		c.consumerSecret = secret
	}
}

// WithToken sets the access token key and secret issued for the integration.
func WithToken(key, secret string) ClientOption {
	return func(c *clientConfig) {
		c.tokenKey = key
		c.tokenSecret = secret
	}
}

// WithConfig applies a full credential set, typically loaded by
// ConfigFromEnv.
func WithConfig(cfg *Config) ClientOption {
	return func(c *clientConfig) {
		c.accountID = cfg.AccountID
		c.consumerKey = cfg.ConsumerKey
		c.consumerSecret = cfg.ConsumerSecret
		c.tokenKey = cfg.TokenKey
		c.tokenSecret = cfg.TokenSecret
	}
}

// WithRESTBaseURL overrides the derived SuiteTalk base URL. Intended for
// tests and data-center specific domains.
func WithRESTBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.restBaseURL = url
	}
}

// WithRestletBaseURL overrides the derived RESTlet base URL.
func WithRestletBaseURL(url string) ClientOption {
	return func(c *clientConfig) {
		c.restletBaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client. Timeouts, proxies and retry
// policy (see the retry package) all live on the supplied client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the default request timeout.
// Note: This option is ignored when WithHTTPClient is used;
// set the timeout directly on the provided client instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithLogger sets a structured logger for request/response debug logging.
// The default is a no-op logger.
func WithLogger(logger *zap.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// RequestOption configures individual API requests.
type RequestOption func(*requestConfig)

type requestConfig struct {
	headers http.Header
}

func newRequestConfig() *requestConfig {
	return &requestConfig{
		headers: make(http.Header),
	}
}

func (r *requestConfig) apply(opts ...RequestOption) {
	for _, opt := range opts {
		opt(r)
	}
}

// WithHeader adds a custom header to a request.
func WithHeader(key, value string) RequestOption {
	return func(r *requestConfig) {
		r.headers.Set(key, value)
	}
}

// WithHeaders adds multiple custom headers to a request.
func WithHeaders(headers map[string]string) RequestOption {
	return func(r *requestConfig) {
		for k, v := range headers {
			r.headers.Set(k, v)
		}
	}
}

// WithPrefer overrides the Prefer header, e.g. "respond-async" for
// asynchronous record operations. The default is "transient".
func WithPrefer(value string) RequestOption {
	return WithHeader("Prefer", value)
}
