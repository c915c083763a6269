package netsuite

import (
	"net/http"
	"strings"
	"time"

	"github.com/tphakala/go-netsuite/internal/api"
	"github.com/tphakala/go-netsuite/internal/oauth"
)

// Default configuration values.
const defaultTimeout = 30 * time.Second

// Client is the NetSuite API client. Credentials are fixed at construction;
// a client is safe for concurrent use because no per-call state is shared.
type Client struct {
	// Records provides access to the SuiteTalk REST record API.
	Records RecordService

	// Restlet invokes deployed RESTlet scripts.
	Restlet RestletService

	// SuiteQL executes SuiteQL queries with transparent pagination.
	SuiteQL SuiteQLService

	transport *api.Transport
}

// NewClient creates a new NetSuite client with the given options. All five
// credential fields are required; a missing one fails with a
// *ConfigurationError before any network call.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := &clientConfig{
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	creds := oauth.Credentials{
		AccountID:      cfg.accountID,
		ConsumerKey:    cfg.consumerKey,
		ConsumerSecret: cfg.consumerSecret,
		TokenKey:       cfg.tokenKey,
		TokenSecret:    cfg.tokenSecret,
	}
	if field := creds.MissingField(); field != "" {
		return nil, &ConfigurationError{Field: field}
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.timeout,
		}
	}

	transport := api.NewTransport(oauth.NewSigner(creds), httpClient, cfg.logger)
	if cfg.userAgent != "" {
		transport.UserAgent = cfg.userAgent
	}

	restBase := cfg.restBaseURL
	if restBase == "" {
		restBase = accountURL(cfg.accountID, "suitetalk.api.netsuite.com")
	}
	restletBase := cfg.restletBaseURL
	if restletBase == "" {
		restletBase = accountURL(cfg.accountID, "restlets.api.netsuite.com")
	}

	client := &Client{
		transport: transport,
	}

	// Initialize services
	client.Records = newRecordService(transport, restBase)
	client.Restlet = newRestletService(transport, restletBase)
	client.SuiteQL = newSuiteQLService(transport, restBase+suiteQLPath)

	return client, nil
}

// accountURL derives the account-specific API domain. Sandbox account IDs
// such as "123456_SB1" map to hyphenated lowercase hosts.
func accountURL(accountID, domain string) string {
	host := strings.ReplaceAll(strings.ToLower(accountID), "_", "-")
	return "https://" + host + "." + domain
}
