// Package netsuite provides a native Go client for the NetSuite SuiteTalk
// REST API, RESTlet scripts and the SuiteQL query endpoint, authenticated
// with token-based OAuth 1.0 (HMAC-SHA256) request signing.
//
// # Features
//
//   - One signed transport shared by the record, RESTlet and SuiteQL surfaces
//   - Modern Go iterators for SuiteQL pagination
//   - Responses returned as-is: status interpretation stays with the caller
//   - Functional options for flexible configuration
//
// # Quick Start
//
//	client, err := netsuite.NewClient(
//	    netsuite.WithAccount("123456"),
//	    netsuite.WithConsumer(consumerKey, consumerSecret),
//	    netsuite.WithToken(tokenKey, tokenSecret),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Records.Get(ctx, "customer", "107")
//	if err != nil {
//	    log.Fatal(err) // request never completed
//	}
//	if resp.StatusCode != http.StatusOK {
//	    log.Fatal(resp.Err()) // NetSuite rejected it
//	}
//
//	var customer map[string]any
//	if err := resp.JSON(&customer); err != nil {
//	    log.Fatal(err)
//	}
//
// Credentials can also come from NETSUITE_* environment variables or a .env
// file:
//
//	cfg, err := netsuite.ConfigFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := netsuite.NewClient(netsuite.WithConfig(cfg))
//
// # Error Handling
//
// A non-nil error from any call means the request never completed:
// *ConfigurationError (missing credentials), *EncodingError (bad URL or
// body), *TransportError (network failure) or *PaginationError (query
// pagination broke down). HTTP error statuses are not errors; the Response
// always comes back and Response.Err converts it on demand:
//
//	resp, err := client.Records.Delete(ctx, "customer", "107")
//	if err != nil {
//	    var te *netsuite.TransportError
//	    if errors.As(err, &te) {
//	        // network problem, maybe retry
//	    }
//	}
//
// # SuiteQL
//
// Query streams rows lazily across pages; QueryAll aggregates the full
// result set and never returns partial data:
//
//	for row, err := range client.SuiteQL.Query(ctx, "SELECT id FROM customer") {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(row["id"])
//	}
//
//	rows, err := client.SuiteQL.QueryAll(ctx, "SELECT id FROM customer")
//
// # RESTlets
//
// The HTTP verb of a RESTlet call selects the script entry point; the
// deployed script decides what it means:
//
//	resp, err := client.Restlet.Call(ctx, http.MethodPost, "529", "1", payload)
package netsuite
