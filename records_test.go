package netsuite_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	netsuite "github.com/tphakala/go-netsuite"
)

// authHeaderPattern matches a well-formed token-based authorization value.
var authHeaderPattern = regexp.MustCompile(
	`^OAuth realm="123456",oauth_consumer_key="test-consumer-key",oauth_token="test-token-key",` +
		`oauth_signature_method="HMAC-SHA256",oauth_timestamp="\d+",oauth_nonce="[0-9a-f]+",` +
		`oauth_version="1\.0",oauth_signature="[^"]+"$`)

func setupTestClient(t *testing.T, handler http.HandlerFunc) *netsuite.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := netsuite.NewClient(
		netsuite.WithAccount("123456"),
		netsuite.WithConsumer("test-consumer-key", "test-consumer-secret"),
		netsuite.WithToken("test-token-key", "test-token-secret"),
		netsuite.WithRESTBaseURL(server.URL),
		netsuite.WithRestletBaseURL(server.URL),
	)
	require.NoError(t, err)

	return client
}

func TestRecordService_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/services/rest/record/v1/customer/107", r.URL.Path)
			assert.Regexp(t, authHeaderPattern, r.Header.Get("Authorization"))
			assert.Equal(t, "transient", r.Header.Get("Prefer"))
			assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))

			w.Header().Set("Content-Type", "application/json")
			_, err := w.Write([]byte(`{"id":"107","entityid":"Acme Corp"}`))
			assert.NoError(t, err)
		})

		ctx := context.Background()
		resp, err := client.Records.Get(ctx, "customer", "107")
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var record map[string]any
		require.NoError(t, resp.JSON(&record))
		assert.Equal(t, "Acme Corp", record["entityid"])
	})

	t.Run("404 is a response, not an error", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, err := w.Write([]byte(`{"title":"Not Found","status":404}`))
			assert.NoError(t, err)
		})

		ctx := context.Background()
		resp, err := client.Records.Get(ctx, "customer", "does-not-exist")
		require.NoError(t, err)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var apiErr *netsuite.APIError
		require.ErrorAs(t, resp.Err(), &apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})

	t.Run("empty record type", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("should not make API call without a record type")
		})

		_, err := client.Records.Get(context.Background(), "", "107")
		require.ErrorIs(t, err, netsuite.ErrNoRecordType)
	})

	t.Run("empty record ID", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("should not make API call without a record ID")
		})

		_, err := client.Records.Get(context.Background(), "customer", "")
		require.ErrorIs(t, err, netsuite.ErrNoRecordID)
	})

	t.Run("special characters in ID are escaped", func(t *testing.T) {
		var receivedPath string
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			receivedPath = r.URL.EscapedPath()
			w.WriteHeader(http.StatusOK)
		})

		_, err := client.Records.Get(context.Background(), "customer", "a/b?c")
		require.NoError(t, err)
		assert.Equal(t, "/services/rest/record/v1/customer/a%2Fb%3Fc", receivedPath)
	})
}

func TestRecordService_List(t *testing.T) {
	t.Run("query parameters", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/services/rest/record/v1/customer", r.URL.Path)
			assert.Equal(t, "25", r.URL.Query().Get("limit"))
			assert.Equal(t, "50", r.URL.Query().Get("offset"))
			assert.Equal(t, `email IS "a@b.com"`, r.URL.Query().Get("q"))
			assert.Regexp(t, authHeaderPattern, r.Header.Get("Authorization"))

			_, err := w.Write([]byte(`{"items":[],"count":0}`))
			assert.NoError(t, err)
		})

		ctx := context.Background()
		resp, err := client.Records.List(ctx, "customer", &netsuite.ListParams{
			Limit:  25,
			Offset: 50,
			Query:  `email IS "a@b.com"`,
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("nil params", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			_, err := w.Write([]byte(`{"items":[]}`))
			assert.NoError(t, err)
		})

		_, err := client.Records.List(context.Background(), "customer", nil)
		require.NoError(t, err)
	})
}

func TestRecordService_Create(t *testing.T) {
	t.Run("body round-trips as JSON", func(t *testing.T) {
		input := map[string]any{
			"entityid":   "New Customer",
			"subsidiary": map[string]any{"id": "1"},
			"isperson":   false,
		}

		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/services/rest/record/v1/customer", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var sent map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			assert.Equal(t, input, sent)

			w.WriteHeader(http.StatusNoContent)
		})

		ctx := context.Background()
		resp, err := client.Records.Create(ctx, "customer", input)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestRecordService_Update(t *testing.T) {
	t.Run("sends PATCH", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/services/rest/record/v1/job/12345", r.URL.Path)

			var sent map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
			assert.Equal(t, "Updated Customer", sent["entityid"])

			w.WriteHeader(http.StatusNoContent)
		})

		ctx := context.Background()
		resp, err := client.Records.Update(ctx, "job", "12345", map[string]any{
			"entityid": "Updated Customer",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestRecordService_Delete(t *testing.T) {
	client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/services/rest/record/v1/customer/107", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()
	resp, err := client.Records.Delete(ctx, "customer", "107")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestRecordService_Do(t *testing.T) {
	t.Run("caller-built absolute URL", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/services/rest/record/v1/customer/107/addressbook", r.URL.Path)
			_, err := w.Write([]byte(`{"items":[]}`))
			assert.NoError(t, err)
		}))
		t.Cleanup(server.Close)

		client, err := netsuite.NewClient(
			netsuite.WithAccount("123456"),
			netsuite.WithConsumer("test-consumer-key", "test-consumer-secret"),
			netsuite.WithToken("test-token-key", "test-token-secret"),
		)
		require.NoError(t, err)

		resp, err := client.Records.Do(context.Background(), http.MethodGet,
			server.URL+"/services/rest/record/v1/customer/107/addressbook", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("network failure is a TransportError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // immediately, so the port refuses connections

		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := client.Records.Do(context.Background(), http.MethodGet, server.URL+"/anything", nil)
		require.Error(t, err)

		var transportErr *netsuite.TransportError
		require.ErrorAs(t, err, &transportErr)
	})

	t.Run("malformed URL is an EncodingError", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("should not make API call with a malformed URL")
		})

		_, err := client.Records.Do(context.Background(), http.MethodGet, "://not-a-url", nil)
		require.Error(t, err)

		var encodingErr *netsuite.EncodingError
		require.ErrorAs(t, err, &encodingErr)
	})

	t.Run("unserializable body is an EncodingError", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("should not make API call with an unserializable body")
		})

		_, err := client.Records.Do(context.Background(), http.MethodPost,
			"https://example.com/x", func() {})
		require.Error(t, err)

		var encodingErr *netsuite.EncodingError
		require.ErrorAs(t, err, &encodingErr)
	})

	t.Run("custom headers override defaults", func(t *testing.T) {
		client := setupTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "respond-async", r.Header.Get("Prefer"))
			assert.Equal(t, "custom-value", r.Header.Get("X-Custom-Header"))
			w.WriteHeader(http.StatusAccepted)
		})

		resp, err := client.Records.Get(context.Background(), "customer", "107",
			netsuite.WithPrefer("respond-async"),
			netsuite.WithHeader("X-Custom-Header", "custom-value"),
		)
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	})
}
