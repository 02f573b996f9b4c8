package attio

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{
		BaseURL:     server.URL,
		APIKey:      "test-key",
		TimeoutSecs: 5,
	}, zerolog.Nop())
	return client, server
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	if _, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("expected bearer token, got %q", gotAuth)
	}
}

func TestClientRetriesRateLimit(t *testing.T) {
	attempts := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	if _, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1}); err != nil {
		t.Fatalf("expected retries to recover, got %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestClientRateLimitBudgetExhausted(t *testing.T) {
	attempts := 0
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	_, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1})
	var rateLimited *RateLimitedError
	if !errors.As(err, &rateLimited) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if attempts != DefaultMaxRetries {
		t.Fatalf("expected %d attempts, got %d", DefaultMaxRetries, attempts)
	}
}

func TestClientRemoteRejectedCarriesBodyVerbatim(t *testing.T) {
	const errorBody = `{"status_code":400,"type":"invalid_request_error","message":"Unknown attribute slug"}`
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(errorBody))
	}))
	_, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1})
	var rejected *RemoteRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RemoteRejectedError, got %v", err)
	}
	if rejected.StatusCode != 400 || rejected.Body != errorBody {
		t.Fatalf("body must be carried verbatim: %+v", rejected)
	}
}

func TestClientNetworkFailureRetriedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // every connection now fails
	client := NewClient(Config{BaseURL: server.URL, APIKey: "k", TimeoutSecs: 1}, zerolog.Nop())
	start := time.Now()
	_, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1})
	var unreachable *RemoteUnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("expected RemoteUnreachableError, got %v", err)
	}
	// One retry with the initial backoff between the two attempts.
	if elapsed := time.Since(start); elapsed < initialBackoff {
		t.Fatalf("expected one backoff before surfacing, elapsed %v", elapsed)
	}
}

func TestClientHonorsDeadline(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.QueryRecords(ctx, "people", &WireQuery{Limit: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestObjectSchemaParsesAndNormalizesTypes(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/objects/people/attributes" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"data":[
			{"api_slug":"email_addresses","title":"Email addresses","type":"email-address","is_multiselect":false},
			{"api_slug":"name","title":"Name","type":"personal-name","is_multiselect":false},
			{"api_slug":"tags","title":"Tags","type":"select","is_multiselect":true}
		]}`))
	}))
	schema, err := client.ObjectSchema(context.Background(), "people")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schema["email_addresses"].Type != TypeEmailAddress {
		t.Fatalf("hyphenated slug not normalized: %+v", schema["email_addresses"])
	}
	if !schema["email_addresses"].MultiValued {
		t.Fatalf("email attributes are inherently multi-valued")
	}
	if !schema["tags"].MultiValued {
		t.Fatalf("is_multiselect must set the multi-valued flag")
	}
}

func TestObjectSchemaRejectsUnknownType(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"api_slug":"x","title":"X","type":"hologram","is_multiselect":false}]}`))
	}))
	_, err := client.ObjectSchema(context.Background(), "people")
	var unavailable *SchemaUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("unknown attribute types must be rejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "hologram") {
		t.Fatalf("error must name the offending type: %s", err)
	}
}

func TestSchemaUnavailableOnRemoteFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"object not found"}`))
	}))
	_, err := client.ObjectSchema(context.Background(), "ghosts")
	var unavailable *SchemaUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected SchemaUnavailableError, got %v", err)
	}
}

func TestOptionAndStatusEndpoints(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v2/objects/companies/attributes/tier/options":
			_, _ = w.Write([]byte(`{"data":[{"id":{"option_id":"o-1"},"title":"Gold","is_archived":false}]}`))
		case "/v2/lists/pipeline/attributes/stage/statuses":
			_, _ = w.Write([]byte(`{"data":[{"id":{"status_id":"s-1"},"title":"Won","is_archived":true}]}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	options, err := client.SelectOptions(context.Background(), "companies", "tier")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(options) != 1 || options[0].ID != "o-1" || options[0].Title != "Gold" {
		t.Fatalf("unexpected options: %+v", options)
	}
	statuses, err := client.ListStatuses(context.Background(), "pipeline", "stage")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(statuses) != 1 || statuses[0].ID != "s-1" || !statuses[0].Archived {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestWithAPIKeyOverride(t *testing.T) {
	var gotAuth string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	override := client.WithAPIKey("override-key")
	if _, err := override.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer override-key" {
		t.Fatalf("override credential not used: %q", gotAuth)
	}
	if _, err := client.QueryRecords(context.Background(), "people", &WireQuery{Limit: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("original client must keep its own credential: %q", gotAuth)
	}
}
