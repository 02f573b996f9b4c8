package attio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
)

const initialBackoff = 500 * time.Millisecond

// Client talks to the Attio API. It is stateless across requests and safe for
// concurrent use; one Client per credential.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates an Attio API client from config.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	cfg = cfg.WithDefaults()
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: time.Duration(cfg.TimeoutSecs) * time.Second},
		log:  log.With().Str("component", "attio").Logger(),
	}
}

// WithAPIKey returns a copy of the client using an override credential.
func (c *Client) WithAPIKey(key string) *Client {
	clone := *c
	clone.cfg.APIKey = key
	return &clone
}

// do issues one API call with the retry budget applied: 429 responses are
// retried with exponential backoff up to MaxRetries attempts, network errors
// are retried once. Any other non-2xx response fails immediately with the
// response body verbatim.
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}

	requestID := xid.New().String()
	log := c.log.With().Str("request_id", requestID).Str("method", method).Str("path", path).Logger()

	backoff := initialBackoff
	networkRetried := false
	for attempt := 1; ; attempt++ {
		data, status, err := c.roundTrip(ctx, method, path, body)
		gotResponse := status != 0
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil && !gotResponse:
			// Network-level failure before a response arrived.
			if networkRetried {
				log.Warn().Err(err).Msg("Attio unreachable")
				return nil, &RemoteUnreachableError{Err: err}
			}
			networkRetried = true
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
			continue
		case status == http.StatusTooManyRequests:
			if attempt >= c.cfg.MaxRetries {
				log.Warn().Int("attempts", attempt).Msg("Attio rate limit budget exhausted")
				return nil, &RateLimitedError{Attempts: attempt}
			}
			log.Debug().Int("attempt", attempt).Dur("backoff", backoff).Msg("Attio rate limited, backing off")
			if err := sleepCtx(ctx, backoff); err != nil {
				return nil, err
			}
			backoff *= 2
			continue
		case status < 200 || status >= 300:
			log.Debug().Int("status_code", status).Msg("Attio rejected request")
			return nil, &RemoteRejectedError{StatusCode: status, Body: string(data)}
		case err != nil:
			return nil, err
		}
		log.Debug().Int("status_code", status).Msg("Attio request completed")
		return data, nil
	}
}

// roundTrip performs a single HTTP exchange. A zero status means no response
// was received.
func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return data, resp.StatusCode, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type attributeData struct {
	Data []struct {
		APISlug       string `json:"api_slug"`
		Title         string `json:"title"`
		Type          string `json:"type"`
		IsMultiselect bool   `json:"is_multiselect"`
	} `json:"data"`
}

func (c *Client) fetchSchema(ctx context.Context, scope, path string) (Schema, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &SchemaUnavailableError{Scope: scope, Err: err}
	}
	var parsed attributeData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &SchemaUnavailableError{Scope: scope, Err: fmt.Errorf("decoding attributes: %w", err)}
	}
	schema := make(Schema, len(parsed.Data))
	for _, attr := range parsed.Data {
		typ, err := ParseAttributeType(attr.Type)
		if err != nil {
			return nil, &SchemaUnavailableError{Scope: scope, Err: fmt.Errorf("attribute %q: %w", attr.APISlug, err)}
		}
		schema[attr.APISlug] = AttributeInfo{
			Title:       attr.Title,
			Type:        typ,
			MultiValued: attr.IsMultiselect || typ == TypeEmailAddress || typ == TypePhoneNumber,
		}
	}
	return schema, nil
}

// ObjectSchema fetches attribute definitions for an object type.
func (c *Client) ObjectSchema(ctx context.Context, object string) (Schema, error) {
	return c.fetchSchema(ctx, "object "+object, "/v2/objects/"+url.PathEscape(object)+"/attributes")
}

// ListSchema fetches attribute definitions for a list.
func (c *Client) ListSchema(ctx context.Context, list string) (Schema, error) {
	return c.fetchSchema(ctx, "list "+list, "/v2/lists/"+url.PathEscape(list)+"/attributes")
}

type optionData struct {
	Data []struct {
		ID         map[string]string `json:"id"`
		Title      string            `json:"title"`
		IsArchived bool              `json:"is_archived"`
	} `json:"data"`
}

func (c *Client) fetchOptions(ctx context.Context, path, idKey string) ([]SelectOption, error) {
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var parsed optionData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding options: %w", err)
	}
	options := make([]SelectOption, 0, len(parsed.Data))
	for _, opt := range parsed.Data {
		options = append(options, SelectOption{
			ID:       opt.ID[idKey],
			Title:    opt.Title,
			Archived: opt.IsArchived,
		})
	}
	return options, nil
}

// SelectOptions fetches the option set of a select attribute on an object.
func (c *Client) SelectOptions(ctx context.Context, object, attribute string) ([]SelectOption, error) {
	path := "/v2/objects/" + url.PathEscape(object) + "/attributes/" + url.PathEscape(attribute) + "/options"
	return c.fetchOptions(ctx, path, "option_id")
}

// ListSelectOptions fetches the option set of a select attribute on a list.
func (c *Client) ListSelectOptions(ctx context.Context, list, attribute string) ([]SelectOption, error) {
	path := "/v2/lists/" + url.PathEscape(list) + "/attributes/" + url.PathEscape(attribute) + "/options"
	return c.fetchOptions(ctx, path, "option_id")
}

// ListStatuses fetches the status set of a status attribute on a list.
func (c *Client) ListStatuses(ctx context.Context, list, attribute string) ([]SelectOption, error) {
	path := "/v2/lists/" + url.PathEscape(list) + "/attributes/" + url.PathEscape(attribute) + "/statuses"
	return c.fetchOptions(ctx, path, "status_id")
}

type recordData struct {
	Data []RawRecord `json:"data"`
}

// QueryRecords runs a translated query against an object's records.
func (c *Client) QueryRecords(ctx context.Context, object string, q *WireQuery) ([]RawRecord, error) {
	data, err := c.do(ctx, http.MethodPost, "/v2/objects/"+url.PathEscape(object)+"/records/query", q)
	if err != nil {
		return nil, err
	}
	var parsed recordData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return parsed.Data, nil
}

// QueryListEntries runs a translated query against a list's entries.
func (c *Client) QueryListEntries(ctx context.Context, list string, q *WireQuery) ([]RawRecord, error) {
	data, err := c.do(ctx, http.MethodPost, "/v2/lists/"+url.PathEscape(list)+"/entries/query", q)
	if err != nil {
		return nil, err
	}
	var parsed recordData
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding list entries: %w", err)
	}
	return parsed.Data, nil
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, object, recordID string) (*RawRecord, error) {
	path := "/v2/objects/" + url.PathEscape(object) + "/records/" + url.PathEscape(recordID)
	data, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Data RawRecord `json:"data"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &parsed.Data, nil
}

// NoteParams are the inputs for creating a note on a record.
type NoteParams struct {
	ParentObject   string `json:"parent_object"`
	ParentRecordID string `json:"parent_record_id"`
	Title          string `json:"title"`
	Content        string `json:"content"`
}

// CreateNote attaches a plaintext note to a record. Thin wrapper, no
// translation involved.
func (c *Client) CreateNote(ctx context.Context, params NoteParams) (map[string]any, error) {
	payload := map[string]any{
		"data": map[string]any{
			"parent_object":    params.ParentObject,
			"parent_record_id": params.ParentRecordID,
			"title":            params.Title,
			"format":           "plaintext",
			"content":          params.Content,
		},
	}
	data, err := c.do(ctx, http.MethodPost, "/v2/notes", payload)
	if err != nil {
		return nil, err
	}
	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding note response: %w", err)
	}
	return parsed, nil
}

// AddToList creates a list entry pointing at an existing record. Thin
// wrapper, no translation involved.
func (c *Client) AddToList(ctx context.Context, list, parentObject, parentRecordID string) (map[string]any, error) {
	payload := map[string]any{
		"data": map[string]any{
			"parent_object":    parentObject,
			"parent_record_id": parentRecordID,
			"entry_values":     map[string]any{},
		},
	}
	data, err := c.do(ctx, http.MethodPost, "/v2/lists/"+url.PathEscape(list)+"/entries", payload)
	if err != nil {
		return nil, err
	}
	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding entry response: %w", err)
	}
	return parsed, nil
}
