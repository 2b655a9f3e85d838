package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/shopware/sw-sync-cli/pkg/criteria"
	"github.com/shopware/sw-sync-cli/pkg/errs"
	"github.com/shopware/sw-sync-cli/pkg/lookup"
	"github.com/shopware/sw-sync-cli/pkg/profile"
	"github.com/shopware/sw-sync-cli/pkg/value"
)

// requestTimeout is the default per-request timeout (spec.md §5),
// overridable with WithRequestTimeout: a timeout counts as a retryable
// transient error.
const requestTimeout = 60 * time.Second

var tracer = otel.Tracer("github.com/shopware/sw-sync-cli/pkg/client")

// Client is the authenticated HTTP client for the remote admin API
// (spec.md §4.D). Grounded on the teacher's HTTPProvider: a pooled
// *http.Client, a retrying DoRequest, a typed-endpoint layer on top —
// adapted to this domain's auth state machine and FIFO in-flight gate
// instead of HTTPProvider's health-check/circuit-breaker bookkeeping
// (this domain has one remote, not many providers to route between).
type Client struct {
	httpClient *http.Client
	baseURL    string
	auth       *Authenticator
	gate       *Gate
	tryCount   int
	logger     *slog.Logger
}

// Option configures a Client constructed by New.
type Option func(*Client)

// WithTryCount overrides the default retry attempt count (spec.md §4.D
// default 3; user-configurable on import via -t/--try-count).
func WithTryCount(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.tryCount = n
		}
	}
}

// WithInFlightLimit overrides the default in-flight gate size (default 8).
func WithInFlightLimit(n int) Option {
	return func(c *Client) {
		c.gate = NewGate(n)
	}
}

// WithLogger attaches a structured logger; defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRequestTimeout overrides the per-request HTTP timeout (default
// requestTimeout; spec.md §5). Config.Sync.RequestTimeout is threaded
// in through this option rather than read directly, so the client
// stays configurable without importing pkg/config.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New builds a Client for domain, authenticating via source.
func New(domain string, source TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    domain,
		auth:       NewAuthenticator(source),
		gate:       NewGate(8),
		tryCount:   3,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate performs the initial token exchange.
func (c *Client) Authenticate(ctx context.Context) error {
	_, err := c.auth.Authenticate(ctx)
	return err
}

// FetchSchema retrieves the remote entity schema descriptor used by
// profile validation (spec.md §4.B, §4.D).
func (c *Client) FetchSchema(ctx context.Context) (profile.SchemaDescriptor, error) {
	ctx, span := tracer.Start(ctx, "client.fetch_schema")
	defer span.End()

	data, err := c.doRequest(ctx, http.MethodGet, "/api/_info/entity-schema.json", nil)
	if err != nil {
		return profile.SchemaDescriptor{}, err
	}

	var wire schemaWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return profile.SchemaDescriptor{}, &errs.NetworkFatalError{Message: "malformed schema response", Cause: err}
	}
	return decodeSchema(wire), nil
}

func decodeSchema(wire schemaWire) profile.SchemaDescriptor {
	entities := make(map[string]profile.EntityDescriptor, len(wire.Entities))
	for name, e := range wire.Entities {
		fields := make(map[string]struct{}, len(e.Fields))
		for _, f := range e.Fields {
			fields[f] = struct{}{}
		}
		assocs := make(map[string]profile.AssociationDescriptor, len(e.Associations))
		for assocName, a := range e.Associations {
			assocs[assocName] = profile.AssociationDescriptor{TargetEntity: a.Entity, Nullable: a.Nullable}
		}
		entities[name] = profile.EntityDescriptor{Fields: fields, Associations: assocs}
	}
	return profile.SchemaDescriptor{Entities: entities}
}

// Search executes one page of a criteria search against entity (spec.md
// §4.D, §4.E).
func (c *Client) Search(ctx context.Context, entity string, doc *criteria.Document) (SearchResult, error) {
	ctx, span := tracer.Start(ctx, "client.search")
	defer span.End()

	body, err := json.Marshal(doc)
	if err != nil {
		return SearchResult{}, fmt.Errorf("client: marshal criteria: %w", err)
	}
	data, err := c.doRequest(ctx, http.MethodPost, "/api/search/"+entity, body)
	if err != nil {
		return SearchResult{}, err
	}
	var wire searchResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return SearchResult{}, &errs.NetworkFatalError{Message: "malformed search response", Cause: err}
	}
	return SearchResult{Records: wire.Data, Total: wire.Total}, nil
}

// BulkUpsert writes a batch of records for entity (spec.md §4.D, §4.G).
func (c *Client) BulkUpsert(ctx context.Context, entity string, records []value.Value) (BulkResult, error) {
	ctx, span := tracer.Start(ctx, "client.bulk_upsert")
	defer span.End()

	batchID := uuid.NewString()
	c.logger.Debug("submitting bulk upsert", "entity", entity, "count", len(records), "batch_id", batchID)

	payload := value.Array(records)
	body, err := payload.MarshalJSON()
	if err != nil {
		return BulkResult{}, fmt.Errorf("client: marshal batch: %w", err)
	}

	data, err := c.doRequest(ctx, http.MethodPost, "/api/_action/sync/"+entity, body)
	if err != nil {
		return BulkResult{}, err
	}
	var wire bulkResponseWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return BulkResult{}, &errs.NetworkFatalError{Message: "malformed bulk response", Cause: err}
	}
	result := BulkResult{Written: wire.Written}
	for _, e := range wire.Errors {
		result.Errors = append(result.Errors, RecordError{Index: e.Index, Message: e.Message})
	}
	return result, nil
}

// TriggerIndex asks the remote platform to rebuild its search indexes
// (spec.md §4.D, §6 `index` command).
func (c *Client) TriggerIndex(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client.trigger_index")
	defer span.End()
	_, err := c.doRequest(ctx, http.MethodPost, "/api/_action/index", nil)
	return err
}

// ListLanguages implements lookup.Fetcher.
func (c *Client) ListLanguages(ctx context.Context) ([]lookup.LanguageRecord, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/language", nil)
	if err != nil {
		return nil, err
	}
	var wire []languageWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &errs.NetworkFatalError{Message: "malformed language list response", Cause: err}
	}
	out := make([]lookup.LanguageRecord, len(wire))
	for i, l := range wire {
		out[i] = lookup.LanguageRecord{ID: l.ID, ISO: l.ISO}
	}
	return out, nil
}

// ListCurrencies implements lookup.Fetcher.
func (c *Client) ListCurrencies(ctx context.Context) ([]lookup.CurrencyRecord, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/currency", nil)
	if err != nil {
		return nil, err
	}
	var wire []currencyWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &errs.NetworkFatalError{Message: "malformed currency list response", Cause: err}
	}
	out := make([]lookup.CurrencyRecord, len(wire))
	for i, cur := range wire {
		out[i] = lookup.CurrencyRecord{ID: cur.ID, ISO: cur.ISO}
	}
	return out, nil
}

// SystemLanguageID implements lookup.Fetcher.
func (c *Client) SystemLanguageID(ctx context.Context) (string, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/api/_info/config", nil)
	if err != nil {
		return "", err
	}
	var wire constantsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return "", &errs.NetworkFatalError{Message: "malformed constants response", Cause: err}
	}
	return wire.SystemLanguageID, nil
}

// doRequest performs one logical request end-to-end: gate acquisition,
// retried transport attempts with the token-refresh-on-401 dance, and
// status-code classification into the spec.md §7 error kinds.
func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	if err := c.gate.Acquire(ctx); err != nil {
		return nil, &errs.CancelledError{Cause: err}
	}
	defer c.gate.Release()

	refreshedOnce := false

	op := func() ([]byte, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()

		token, _ := c.auth.Token()
		data, status, err := c.doOnce(attemptCtx, method, path, body, token.AccessToken)
		if err != nil {
			return nil, &errs.NetworkTransientError{Message: err.Error(), Cause: err}
		}

		switch {
		case status >= 200 && status < 300:
			return data, nil
		case status == http.StatusUnauthorized:
			if refreshedOnce {
				return nil, backoff.Permanent(&errs.AuthError{Message: "request unauthorized after token refresh"})
			}
			refreshedOnce = true
			if _, rerr := c.auth.Refresh(ctx); rerr != nil {
				return nil, backoff.Permanent(rerr)
			}
			return nil, &errs.NetworkTransientError{StatusCode: status, Message: "retrying after token refresh"}
		case status == http.StatusTooManyRequests, status >= 500:
			return nil, &errs.NetworkTransientError{StatusCode: status, Message: string(data)}
		default:
			return nil, backoff.Permanent(&errs.NetworkFatalError{StatusCode: status, Message: string(data)})
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 200 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	return backoff.Retry(ctx, op, backoff.WithBackOff(bo), backoff.WithMaxTries(uint(c.tryCount)))
}

func (c *Client) doOnce(ctx context.Context, method, path string, body []byte, token string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("client: build request: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
