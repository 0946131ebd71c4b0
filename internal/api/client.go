package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/lumashop/lumashop/clients/go-storefront/internal/tokens"
	"github.com/lumashop/lumashop/clients/go-storefront/pkg/metrics"
)

// refreshLeeway is how close to expiry a bearer token may get before an
// authed call refreshes it proactively instead of waiting for the 401.
const refreshLeeway = 30 * time.Second

// TokenSource supplies credentials for protected endpoints. The session
// store implements it.
type TokenSource interface {
	// AuthHeaders returns {"Authorization": "Bearer <token>"} or an empty map.
	AuthHeaders() map[string]string
	// RefreshAccessToken exchanges the refresh token for a new bearer token.
	// Returns false when there is nothing to refresh or the exchange failed.
	RefreshAccessToken(ctx context.Context) bool
}

// Client is the single typed boundary to the storefront backend. All
// response-shape handling lives here; the stores above see Go values or an
// *Error.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	auth    TokenSource
}

type Options struct {
	BaseURL   string
	Timeout   time.Duration
	RateRPS   float64
	RateBurst int
}

func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.RateRPS <= 0 {
		opts.RateRPS = 5
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = 10
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RateRPS), opts.RateBurst),
	}
}

// SetTokenSource wires the session store in after construction (the session
// store itself needs the client for its auth calls).
func (c *Client) SetTokenSource(ts TokenSource) { c.auth = ts }

// do performs one unauthenticated request. endpoint is a low-cardinality
// metric label, not the URL.
func (c *Client) do(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}
	return c.send(ctx, endpoint, method, path, payload, nil, out)
}

// doAuthed performs a request with auth headers and the
// refresh-once-on-401 pattern used by all protected views.
func (c *Client) doAuthed(ctx context.Context, endpoint, method, path string, body, out interface{}) error {
	if c.auth == nil {
		return &Error{Status: http.StatusUnauthorized, Message: "not authenticated"}
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}

	headers := c.auth.AuthHeaders()
	if tok := bearerToken(headers); tok != "" && tokens.ExpiresWithin(tok, refreshLeeway) {
		if c.auth.RefreshAccessToken(ctx) {
			headers = c.auth.AuthHeaders()
		}
	}

	err := c.send(ctx, endpoint, method, path, payload, headers, out)
	var apiErr *Error
	if asError(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if !c.auth.RefreshAccessToken(ctx) {
			return err
		}
		metrics.APIAuthRetries.Inc()
		return c.send(ctx, endpoint, method, path, payload, c.auth.AuthHeaders(), out)
	}
	return err
}

func (c *Client) send(ctx context.Context, endpoint, method, path string, payload []byte, headers map[string]string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	var rd *bytes.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.APIRequests.WithLabelValues(endpoint, "network_error").Inc()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.APIRequests.WithLabelValues(endpoint, "http_error").Inc()
		return decodeError(resp)
	}
	metrics.APIRequests.WithLabelValues(endpoint, "ok").Inc()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "malformed response body"}
	}
	return nil
}

func bearerToken(headers map[string]string) string {
	return strings.TrimPrefix(headers["Authorization"], "Bearer ")
}
