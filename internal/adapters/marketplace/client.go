package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"listing-feed-service/internal/contextkeys"
	"listing-feed-service/internal/core/domain"
)

// Client is the upstream marketplace API adapter. It forwards the caller's
// bearer token verbatim on authenticated calls and maps transport and status
// failures onto the domain error taxonomy so the fallback chain can classify
// them.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	serviceToken string
}

// NewClient builds the adapter. serviceToken may be empty; it is only used
// for background calls that have no caller context.
func NewClient(baseURL string, timeout time.Duration, serviceToken string) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: timeout},
		serviceToken: serviceToken,
	}
}

// doRequest performs a request with trace and auth headers attached.
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}

	token := contextkeys.AuthTokenFromContext(ctx)
	if token == "" {
		token = c.serviceToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	return resp, nil
}

// readBody drains the response and maps non-2xx statuses onto the domain
// taxonomy.
func (c *Client) readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response body: %v", domain.ErrNetworkUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: upstream returned %d", domain.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: upstream returned 404", domain.ErrNotFound)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: upstream returned %d", domain.ErrServer, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: unexpected upstream status %d: %s", domain.ErrMalformedResponse, resp.StatusCode, truncate(body, 200))
	}
}

// get performs a GET and returns the body.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.readBody(resp)
}

// decodeRecords handles the two envelope shapes the upstream has used: a
// bare JSON array, and {"data": [...]}-style wrappers.
func decodeRecords(body []byte) ([]rawRecord, error) {
	var bare []rawRecord
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Data       []rawRecord `json:"data"`
		Properties []rawRecord `json:"properties"`
		Results    []rawRecord `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	switch {
	case envelope.Data != nil:
		return envelope.Data, nil
	case envelope.Properties != nil:
		return envelope.Properties, nil
	case envelope.Results != nil:
		return envelope.Results, nil
	}
	return nil, fmt.Errorf("%w: no recognized collection envelope", domain.ErrMalformedResponse)
}

// decodeRecord handles single-object responses, unwrapping {"data": {...}}.
func decodeRecord(body []byte) (rawRecord, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 && envelope.Data[0] == '{' {
		body = envelope.Data
	}

	var raw rawRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return raw, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
