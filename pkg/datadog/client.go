package datadog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/esumerfd/datadog-mcp/pkg/api"
	"github.com/esumerfd/datadog-mcp/pkg/config"
)

// Fields the write endpoint accepts; the current values are carried
// over from the read leg and overlaid with the patch.
var writeFields = []string{"query", "type", "name", "message", "tags", "priority"}

const errorBodyLimit = 512

// Client issues authenticated requests against the Datadog monitors API.
// It implements api.MonitorsClient. No state is kept between calls.
type Client struct {
	baseURL    string
	apiKey     string
	appKey     string
	httpClient *http.Client
}

var _ api.MonitorsClient = (*Client)(nil)

// NewClient creates a client from process configuration
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		apiKey:  cfg.APIKey,
		appKey:  cfg.AppKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// FetchMonitor retrieves a single monitor by ID
func (c *Client) FetchMonitor(ctx context.Context, id int) (map[string]any, error) {
	return c.do(ctx, http.MethodGet, c.monitorURL(id), nil)
}

// UpdateMonitor applies the patch to a monitor. The API requires a full
// representation on write, so the current record is fetched first and
// the patch is overlaid onto its editable subset. The read and the
// write are not guarded against a concurrent external modification.
func (c *Client) UpdateMonitor(ctx context.Context, id int, patch api.MonitorPatch) (map[string]any, error) {
	current, err := c.FetchMonitor(ctx, id)
	if err != nil {
		return nil, err
	}

	body := make(map[string]any)
	for _, key := range writeFields {
		if v, ok := current[key]; ok && v != nil {
			body[key] = v
		}
	}
	for k, v := range patch.Fields() {
		body[k] = v
	}

	return c.do(ctx, http.MethodPut, c.monitorURL(id), body)
}

func (c *Client) monitorURL(id int) string {
	return fmt.Sprintf("%s/monitors/%d", c.baseURL, id)
}

// do sends one authenticated request and decodes the JSON response.
// Non-2xx responses become a *StatusError.
func (c *Client) do(ctx context.Context, method, url string, body map[string]any) (map[string]any, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("DD-API-KEY", c.apiKey)
	req.Header.Set("DD-APPLICATION-KEY", c.appKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to Datadog API failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet := strings.TrimSpace(string(data))
		if len(snippet) > errorBodyLimit {
			snippet = snippet[:errorBodyLimit]
		}
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Method:     method,
			URL:        url,
			Body:       snippet,
		}
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	return record, nil
}
