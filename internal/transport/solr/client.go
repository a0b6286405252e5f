package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/nameres/internal/domain"
	"github.com/kailas-cloud/nameres/internal/domain/core"
	"github.com/kailas-cloud/nameres/internal/metrics"
)

const (
	endpointSelect = "select"
	endpointStatus = "status"
	endpointPing   = "ping"

	maxErrorBody = 4096
)

// Client talks to a Solr instance over its HTTP API.
type Client struct {
	http    *http.Client
	baseURL string
	core    string
	logger  *zap.Logger
}

// Config holds the Solr connection settings.
type Config struct {
	// BaseURL is the server root, e.g. http://localhost:8983.
	BaseURL string
	// Core is the collection queried by select, e.g. name_lookup.
	Core string
	// Timeout bounds every request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a Solr client.
func NewClient(cfg *Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		http:    hc,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		core:    cfg.Core,
		logger:  log,
	}
}

// Select runs a query against the core's select handler.
func (c *Client) Select(ctx context.Context, req *SelectRequest) (*SelectResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal select request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/solr/%s/select", c.baseURL, url.PathEscape(c.core))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build select request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	raw, err := c.do(httpReq, endpointSelect)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeSelect(raw)
	if err != nil {
		metrics.SolrErrorsTotal.WithLabelValues(endpointSelect, "malformed_response").Inc()
		return nil, err
	}
	return resp, nil
}

// CoreStatus returns the admin status of every core.
func (c *Client) CoreStatus(ctx context.Context) (*CoreStatusResponse, error) {
	endpoint := c.baseURL + "/solr/admin/cores?action=STATUS"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build status request: %w", err)
	}

	raw, err := c.do(httpReq, endpointStatus)
	if err != nil {
		return nil, err
	}

	var resp CoreStatusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		metrics.SolrErrorsTotal.WithLabelValues(endpointStatus, "malformed_response").Inc()
		return nil, fmt.Errorf("decode status response: %v: %w", err, domain.ErrMalformedResponse)
	}
	return &resp, nil
}

// Core returns the admin status of a single core.
// A core missing from the status report yields domain.ErrCoreNotFound.
func (c *Client) Core(ctx context.Context, name string) (core.Status, error) {
	resp, err := c.CoreStatus(ctx)
	if err != nil {
		return core.Status{}, err
	}
	st, ok := resp.Status[name]
	if !ok {
		return core.Status{}, fmt.Errorf("core %q: %w", name, domain.ErrCoreNotFound)
	}
	return core.NewStatus(name, st.StartTime, st.Index), nil
}

// Ping checks that the core answers its ping handler.
func (c *Client) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/solr/%s/admin/ping?wt=json", c.baseURL, url.PathEscape(c.core))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}
	if _, err := c.do(httpReq, endpointPing); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// do executes a request and returns the body of a 2xx response.
// Non-2xx responses become *domain.UpstreamError.
func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.SolrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.SolrErrorsTotal.WithLabelValues(endpoint, "transport").Inc()
		return nil, fmt.Errorf("solr %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.SolrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.SolrErrorsTotal.WithLabelValues(endpoint, "read_body").Inc()
		return nil, fmt.Errorf("read solr %s response: %w", endpoint, err)
	}

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.SolrRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.SolrErrorsTotal.WithLabelValues(endpoint, "http_status").Inc()
		c.logger.Error("solr request failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body)),
		)
		return nil, domain.NewUpstreamError(resp.StatusCode, string(truncate(body)))
	}

	metrics.SolrRequestsTotal.WithLabelValues(endpoint, "success").Inc()
	metrics.SolrRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	return body, nil
}

func truncate(b []byte) []byte {
	if len(b) > maxErrorBody {
		return b[:maxErrorBody]
	}
	return b
}
