// Package backend is the HTTP client of the billing backend. Every
// endpoint is a JSON POST answering {"error":{"value":n,"desc":s},"data":...}
// where value 0 means success.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sangkips/pos-terminal/internal/config"
	"github.com/sangkips/pos-terminal/pkg/apperror"
	"golang.org/x/time/rate"
)

// maxBodySize bounds what we read from a backend answer
const maxBodySize = 4 << 20

type envelope struct {
	Error struct {
		Value int    `json:"value"`
		Desc  string `json:"desc"`
	} `json:"error"`
	Data json.RawMessage `json:"data"`
}

// Client implements gateway.Backend over HTTP
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *Metrics
}

// NewClient creates a backend client. reg may be nil, in which case the
// metrics are collected but never exposed.
func NewClient(cfg config.BackendConfig, reg prometheus.Registerer) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, burst),
		metrics:    NewMetrics(reg),
	}
}

// post calls endpoint with payload and decodes the data section into out.
// Business errors become KindBackend, everything else KindTransport.
func (c *Client) post(ctx context.Context, token, endpoint string, payload, out interface{}) error {
	start := time.Now()
	err := c.do(ctx, token, endpoint, payload, out)
	c.metrics.observe(endpoint, err, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, token, endpoint string, payload, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return apperror.NewTransportError(fmt.Errorf("%s: throttled: %w", endpoint, err))
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperror.NewTransportError(fmt.Errorf("%s: encoding request: %w", endpoint, err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return apperror.NewTransportError(fmt.Errorf("%s: creating request: %w", endpoint, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("backend %s: %v", endpoint, err)
		return apperror.NewTransportError(fmt.Errorf("%s: %w", endpoint, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		log.Printf("backend %s: reading response: %v", endpoint, err)
		return apperror.NewTransportError(fmt.Errorf("%s: reading response: %w", endpoint, err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("backend %s: status %d, malformed response: %v", endpoint, resp.StatusCode, err)
		return apperror.NewTransportError(fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, err))
	}
	if env.Error.Value != 0 {
		return apperror.NewBackendError(env.Error.Value, env.Error.Desc)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("backend %s: unexpected status %d", endpoint, resp.StatusCode)
		return apperror.NewTransportError(fmt.Errorf("%s: unexpected status %d", endpoint, resp.StatusCode))
	}

	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("backend %s: decoding data: %v", endpoint, err)
		return apperror.NewTransportError(fmt.Errorf("%s: decoding data: %w", endpoint, err))
	}
	return nil
}
