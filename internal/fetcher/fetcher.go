package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sdpower/ccquota-go/internal/config"
	"github.com/sdpower/ccquota-go/internal/provider"
	"github.com/sdpower/ccquota-go/internal/types"
	log "github.com/sirupsen/logrus"
)

// maxBodySize caps how much of a response is read; quota payloads are tiny.
const maxBodySize = 1 << 20

// Client performs the single authenticated GET made per invocation.
type Client struct {
	client *http.Client
}

func New() *Client {
	return &Client{client: &http.Client{}}
}

// NewWithHTTPClient lets callers supply their own transport.
func NewWithHTTPClient(client *http.Client) *Client {
	return &Client{client: client}
}

// Fetch retrieves the quota snapshot from cfg.APIURL. The request is bounded
// by cfg.RequestTimeout and never retried.
func (c *Client) Fetch(ctx context.Context, cfg config.QuotaConfig, p provider.Provider, token string) (types.QuotaData, error) {
	if cfg.APIURL == "" {
		return types.QuotaData{}, types.ErrNoEndpoint
	}
	if token == "" {
		return types.QuotaData{}, types.ErrNoCredential
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.APIURL, nil)
	if err != nil {
		return types.QuotaData{}, fmt.Errorf("build quota request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	p.Authorize(req, token)

	resp, err := c.client.Do(req)
	if err != nil {
		return types.QuotaData{}, fmt.Errorf("quota request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return types.QuotaData{}, types.StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return types.QuotaData{}, fmt.Errorf("read quota response: %w", err)
	}

	data, err := p.Decode(body)
	if err != nil {
		return types.QuotaData{}, err
	}

	log.Debugf("quota fetch: %s returned %d bytes", p.Name(), len(body))
	return data, nil
}
