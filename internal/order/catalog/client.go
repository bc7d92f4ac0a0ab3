package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

const defaultTimeout = 5 * time.Second

// HTTPClient reads the catalog over the product service's HTTP API,
// behind a circuit breaker so a dead catalog fails fast instead of
// holding requests until every timeout expires.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*Entry]
}

func NewHTTPClient(baseURL string) *HTTPClient {
	settings := gobreaker.Settings{
		Name:    "catalog",
		Timeout: 10 * time.Second,
		// A missing product is an answer, not a catalog failure; it must
		// not trip the breaker.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound)
		},
	}

	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		breaker: gobreaker.NewCircuitBreaker[*Entry](settings),
	}
}

func (c *HTTPClient) Lookup(ctx context.Context, productID int64) (*Entry, error) {
	entry, err := c.breaker.Execute(func() (*Entry, error) {
		return c.fetch(ctx, productID)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("circuit open: %w", ErrUnavailable)
		}
		return nil, err
	}
	return entry, nil
}

func (c *HTTPClient) fetch(ctx context.Context, productID int64) (*Entry, error) {
	url := fmt.Sprintf("%s/api/products/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", ErrUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog returned status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	var entry Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", ErrUnavailable)
	}
	return &entry, nil
}
