// Package catalog fetches accommodation records from the upstream listing API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/stay-browser/server/internal/accommodation"
)

// DefaultURL is the public accommodation listing endpoint.
const DefaultURL = "https://api.adriatic.hr/test/accommodation"

// ErrFetchStatus is wrapped when the upstream answers with a non-200 status.
var ErrFetchStatus = errors.New("unexpected catalog status")

// Client downloads and decodes the accommodation listing.
type Client struct {
	httpClient *http.Client
	url        string
	validate   *validator.Validate
	log        *zap.Logger
}

// NewClient creates a catalog client for the given endpoint.
func NewClient(url string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		validate:   accommodation.NewValidator(),
		log:        log,
	}
}

// URL returns the endpoint the client reads from.
func (c *Client) URL() string { return c.url }

// Result is a decoded listing together with the records that were rejected.
type Result struct {
	Accommodations []accommodation.Accommodation
	Dropped        int
}

// Fetch downloads and decodes the listing. It issues a plain GET with no
// query parameters and no pagination.
func (c *Client) Fetch(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrFetchStatus, resp.StatusCode)
	}

	return c.Decode(resp.Body)
}

// Decode reads a JSON array of accommodations. Records that fail validation
// are dropped and counted; a malformed document is an error.
func (c *Client) Decode(r io.Reader) (*Result, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	result := &Result{Accommodations: make([]accommodation.Accommodation, 0, len(raw))}
	for i, msg := range raw {
		var a accommodation.Accommodation
		if err := json.Unmarshal(msg, &a); err != nil {
			c.log.Warn("dropping undecodable accommodation", zap.Int("index", i), zap.Error(err))
			result.Dropped++
			continue
		}
		if err := c.validate.Struct(a); err != nil {
			c.log.Warn("dropping invalid accommodation",
				zap.Int("index", i),
				zap.String("id", string(a.ID)),
				zap.Error(err),
			)
			result.Dropped++
			continue
		}
		result.Accommodations = append(result.Accommodations, a)
	}

	return result, nil
}
