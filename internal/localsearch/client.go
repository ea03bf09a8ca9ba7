// Package localsearch talks to the external venue search provider. The
// provider owns venue discovery; this system only stores a durable row for a
// venue once somebody reviews it.
package localsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUnavailable is returned when the provider answers with a server error.
var ErrUnavailable = errors.New("localsearch: provider unavailable")

// MaxDisplay is the largest result count the provider serves per request.
const MaxDisplay = 5

// Item is a single raw search hit as the provider returns it. Title may embed
// HTML highlight markup and mapx/mapy are fixed-point 1e-7 degree strings;
// use the transform helpers before showing any of it to a client.
type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Category    string `json:"category"`
	Address     string `json:"address"`
	RoadAddress string `json:"roadAddress"`
	MapX        string `json:"mapx"`
	MapY        string `json:"mapy"`
}

// Response is the provider's search payload.
type Response struct {
	Total   int    `json:"total"`
	Start   int    `json:"start"`
	Display int    `json:"display"`
	Items   []Item `json:"items"`
}

// Client defines the contract for querying the search provider.
type Client interface {
	Search(ctx context.Context, query string, display int) (*Response, error)
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL      *url.URL
	clientID     string
	clientSecret string
	client       *http.Client
	logger       *log.Logger
}

// NewHTTPClient constructs an HTTP-backed search client. The client is built
// once at startup and injected wherever search is needed; it is read-only
// after construction and safe for concurrent use.
func NewHTTPClient(baseURL, clientID, clientSecret string, timeout time.Duration, logger *log.Logger) (*HTTPClient, error) {
	if logger == nil {
		logger = log.Default()
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse search url: %w", err)
	}
	return &HTTPClient{
		baseURL:      parsed,
		clientID:     clientID,
		clientSecret: clientSecret,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}, nil
}

// Search performs a venue search. Display is clamped to the provider's cap.
func (c *HTTPClient) Search(ctx context.Context, query string, display int) (*Response, error) {
	if display <= 0 || display > MaxDisplay {
		display = MaxDisplay
	}

	rel := &url.URL{Path: "/search/local"}
	q := rel.Query()
	q.Set("query", query)
	q.Set("display", fmt.Sprintf("%d", display))
	rel.RawQuery = q.Encode()
	endpoint := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Search-Client-Id", c.clientID)
	req.Header.Set("X-Search-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload Response
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		return &payload, nil
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.Printf("localsearch: provider returned %d for query %q", resp.StatusCode, query)
		return nil, ErrUnavailable
	default:
		return nil, fmt.Errorf("localsearch: upstream returned %d", resp.StatusCode)
	}
}
