package localsearch

import (
	"context"
	"io"
	"log"
	"os"
	"testing"
	"time"
)

// TestHTTPClientSmoke runs against a live (or mock) provider when
// SEARCH_BASE_URL is set; CI uses cmd/localsearch-mock as the target.
func TestHTTPClientSmoke(t *testing.T) {
	baseURL := os.Getenv("SEARCH_BASE_URL")
	if baseURL == "" {
		t.Skip("SEARCH_BASE_URL not provided")
	}

	client, err := NewHTTPClient(baseURL, os.Getenv("SEARCH_CLIENT_ID"), os.Getenv("SEARCH_CLIENT_SECRET"), 3*time.Second, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("create http client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Search(ctx, "gamjatang", 5)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if resp.Total < 0 || len(resp.Items) > MaxDisplay {
		t.Fatalf("unexpected search payload: total=%d items=%d", resp.Total, len(resp.Items))
	}
}
