package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzip-log/matzip-api/internal/repository"
)

func BenchmarkHandleCreateReview(b *testing.B) {
	srv := buildTestServer(b)

	place, err := srv.repo.Places.ResolveOrCreate(context.Background(), "bench-place", repository.PlaceAttrs{Name: "Benchmark Diner"})
	if err != nil {
		b.Fatalf("create place: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		payload := fmt.Sprintf(`{
            "placeId": %q,
            "authorName": "Bench Author %d",
            "rating": 4,
            "content": "quick visit",
            "password": "bench-pass"
        }`, place.ID, i)
		req := httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(payload))
		rec := httptest.NewRecorder()

		srv.handleCreateReview(rec, req)
		if rec.Code != http.StatusCreated {
			b.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
		}
	}
}
