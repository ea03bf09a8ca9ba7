package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzip-log/matzip-api/internal/localsearch"
	"github.com/matzip-log/matzip-api/internal/repository"
	"github.com/matzip-log/matzip-api/internal/stats"
)

type searchParams struct {
	Query string
	Limit int
}

type placeListItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	CategoryMain string   `json:"categoryMain"`
	CategorySub  *string  `json:"categorySub,omitempty"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	HasReviews   bool     `json:"hasReviews"`
	ReviewCount  *int     `json:"reviewCount,omitempty"`
	AvgRating    *float64 `json:"avgRating,omitempty"`
}

type placeSearchResponse struct {
	Items []placeListItem `json:"items"`
	Total int             `json:"total"`
}

type placeDetailResponse struct {
	ID           string           `json:"id"`
	ExternalID   string           `json:"externalId"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	CategoryMain string           `json:"categoryMain"`
	CategorySub  *string          `json:"categorySub,omitempty"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
	Statistics   stats.Statistics `json:"statistics"`
}

func buildSearchParams(query url.Values) (searchParams, error) {
	params := searchParams{Limit: localsearch.MaxDisplay}

	q := strings.TrimSpace(query.Get("query"))
	if q == "" {
		return params, fmt.Errorf("query is required")
	}
	if len([]rune(q)) < 2 {
		return params, fmt.Errorf("query must be at least 2 characters")
	}
	if len([]rune(q)) > 100 {
		return params, fmt.Errorf("query must be at most 100 characters")
	}
	params.Query = q

	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil || limit < 1 {
			return params, fmt.Errorf("invalid limit value")
		}
		if limit > localsearch.MaxDisplay {
			limit = localsearch.MaxDisplay
		}
		params.Limit = limit
	}
	return params, nil
}

func (s *Server) handleSearchPlaces(w http.ResponseWriter, r *http.Request) {
	params, err := buildSearchParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(s.cfg.SearchTimeoutSecs)*time.Second)
	defer cancel()

	resp, err := s.search.Search(ctx, params.Query, params.Limit)
	if err != nil {
		s.logger.Printf("place search failed for %q: %v", params.Query, err)
		s.respondError(w, http.StatusBadGateway, codeUpstream, "Place search is temporarily unavailable")
		return
	}

	items := make([]placeListItem, 0, len(resp.Items))
	for _, hit := range resp.Items {
		item, err := s.toPlaceListItem(r.Context(), hit)
		if err != nil {
			s.logger.Printf("overlay search hit %q: %v", hit.Link, err)
			s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to search places")
			return
		}
		items = append(items, item)
	}

	s.respondData(w, http.StatusOK, placeSearchResponse{Items: items, Total: resp.Total})
}

// toPlaceListItem converts a raw provider hit and overlays local review state
// when the venue already has a durable row.
func (s *Server) toPlaceListItem(ctx context.Context, hit localsearch.Item) (placeListItem, error) {
	main, sub := localsearch.ParseCategory(hit.Category)
	item := placeListItem{
		ID:           hit.Link,
		Name:         localsearch.StripTags(hit.Title),
		Address:      localsearch.BestAddress(hit),
		CategoryMain: main,
		CategorySub:  sub,
		Latitude:     localsearch.ParseCoordinate(hit.MapY),
		Longitude:    localsearch.ParseCoordinate(hit.MapX),
	}

	place, err := s.repo.Places.GetByExternalID(ctx, hit.Link)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return item, nil
		}
		return placeListItem{}, err
	}

	item.ID = place.ID
	ratings, err := s.repo.Reviews.RatingsForPlace(ctx, place.ID)
	if err != nil {
		return placeListItem{}, err
	}
	if agg := stats.Compute(ratings); agg.TotalReviews > 0 {
		item.HasReviews = true
		item.ReviewCount = &agg.TotalReviews
		item.AvgRating = &agg.AverageRating
	}
	return item, nil
}

func (s *Server) handleGetPlace(w http.ResponseWriter, r *http.Request) {
	placeID := chi.URLParam(r, "placeID")

	place, err := s.repo.Places.GetByID(r.Context(), placeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, codeNotFound, "Place not found")
			return
		}
		s.logger.Printf("get place %s: %v", placeID, err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to fetch place")
		return
	}

	ratings, err := s.repo.Reviews.RatingsForPlace(r.Context(), place.ID)
	if err != nil {
		s.logger.Printf("ratings for place %s: %v", place.ID, err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to fetch place")
		return
	}

	s.respondData(w, http.StatusOK, placeDetailResponse{
		ID:           place.ID,
		ExternalID:   place.ExternalID,
		Name:         place.Name,
		Address:      place.Address,
		CategoryMain: place.CategoryMain,
		CategorySub:  place.CategorySub,
		Latitude:     place.Latitude,
		Longitude:    place.Longitude,
		CreatedAt:    place.CreatedAt,
		UpdatedAt:    place.UpdatedAt,
		Statistics:   stats.Compute(ratings),
	})
}
