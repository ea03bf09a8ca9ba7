package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzip-log/matzip-api/internal/domain"
	"github.com/matzip-log/matzip-api/internal/localsearch"
	"github.com/matzip-log/matzip-api/internal/password"
	"github.com/matzip-log/matzip-api/internal/repository"
	"github.com/matzip-log/matzip-api/internal/validation"
)

type reviewCreateRequest struct {
	PlaceID     string             `json:"placeId"`
	AuthorName  string             `json:"authorName"`
	AuthorEmail string             `json:"authorEmail"`
	Rating      int                `json:"rating"`
	Content     string             `json:"content"`
	Password    string             `json:"password"`
	Place       *placeAttrsRequest `json:"place"`
}

// placeAttrsRequest carries optional venue attributes from the search result
// the client reviewed. They matter only the first time a venue is reviewed,
// when the durable place row is created.
type placeAttrsRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Category  string  `json:"category"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type reviewDeleteRequest struct {
	Password string `json:"password"`
}

// reviewResponse deliberately has no password field of any kind.
type reviewResponse struct {
	ID          string    `json:"id"`
	PlaceID     string    `json:"placeId"`
	AuthorName  string    `json:"authorName"`
	AuthorEmail *string   `json:"authorEmail"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type reviewListResponse struct {
	Items      []reviewResponse      `json:"items"`
	Pagination repository.Pagination `json:"pagination"`
}

type reviewListParams struct {
	PlaceID string
	Page    int
	Limit   int
}

func buildReviewListParams(query url.Values) (reviewListParams, error) {
	params := reviewListParams{Page: 1, Limit: 10}

	params.PlaceID = strings.TrimSpace(query.Get("placeId"))
	if params.PlaceID == "" {
		return params, fmt.Errorf("placeId is required")
	}

	if val := strings.TrimSpace(query.Get("page")); val != "" {
		page, err := strconv.Atoi(val)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid page value")
		}
		params.Page = page
	}
	if val := strings.TrimSpace(query.Get("limit")); val != "" {
		limit, err := strconv.Atoi(val)
		if err != nil || limit < 1 {
			return params, fmt.Errorf("invalid limit value")
		}
		params.Limit = limit
	}
	return params, nil
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	params, err := buildReviewListParams(r.URL.Query())
	if err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		return
	}

	// An external ref that was never reviewed has no place row and therefore
	// no reviews; that is an empty page, not an error.
	placeID := params.PlaceID
	if !repository.IsDurableID(placeID) {
		place, err := s.repo.Places.GetByExternalID(r.Context(), placeID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				s.logger.Printf("resolve external ref for listing: %v", err)
				s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to list reviews")
				return
			}
		} else {
			placeID = place.ID
		}
	}

	page, err := s.repo.Reviews.List(r.Context(), placeID, params.Page, params.Limit)
	if err != nil {
		s.logger.Printf("list reviews error: %v", err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to list reviews")
		return
	}

	items := make([]reviewResponse, 0, len(page.Items))
	for _, review := range page.Items {
		items = append(items, toReviewResponse(review))
	}
	s.respondData(w, http.StatusOK, reviewListResponse{Items: items, Pagination: page.Pagination})
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}

	form := validation.ReviewForm{
		PlaceID:     strings.TrimSpace(req.PlaceID),
		AuthorName:  req.AuthorName,
		AuthorEmail: req.AuthorEmail,
		Rating:      req.Rating,
		Content:     req.Content,
		Password:    req.Password,
	}
	form.Normalize()
	if errs := validation.Form(form); len(errs) > 0 {
		s.respondValidation(w, errs)
		return
	}

	var attrs repository.PlaceAttrs
	if req.Place != nil {
		main, sub := localsearch.ParseCategory(req.Place.Category)
		attrs = repository.PlaceAttrs{
			Name:         localsearch.StripTags(req.Place.Name),
			Address:      req.Place.Address,
			CategoryMain: main,
			CategorySub:  sub,
			Latitude:     req.Place.Latitude,
			Longitude:    req.Place.Longitude,
		}
	}

	place, err := s.repo.Places.ResolveOrCreate(r.Context(), form.PlaceID, attrs)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, codeNotFound, "Place not found")
			return
		}
		s.logger.Printf("resolve place for review: %v", err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create review")
		return
	}

	hash, err := password.Hash(form.Password)
	if err != nil {
		s.logger.Printf("hash review password: %v", err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create review")
		return
	}

	var email *string
	if form.AuthorEmail != "" {
		email = &form.AuthorEmail
	}

	review, err := s.repo.Reviews.Create(r.Context(), repository.ReviewCreateParams{
		PlaceID:      place.ID,
		AuthorName:   form.AuthorName,
		AuthorEmail:  email,
		Rating:       form.Rating,
		Content:      form.Content,
		PasswordHash: hash,
	})
	if err != nil {
		s.logger.Printf("create review error: %v", err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to create review")
		return
	}

	s.respondData(w, http.StatusCreated, toReviewResponse(review))
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	var form validation.UpdateForm
	if err := decodeJSONBody(w, r, &form); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	form.Normalize()
	if errs := validation.Update(form); len(errs) > 0 {
		s.respondValidation(w, errs)
		return
	}

	review, ok := s.authorizeMutation(r, reviewID, form.Password)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, codeInvalidPassword, "Password does not match")
		return
	}

	updated, err := s.repo.Reviews.Update(r.Context(), review.ID, form.Rating, form.Content)
	if err != nil {
		s.logger.Printf("update review %s: %v", review.ID, err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to update review")
		return
	}

	s.respondData(w, http.StatusOK, toReviewResponse(updated))
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	var req reviewDeleteRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if msg := validation.Field("password", req.Password); msg != "" {
		s.respondValidation(w, map[string]string{"password": msg})
		return
	}

	review, ok := s.authorizeMutation(r, reviewID, req.Password)
	if !ok {
		s.respondError(w, http.StatusUnauthorized, codeInvalidPassword, "Password does not match")
		return
	}

	if err := s.repo.Reviews.Delete(r.Context(), review.ID); err != nil {
		s.logger.Printf("delete review %s: %v", review.ID, err)
		s.respondError(w, http.StatusInternalServerError, codeInternal, "Failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorizeMutation loads a review and checks the supplied password. A missing
// review and a wrong password are indistinguishable to the caller; both come
// back as a single authorization failure so review ids cannot be probed.
func (s *Server) authorizeMutation(r *http.Request, reviewID, plain string) (domain.Review, bool) {
	review, err := s.repo.Reviews.GetByID(r.Context(), reviewID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.Printf("load review %s for mutation: %v", reviewID, err)
		}
		return domain.Review{}, false
	}
	if !password.Verify(plain, review.PasswordHash) {
		return domain.Review{}, false
	}
	return review, true
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		ID:          review.ID,
		PlaceID:     review.PlaceID,
		AuthorName:  review.AuthorName,
		AuthorEmail: review.AuthorEmail,
		Rating:      review.Rating,
		Content:     review.Content,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}
