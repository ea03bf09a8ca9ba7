package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzip-log/matzip-api/internal/domain"
)

// ReviewsRepository provides persistence helpers for review entities.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    id,
    place_id,
    author_name,
    author_email,
    rating,
    content,
    password_hash,
    created_at,
    updated_at
`

// ReviewCreateParams bundles the fields required to create a review. The
// password arrives here already hashed; the repository never sees plaintext.
type ReviewCreateParams struct {
	PlaceID      string
	AuthorName   string
	AuthorEmail  *string
	Rating       int
	Content      string
	PasswordHash string
}

// Pagination describes one page of a review listing.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int   `json:"totalPages"`
	HasNextPage bool  `json:"hasNextPage"`
}

// ReviewPage is the paginated listing payload.
type ReviewPage struct {
	Items      []domain.Review
	Pagination Pagination
}

const (
	defaultPageSize = 10
	maxPageSize     = 20
)

// Create inserts a review row and returns the stored entity.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) (domain.Review, error) {
	query := `
        INSERT INTO reviews (place_id, author_name, author_email, rating, content, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING ` + reviewColumns

	row := r.pool.QueryRow(ctx, query,
		params.PlaceID,
		params.AuthorName,
		params.AuthorEmail,
		params.Rating,
		params.Content,
		params.PasswordHash,
	)
	return scanReview(row)
}

// GetByID fetches a review including its password hash. Callers outside the
// mutation gate must not serialize the hash.
func (r *ReviewsRepository) GetByID(ctx context.Context, id string) (domain.Review, error) {
	if !IsDurableID(id) {
		return domain.Review{}, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// List returns one newest-first page of a place's reviews plus pagination
// metadata. Page and pageSize are normalized to sane bounds.
func (r *ReviewsRepository) List(ctx context.Context, placeID string, page, pageSize int) (ReviewPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	} else if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	if !IsDurableID(placeID) {
		return ReviewPage{
			Items:      []domain.Review{},
			Pagination: Pagination{CurrentPage: page, PageSize: pageSize},
		}, nil
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM reviews WHERE place_id = $1`, placeID).Scan(&total); err != nil {
		return ReviewPage{}, fmt.Errorf("count reviews: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT ` + reviewColumns + `
        FROM reviews
        WHERE place_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, placeID, pageSize, offset)
	if err != nil {
		return ReviewPage{}, err
	}
	defer rows.Close()

	items := make([]domain.Review, 0, pageSize)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return ReviewPage{}, err
		}
		items = append(items, review)
	}
	if err := rows.Err(); err != nil {
		return ReviewPage{}, err
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return ReviewPage{
		Items: items,
		Pagination: Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalCount:  total,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
		},
	}, nil
}

// Update applies the present fields to a review and bumps updated_at. Absent
// fields keep their stored values.
func (r *ReviewsRepository) Update(ctx context.Context, id string, rating *int, content *string) (domain.Review, error) {
	if !IsDurableID(id) {
		return domain.Review{}, ErrNotFound
	}
	query := `
        UPDATE reviews
        SET rating = COALESCE($2, rating),
            content = COALESCE($3, content),
            updated_at = now()
        WHERE id = $1
        RETURNING ` + reviewColumns

	row := r.pool.QueryRow(ctx, query, id, rating, content)
	review, err := scanReview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// Delete removes a review row. Deletion is terminal; there is no soft delete.
func (r *ReviewsRepository) Delete(ctx context.Context, id string) error {
	if !IsDurableID(id) {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RatingsForPlace returns the bare rating values for a place, the input for
// statistics computed per read.
func (r *ReviewsRepository) RatingsForPlace(ctx context.Context, placeID string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT rating FROM reviews WHERE place_id = $1`, placeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ratings []int
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ratings, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.PlaceID,
		&review.AuthorName,
		&review.AuthorEmail,
		&review.Rating,
		&review.Content,
		&review.PasswordHash,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}
