package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matzip-log/matzip-api/internal/domain"
)

// PlacesRepository provides persistence helpers for place entities.
type PlacesRepository struct {
	pool *pgxpool.Pool
}

const placeColumns = `
    id,
    external_id,
    name,
    address,
    category_main,
    category_sub,
    latitude,
    longitude,
    created_at,
    updated_at
`

// PlaceAttrs carries the attributes used when a place row must be created on
// first review. Empty fields fall back to placeholders.
type PlaceAttrs struct {
	Name         string
	Address      string
	CategoryMain string
	CategorySub  *string
	Latitude     float64
	Longitude    float64
}

// IsDurableID reports whether ref has the shape of a durable place id (UUID)
// as opposed to a raw external-provider identifier or URL.
func IsDurableID(ref string) bool {
	return uuid.Validate(ref) == nil
}

// GetByID fetches a place by its durable identifier.
func (r *PlacesRepository) GetByID(ctx context.Context, id string) (domain.Place, error) {
	if !IsDurableID(id) {
		return domain.Place{}, ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE id = $1`, id)
	place, err := scanPlace(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Place{}, ErrNotFound
		}
		return domain.Place{}, err
	}
	return place, nil
}

// GetByExternalID fetches a place by the provider-assigned identifier.
func (r *PlacesRepository) GetByExternalID(ctx context.Context, externalID string) (domain.Place, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+placeColumns+` FROM places WHERE external_id = $1`, externalID)
	place, err := scanPlace(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Place{}, ErrNotFound
		}
		return domain.Place{}, err
	}
	return place, nil
}

// ResolveOrCreate maps an external reference to a durable place, creating the
// row on first use. The write is an upsert keyed on external_id: the no-op
// DO UPDATE makes RETURNING yield the surviving row whether this call won the
// insert or raced another, so concurrent first reviews converge on one place.
func (r *PlacesRepository) ResolveOrCreate(ctx context.Context, externalRef string, attrs PlaceAttrs) (domain.Place, error) {
	if IsDurableID(externalRef) {
		return r.GetByID(ctx, externalRef)
	}

	name := strings.TrimSpace(attrs.Name)
	if name == "" {
		name = "Unknown place"
	}
	category := strings.TrimSpace(attrs.CategoryMain)
	if category == "" {
		category = "Other"
	}

	query := `
        INSERT INTO places (external_id, name, address, category_main, category_sub, latitude, longitude)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
        RETURNING ` + placeColumns

	row := r.pool.QueryRow(ctx, query,
		externalRef,
		name,
		strings.TrimSpace(attrs.Address),
		category,
		attrs.CategorySub,
		attrs.Latitude,
		attrs.Longitude,
	)
	return scanPlace(row)
}

func scanPlace(row pgx.Row) (domain.Place, error) {
	var place domain.Place
	err := row.Scan(
		&place.ID,
		&place.ExternalID,
		&place.Name,
		&place.Address,
		&place.CategoryMain,
		&place.CategorySub,
		&place.Latitude,
		&place.Longitude,
		&place.CreatedAt,
		&place.UpdatedAt,
	)
	if err != nil {
		return domain.Place{}, err
	}
	return place, nil
}
