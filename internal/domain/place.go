package domain

import "time"

// Place represents a durable venue record. A place comes into existence the
// first time a review references it; until then the venue only lives in the
// external search provider.
type Place struct {
	ID           string
	ExternalID   string
	Name         string
	Address      string
	CategoryMain string
	CategorySub  *string
	Latitude     float64
	Longitude    float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
