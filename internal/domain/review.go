package domain

import "time"

// Review is a rated, password-protected text entry attached to a place.
// PasswordHash never leaves the repository/handler boundary; response types in
// the http package deliberately have no field for it.
type Review struct {
	ID           string
	PlaceID      string
	AuthorName   string
	AuthorEmail  *string
	Rating       int
	Content      string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
