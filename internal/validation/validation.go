// Package validation holds the review submission rules. The same rules back
// both whole-form validation on create/update and single-field checks used for
// live feedback.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Canonical field bounds. Author names and content follow the server-side
// schema; the password ceiling stays under bcrypt's 72-byte input limit.
const (
	AuthorNameMin = 2
	AuthorNameMax = 100
	EmailMax      = 100
	ContentMin    = 1
	ContentMax    = 500
	PasswordMin   = 4
	PasswordMax   = 50
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ReviewForm is the review creation payload. Rating 0 means "unselected" and
// is rejected by the required tag.
type ReviewForm struct {
	PlaceID     string `json:"placeId" validate:"required"`
	AuthorName  string `json:"authorName" validate:"required,min=2,max=100"`
	AuthorEmail string `json:"authorEmail" validate:"omitempty,email,max=100"`
	Rating      int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content     string `json:"content" validate:"required,min=1,max=500"`
	Password    string `json:"password" validate:"required,min=4,max=50"`
}

// UpdateForm is the review mutation payload. Rating and content are optional;
// absent fields are left untouched by the update.
type UpdateForm struct {
	Rating   *int    `json:"rating" validate:"omitnil,gte=1,lte=5"`
	Content  *string `json:"content" validate:"omitnil,min=1,max=500"`
	Password string  `json:"password" validate:"required,min=4,max=50"`
}

// Normalize trims the free-text fields so length rules apply to the trimmed
// values and the trimmed values are what gets persisted.
func (f *ReviewForm) Normalize() {
	f.AuthorName = strings.TrimSpace(f.AuthorName)
	f.AuthorEmail = strings.TrimSpace(f.AuthorEmail)
	f.Content = strings.TrimSpace(f.Content)
}

// Normalize trims the optional content field when present.
func (f *UpdateForm) Normalize() {
	if f.Content != nil {
		trimmed := strings.TrimSpace(*f.Content)
		f.Content = &trimmed
	}
}

// Form validates the whole creation form and returns a field→message map.
// The form is valid iff the map is empty.
func Form(f ReviewForm) map[string]string {
	return collect(validate.Struct(f))
}

// Update validates the mutation form the same way.
func Update(f UpdateForm) map[string]string {
	return collect(validate.Struct(f))
}

// Field validates a single named field and returns its error message, or ""
// when the value is acceptable.
func Field(name string, value any) string {
	var tag string
	switch name {
	case "placeId":
		tag = "required"
	case "authorName":
		tag = "required,min=2,max=100"
	case "authorEmail":
		tag = "omitempty,email,max=100"
	case "rating":
		tag = "required,gte=1,lte=5"
	case "content":
		tag = "required,min=1,max=500"
	case "password":
		tag = "required,min=4,max=50"
	default:
		return ""
	}
	if err := validate.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return message(name, verrs[0].Tag())
		}
		return "Invalid value"
	}
	return ""
}

func collect(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid form payload"
		return out
	}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; !seen {
			out[field] = message(field, fe.Tag())
		}
	}
	return out
}

func message(field, tag string) string {
	switch field {
	case "placeId":
		return "Place ID is required"
	case "authorName":
		switch tag {
		case "min":
			return "Author name must be at least 2 characters"
		case "max":
			return "Author name must be at most 100 characters"
		default:
			return "Author name is required"
		}
	case "authorEmail":
		if tag == "max" {
			return "Email must be at most 100 characters"
		}
		return "Enter a valid email address"
	case "rating":
		if tag == "required" {
			return "Select a rating"
		}
		return "Rating must be between 1 and 5"
	case "content":
		switch tag {
		case "max":
			return "Review content must be at most 500 characters"
		default:
			return "Review content is required"
		}
	case "password":
		switch tag {
		case "min":
			return "Password must be at least 4 characters"
		case "max":
			return "Password must be at most 50 characters"
		default:
			return "Password is required"
		}
	}
	return "Invalid value"
}
