package validation

import (
	"strings"
	"testing"
)

func validForm() ReviewForm {
	return ReviewForm{
		PlaceID:    "3c0f9a34-6f2e-4b8e-9d6f-2a9a8f6f9e01",
		AuthorName: "Jane Doe",
		Rating:     4,
		Content:    "Great bibimbap, generous portions.",
		Password:   "pass1234",
	}
}

func TestFormValid(t *testing.T) {
	errs := Form(validForm())
	if len(errs) != 0 {
		t.Fatalf("expected valid form, got errors: %v", errs)
	}
}

func TestFormFieldErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *ReviewForm)
		field  string
		want   string
	}{
		{
			name:   "empty author name",
			mutate: func(f *ReviewForm) { f.AuthorName = "" },
			field:  "authorName",
			want:   "required",
		},
		{
			name:   "author name too short",
			mutate: func(f *ReviewForm) { f.AuthorName = "J" },
			field:  "authorName",
			want:   "at least 2",
		},
		{
			name:   "author name too long",
			mutate: func(f *ReviewForm) { f.AuthorName = strings.Repeat("a", 101) },
			field:  "authorName",
			want:   "at most 100",
		},
		{
			name:   "unselected rating",
			mutate: func(f *ReviewForm) { f.Rating = 0 },
			field:  "rating",
			want:   "Select a rating",
		},
		{
			name:   "rating out of range",
			mutate: func(f *ReviewForm) { f.Rating = 6 },
			field:  "rating",
			want:   "between 1 and 5",
		},
		{
			name:   "empty content",
			mutate: func(f *ReviewForm) { f.Content = "" },
			field:  "content",
			want:   "required",
		},
		{
			name:   "content too long",
			mutate: func(f *ReviewForm) { f.Content = strings.Repeat("x", 501) },
			field:  "content",
			want:   "at most 500",
		},
		{
			name:   "bad email",
			mutate: func(f *ReviewForm) { f.AuthorEmail = "not-an-email" },
			field:  "authorEmail",
			want:   "valid email",
		},
		{
			name:   "short password",
			mutate: func(f *ReviewForm) { f.Password = "abc" },
			field:  "password",
			want:   "at least 4",
		},
		{
			name:   "missing place id",
			mutate: func(f *ReviewForm) { f.PlaceID = "" },
			field:  "placeId",
			want:   "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			errs := Form(form)
			msg, ok := errs[tt.field]
			if !ok {
				t.Fatalf("expected error on %q, got %v", tt.field, errs)
			}
			if !strings.Contains(msg, tt.want) {
				t.Fatalf("message %q does not mention %q", msg, tt.want)
			}
		})
	}
}

func TestFormBoundaryLengths(t *testing.T) {
	form := validForm()
	form.Content = "x" // minimum allowed length
	if errs := Form(form); len(errs) != 0 {
		t.Fatalf("minimum-length content should be valid, got %v", errs)
	}

	form.Content = strings.Repeat("x", ContentMax)
	if errs := Form(form); len(errs) != 0 {
		t.Fatalf("max-length content should be valid, got %v", errs)
	}

	form.AuthorName = "Jo" // exactly the minimum
	if errs := Form(form); len(errs) != 0 {
		t.Fatalf("minimum-length name should be valid, got %v", errs)
	}
}

func TestFormOptionalEmail(t *testing.T) {
	form := validForm()
	form.AuthorEmail = ""
	if errs := Form(form); len(errs) != 0 {
		t.Fatalf("absent email should be valid, got %v", errs)
	}

	form.AuthorEmail = "jane@example.com"
	if errs := Form(form); len(errs) != 0 {
		t.Fatalf("well-formed email should be valid, got %v", errs)
	}
}

func TestNormalizeTrims(t *testing.T) {
	form := validForm()
	form.AuthorName = "  Jane Doe  "
	form.Content = "  tasty  "
	form.Normalize()
	if form.AuthorName != "Jane Doe" {
		t.Fatalf("AuthorName = %q, want trimmed", form.AuthorName)
	}
	if form.Content != "tasty" {
		t.Fatalf("Content = %q, want trimmed", form.Content)
	}

	// A whitespace-only name trims to empty and then fails required.
	form.AuthorName = "   "
	form.Normalize()
	if errs := Form(form); errs["authorName"] == "" {
		t.Fatalf("whitespace-only name should fail, got %v", errs)
	}
}

func TestUpdateForm(t *testing.T) {
	rating := 3
	content := "updated"
	errs := Update(UpdateForm{Rating: &rating, Content: &content, Password: "pass1234"})
	if len(errs) != 0 {
		t.Fatalf("expected valid update form, got %v", errs)
	}

	// Fields may be omitted entirely; only the password is mandatory.
	if errs := Update(UpdateForm{Password: "pass1234"}); len(errs) != 0 {
		t.Fatalf("password-only update should be valid, got %v", errs)
	}

	if errs := Update(UpdateForm{Password: ""}); errs["password"] == "" {
		t.Fatalf("missing password should fail, got %v", errs)
	}

	bad := 0
	if errs := Update(UpdateForm{Rating: &bad, Password: "pass1234"}); errs["rating"] == "" {
		t.Fatalf("rating 0 should fail when present, got %v", errs)
	}
}

func TestField(t *testing.T) {
	if msg := Field("rating", 0); !strings.Contains(msg, "Select a rating") {
		t.Fatalf("Field(rating, 0) = %q", msg)
	}
	if msg := Field("rating", 5); msg != "" {
		t.Fatalf("Field(rating, 5) = %q, want empty", msg)
	}
	if msg := Field("authorName", "J"); msg == "" {
		t.Fatalf("one-character name should fail")
	}
	if msg := Field("password", "abcd"); msg != "" {
		t.Fatalf("four-character password should pass, got %q", msg)
	}
	if msg := Field("unknown", "whatever"); msg != "" {
		t.Fatalf("unknown field should pass through, got %q", msg)
	}
}
