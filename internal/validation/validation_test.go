package validation_test

import (
	"testing"

	"katalog/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestCategoryPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload validation.CategoryPayload
		wantErr string
	}{
		{
			name:    "valid",
			payload: validation.CategoryPayload{Name: "Fiction"},
		},
		{
			name:    "valid with image url",
			payload: validation.CategoryPayload{Name: "Fiction", ImageURL: "https://example.com/f.png"},
		},
		{
			name:    "missing name",
			payload: validation.CategoryPayload{},
			wantErr: "name is required",
		},
		{
			name:    "name too short",
			payload: validation.CategoryPayload{Name: "ab"},
			wantErr: "name must be at least 3 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Category(tt.payload)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestProductPayload(t *testing.T) {
	valid := validation.ProductPayload{
		Title:       "A Study of Catalogs",
		Author:      "Ann Lee",
		Description: "On the ordering of things",
	}

	assert.NoError(t, validation.Product(valid))

	short := valid
	short.Title = "ab"
	assert.EqualError(t, validation.Product(short), "title must be at least 3 characters long")

	noAuthor := valid
	noAuthor.Author = ""
	assert.EqualError(t, validation.Product(noAuthor), "author is required")

	noDescription := valid
	noDescription.Description = ""
	assert.EqualError(t, validation.Product(noDescription), "description is required")

	longAuthor := valid
	longAuthor.Author = "an author name that is far longer than thirty characters"
	assert.EqualError(t, validation.Product(longAuthor), "author must be at most 30 characters long")
}

func TestCommentPayload(t *testing.T) {
	likeCount := 3
	assert.NoError(t, validation.Comment(validation.CommentPayload{
		Text:      "nice",
		LikeCount: &likeCount,
		Username:  "ann",
		UserID:    "user-1",
	}))

	// Text and like count are optional.
	assert.NoError(t, validation.Comment(validation.CommentPayload{
		Username: "ann",
		UserID:   "user-1",
	}))

	assert.EqualError(t, validation.Comment(validation.CommentPayload{UserID: "user-1"}),
		"username is required")
	assert.EqualError(t, validation.Comment(validation.CommentPayload{Username: "ann"}),
		"userId is required")
}

func TestRegisterPayload(t *testing.T) {
	valid := validation.RegisterPayload{
		Name:     "Ann Lee",
		Email:    "ann@x.com",
		Password: "secret",
	}

	assert.NoError(t, validation.Register(valid))

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.EqualError(t, validation.Register(badEmail), "email must be a valid email address")

	shortPassword := valid
	shortPassword.Password = "abcd"
	assert.EqualError(t, validation.Register(shortPassword), "password must be at least 5 characters long")

	noName := valid
	noName.Name = ""
	assert.EqualError(t, validation.Register(noName), "name is required")
}

func TestLoginPayload(t *testing.T) {
	assert.NoError(t, validation.Login(validation.LoginPayload{
		Email:    "ann@x.com",
		Password: "secret",
	}))

	assert.EqualError(t, validation.Login(validation.LoginPayload{Password: "secret"}),
		"email is required")
	assert.EqualError(t, validation.Login(validation.LoginPayload{Email: "ann@x.com"}),
		"password is required")

	// Login enforces the same format constraints as registration.
	assert.EqualError(t, validation.Login(validation.LoginPayload{Email: "not-an-email", Password: "secret"}),
		"email must be a valid email address")
	assert.EqualError(t, validation.Login(validation.LoginPayload{Email: "ann@x.com", Password: "abc"}),
		"password must be at least 5 characters long")
}
