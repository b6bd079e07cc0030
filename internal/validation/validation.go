// Package validation holds the payload shapes accepted by the API and the
// constraint checks run on them before any store mutation. Validators are
// pure: they never touch the store and report only the first violated rule,
// whose message is returned verbatim in the 400 response body.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"katalog/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their wire names, not the Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Error is a failed payload constraint.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// CategoryPayload is the request body for category create and update.
type CategoryPayload struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	ImageURL string `json:"imageUrl"`
}

// ProductPayload is the request body for product create and update.
// Category references and comments only need to be array-typed here;
// element-level correctness is the product service's concern.
type ProductPayload struct {
	Title       string           `json:"title" validate:"required,min=3,max=100"`
	Author      string           `json:"author" validate:"required,min=3,max=30"`
	Description string           `json:"description" validate:"required"`
	ImageURL    string           `json:"imageUrl"`
	VideoURL    string           `json:"videoUrl"`
	IsActive    bool             `json:"isActive"`
	CategoryIDs []string         `json:"category"`
	Comments    []models.Comment `json:"comments"`
}

// CommentPayload is the request body for adding or updating a comment.
// LikeCount is a pointer so an absent count can be defaulted to zero.
type CommentPayload struct {
	Text      string `json:"text"`
	LikeCount *int   `json:"likeCount"`
	Username  string `json:"username" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

// RegisterPayload is the request body for user registration.
type RegisterPayload struct {
	Name     string `json:"name" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,min=3,max=50,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// LoginPayload is the request body for login. Email and password carry the
// same format constraints as registration.
type LoginPayload struct {
	Email    string `json:"email" validate:"required,min=3,max=50,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// Category checks a category payload.
func Category(p CategoryPayload) error { return check(p) }

// Product checks a product payload.
func Product(p ProductPayload) error { return check(p) }

// Comment checks a comment payload.
func Comment(p CommentPayload) error { return check(p) }

// Register checks a registration payload.
func Register(p RegisterPayload) error { return check(p) }

// Login checks a login payload.
func Login(p LoginPayload) error { return check(p) }

func check(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return &Error{Message: err.Error()}
	}
	return &Error{Message: message(verrs[0])}
}

// message renders the first failing rule the way the API reports it.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
