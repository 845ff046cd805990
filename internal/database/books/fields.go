package books

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Fields carries the writable attributes of a book. Year is a pointer so that
// a missing year can be told apart from year 0.
type Fields struct {
	Title    string `json:"title" validate:"required"`
	Year     *int   `json:"year" validate:"required"`
	Category string `json:"category" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})
	return v
}

// Validate checks the fields against the store constraints and returns the
// first violation as a *ValidationError.
func (f Fields) Validate() error {
	f.Title = strings.TrimSpace(f.Title)
	f.Category = strings.TrimSpace(f.Category)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		rule := fe.Tag()
		// rating 0 is the zero value, so "required" fires before "min"
		if fe.Field() == "rating" {
			rule = "range"
		}
		return &ValidationError{Field: fe.Field(), Rule: rule}
	}
	return &ValidationError{Field: "book", Rule: err.Error()}
}
