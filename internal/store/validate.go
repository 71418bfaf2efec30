package store

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/zulandar/workboard/internal/models"
)

var (
	validate  = newValidator()
	rgbHexRe  = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	errNoUser = &ValidationError{Field: "user_id", Reason: "is required"}
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// rgbhex accepts #RRGGBB. The empty string passes so updates can clear a color.
	if err := v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || rgbHexRe.MatchString(s)
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	}); err != nil {
		panic(err)
	}
	return v
}

// check validates s against its validate tags and converts the first
// failure into a ValidationError.
func check(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Reason: reason(fe)}
	}
	return &ValidationError{Reason: err.Error()}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "priority":
		return "must be one of: low medium high urgent"
	case "status":
		return "must be one of: todo in_progress done"
	case "rgbhex":
		return "must be a hex color like #1A2B3C"
	}
	return "is invalid"
}

func checkUser(userID string) error {
	if userID == "" {
		return errNoUser
	}
	return nil
}

// CheckPage validates activity pagination. limit must be in [1,100] and
// offset must not be negative.
func CheckPage(limit, offset int) error {
	if limit < 1 || limit > MaxActivityLimit {
		return &ValidationError{Field: "limit", Reason: fmt.Sprintf("must be between 1 and %d", MaxActivityLimit)}
	}
	if offset < 0 {
		return &ValidationError{Field: "offset", Reason: "must be >= 0"}
	}
	return nil
}
