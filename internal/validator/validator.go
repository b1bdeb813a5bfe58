package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/critiq-labs/review-service/internal/models"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Validator wraps struct tag validation with the business rules the tags
// cannot express.
type Validator struct {
	validate *validator.Validate
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := v.RegisterValidation("slug", validateSlug); err != nil {
		return nil, fmt.Errorf("failed to register slug validation: %w", err)
	}
	if err := v.RegisterValidation("username", validateUsername); err != nil {
		return nil, fmt.Errorf("failed to register username validation: %w", err)
	}
	if err := v.RegisterValidation("role", validateRole); err != nil {
		return nil, fmt.Errorf("failed to register role validation: %w", err)
	}

	return &Validator{validate: v}, nil
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}

func validateRole(fl validator.FieldLevel) bool {
	return models.ValidRole(models.UserRole(fl.Field().String()))
}

// ValidateStruct runs tag validation and converts failures into field-level
// validation errors.
func (v *Validator) ValidateStruct(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	var errs ValidationErrors
	if ok := errors.As(err, &invalid); !ok {
		errs.Add("request", "invalid request payload", nil, "struct")
		return errs
	}

	for _, fe := range invalid {
		errs.Add(fieldName(fe), messageFor(fe), fe.Value(), fe.Tag())
	}
	return errs
}

func fieldName(fe validator.FieldError) string {
	// drop the struct name prefix, keep nested path
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	name := fe.Field()
	if len(parts) == 2 {
		name = parts[1]
	}
	return strings.ToLower(name)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "slug":
		return "must contain only letters, numbers, hyphens and underscores"
	case "username":
		return "must contain only letters, numbers and @/./+/-/_ characters"
	case "role":
		return "must be one of: user, moderator, admin"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation on rule %q", fe.Tag())
	}
}

// ValidateYear enforces 0 < year <= current calendar year.
func (v *Validator) ValidateYear(year int) ValidationErrors {
	var errs ValidationErrors
	current := time.Now().Year()
	if year <= 0 {
		errs.Add("year", "year must be a positive number", year, "year_range")
	} else if year > current {
		errs.Add("year", fmt.Sprintf("year must not be after %d", current), year, "year_range")
	}
	return errs
}

// ValidateUsernameValue enforces the reserved name rule on top of the
// charset tag.
func (v *Validator) ValidateUsernameValue(username string) ValidationErrors {
	var errs ValidationErrors
	if username == models.ReservedUsername {
		errs.Add("username", fmt.Sprintf("username %q is reserved", models.ReservedUsername), username, "reserved")
	}
	return errs
}
