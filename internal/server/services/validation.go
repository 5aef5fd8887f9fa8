package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/go-playground/validator/v10"
)

type signupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type todoInput struct {
	Title       string `json:"title" validate:"min=3,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

// inputValidator runs struct rules and reports the first violation as a
// *common.ValidationError keyed by the json field name.
type inputValidator struct {
	v *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &inputValidator{v: v}
}

func (iv *inputValidator) check(in any) error {
	err := iv.v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return common.NewValidationError(fe.Field(), "is required")
	case "email":
		return common.NewValidationError(fe.Field(), "must be a valid email address")
	case "min":
		return common.NewValidationError(fe.Field(), "must be at least %s characters", fe.Param())
	case "max":
		return common.NewValidationError(fe.Field(), "must be at most %s characters", fe.Param())
	default:
		return common.NewValidationError(fe.Field(), "is invalid")
	}
}
