package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"skill-gap/internal/delivery/http/middleware"
	"skill-gap/internal/input"
	"skill-gap/internal/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// Validator checks request DTOs and reports field errors by their json names.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(f.Tag.Get("query"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

func (val *Validator) Struct(req any) error {
	err := val.v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	fields := make([]response.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, response.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(fe),
		})
	}
	return middleware.NewAppError(fiber.StatusUnprocessableEntity, response.MessageValidationFailed, fields, err)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// levelFieldError turns a ParseLevel failure into the same field error shape.
func levelFieldError(field string, err error) response.FieldError {
	fe := response.FieldError{Field: field, Message: err.Error()}
	var le *input.LevelError
	if errors.As(err, &le) {
		fe.Param = fmt.Sprintf("%d-%d", le.Min, le.Max)
		if errors.Is(err, input.ErrNotANumber) {
			fe.Rule = "number"
		} else {
			fe.Rule = "range"
		}
	}
	return fe
}
