package services

import (
	"errors"
	"fmt"
	"fooddonation-backend/models"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// A phone number only needs to contain a run of ten digits somewhere
var tenDigits = regexp.MustCompile(`\d{10}`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("tendigits", func(fl validator.FieldLevel) bool {
		return tenDigits.MatchString(fl.Field().String())
	})
	return v
}

// validateEntity runs the struct tags and returns the first failure as a *models.ValidationError
func validateEntity(entity interface{}) error {
	err := validate.Struct(entity)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}
	return toValidationError(verrs[0])
}

func toValidationError(fe validator.FieldError) *models.ValidationError {
	field := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return models.NewValidationError(field, models.ValidationRequired, "")
	case "oneof":
		return models.NewValidationError(field, models.ValidationEnum,
			fmt.Sprintf("`%v` is not a valid value for %s (allowed: %s)", fe.Value(), field, strings.ReplaceAll(fe.Param(), " ", ", ")))
	case "email":
		return models.NewValidationError(field, models.ValidationEmail, "")
	case "tendigits":
		return models.NewValidationError(field, models.ValidationPhone, "Please provide a valid phone number")
	case "gte", "min":
		return models.NewValidationError(field, models.ValidationMin, "")
	default:
		return models.NewValidationError(field, models.ValidationFormat, "")
	}
}

// fieldPath drops the root struct name, "Donation.foodItems[0].unit" -> "foodItems[0].unit"
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
