package batches

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError is returned by stores that reject a record before writing it.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var recordValidator = newRecordValidator()

func newRecordValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRecord checks the fields a store needs before persisting a record.
func ValidateRecord(record Record) error {
	err := recordValidator.Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		return ValidationError{Field: first.Field(), Message: describeTag(first.Tag(), first.Param())}
	}
	return fmt.Errorf("validate batch: %w", err)
}

func describeTag(tag, param string) string {
	switch tag {
	case "gt":
		return "must be greater than " + param
	case "required":
		return "is required"
	default:
		return "failed " + tag + " check"
	}
}
