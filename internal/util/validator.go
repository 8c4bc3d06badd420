package util

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ApiError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func msgForTag(fe validator.FieldError, field string) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%v is required", field)
	case "email":
		return "Invalid email"
	case "numeric":
		return fmt.Sprintf("%v must be numeric", field)
	case "min", "cmin":
		return fmt.Sprintf("%v must be at least %v characters", field, fe.Param())
	case "max", "cmax":
		return fmt.Sprintf("%v must be at most %v characters", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%v must be greater than or equal to %v", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%v must be less than or equal to %v", field, fe.Param())
	case "strNotEmpty":
		return fmt.Sprintf("%v must not be blank", field)
	case "oneof":
		return fmt.Sprintf("%v must be one of [%v]", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%v must be after %v", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%v must be a valid id", field)
	case "dive":
		return fmt.Sprintf("%v contains an invalid item", field)
	}
	return fe.Error()
}

// GenerateErrorMessages turns err into the errors array of a failed response.
// Validation errors yield one entry per field. Optional params: a
// map[string]string renaming fields, or a string naming the field for
// non validation errors.
func GenerateErrorMessages(err error, optionalParams ...interface{}) []ApiError {
	var rename map[string]string
	fieldName := "Unknown"

	for _, param := range optionalParams {
		switch v := param.(type) {
		case map[string]string:
			rename = v
		case string:
			if v != "" {
				fieldName = v
			}
		}
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make([]ApiError, len(ve))
		for i, fe := range ve {
			field := fe.Field()
			if renamed, ok := rename[field]; ok {
				field = renamed
			}
			out[i] = ApiError{Field: field, Message: msgForTag(fe, field)}
		}
		return out
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []ApiError{{Field: "Unknown", Message: "Record not found"}}
	}
	return []ApiError{{Field: fieldName, Message: err.Error()}}
}

// RegisterCustomValidations registers strNotEmpty, cmin and cmax on v and
// reports fields by their json name.
func RegisterCustomValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonFieldName)

	for tag, fn := range map[string]validator.Func{
		"strNotEmpty": StrNotEmpty,
		"cmin":        CustomMin,
		"cmax":        CustomMax,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// Empty result falls back to the Go field name.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// Usage: `binding:"strNotEmpty"`
func StrNotEmpty(fl validator.FieldLevel) bool {
	n, ok := trimmedLen(fl)
	return ok && n > 0
}

// Like min, but counts characters after trimming spaces.
// Usage: `binding:"cmin=3"`
func CustomMin(fl validator.FieldLevel) bool {
	n, ok := trimmedLen(fl)
	limit, err := strconv.Atoi(fl.Param())
	return ok && err == nil && n >= limit
}

// Usage: `binding:"cmax=300"`
func CustomMax(fl validator.FieldLevel) bool {
	n, ok := trimmedLen(fl)
	limit, err := strconv.Atoi(fl.Param())
	return ok && err == nil && n <= limit
}

func trimmedLen(fl validator.FieldLevel) (int, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return 0, false
	}
	return utf8.RuneCountInString(strings.TrimSpace(field.String())), true
}
