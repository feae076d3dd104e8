package services

import (
	"errors"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	minNoteChars        = 3
	maxDiscountCodeLen  = 32
	tagNotes            = "notes"
	tagDiscountCode     = "discountcode"
	fieldNameTagDefault = "-"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == fieldNameTagDefault {
			return f.Name
		}
		return name
	})

	_ = v.RegisterValidation(tagNotes, func(fl validator.FieldLevel) bool {
		return validNotes(fl.Field().String())
	})
	_ = v.RegisterValidation(tagDiscountCode, func(fl validator.FieldLevel) bool {
		return validDiscountCode(fl.Field().String())
	})
	return v
}

// validNotes requires at least minNoteChars non-whitespace characters.
func validNotes(s string) bool {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= minNoteChars
}

func validDiscountCode(s string) bool {
	if utf8.RuneCountInString(s) > maxDiscountCodeLen {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// validateStruct runs the validator and converts its report into a
// *ValidationError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min", "gt":
		return "must not be empty"
	case "gte":
		return "must be " + fe.Param() + " or more"
	case tagNotes:
		return "must contain at least 3 non-whitespace characters"
	case tagDiscountCode:
		return "must be at most 32 printable characters without spaces"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
