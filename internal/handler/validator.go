package handler

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/NotionPet_Go/internal/domain"
)

// enumTag is a custom validation tag accepting a fixed set of strings
type enumTag struct {
	allowed []string
	message string
}

var enumTags = map[string]enumTag{
	"direction": {
		allowed: []string{string(domain.DirectionUp), string(domain.DirectionDown)},
		message: "Must be up or down",
	},
	"proptype": {
		allowed: []string{domain.PropertyTypeStatus, domain.PropertyTypeSelect},
		message: "Must be status or select",
	},
	"optionaction": {
		allowed: []string{domain.OptionActionAdd, domain.OptionActionUpdate, domain.OptionActionDelete},
		message: "Must be ADD_OPTION, UPDATE_OPTION or DELETE_OPTION",
	},
}

// Validator checks request bodies against their validate tags
type Validator struct {
	validate *validator.Validate
}

var sharedValidator = sync.OnceValue(newValidator)

// GetValidator returns the process-wide validator
func GetValidator() *Validator {
	return sharedValidator()
}

func newValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	for tag, enum := range enumTags {
		allowed := enum.allowed
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return slices.Contains(allowed, fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("register validation %q: %v", tag, err))
		}
	}
	return &Validator{validate: v}
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field to a readable message
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": "Invalid request format"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return fields
}

func describe(fe validator.FieldError) string {
	if enum, ok := enumTags[fe.Tag()]; ok {
		return enum.message
	}
	switch fe.Tag() {
	case "required", "required_unless", "required_if":
		return "This field is required"
	case "max":
		return "Must be at most " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param()
	case "dive", "unique":
		return "Contains invalid or duplicate entries"
	default:
		return "Invalid value"
	}
}
