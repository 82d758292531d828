package validator

import (
	"block-notes/models"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("blocktype", validateBlockType)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	return v.convert(v.validate.Struct(i), "")
}

// ValidateVar validates a single value, such as a path parameter, against tag
func (v *Validator) ValidateVar(field string, value interface{}, tag string) error {
	return v.convert(v.validate.Var(value, tag), field)
}

// convert maps go-playground errors to our custom format. field overrides
// the reported field name, which is empty for Var validations.
func (v *Validator) convert(err error, field string) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var validationErrs ValidationErrors
	for _, fe := range fieldErrs {
		name := fe.Field()
		if field != "" {
			name = field
		}
		validationErrs = append(validationErrs, ValidationError{
			Field:   name,
			Message: msgForTag(name, fe),
			Tag:     fe.Tag(),
			Value:   fmt.Sprintf("%v", fe.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "blocktype":
		return fmt.Sprintf("%s must be one of: %s", field, blockTypeList())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

// validateBlockType accepts only the closed set of block types
func validateBlockType(fl validator.FieldLevel) bool {
	return models.BlockType(fl.Field().String()).Valid()
}

func blockTypeList() string {
	names := make([]string, len(models.BlockTypes))
	for i, t := range models.BlockTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
