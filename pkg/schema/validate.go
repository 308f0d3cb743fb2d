package schema

import (
	"sort"

	"github.com/aretw0/penrose/pkg/domain"
)

// Schema is a map of field names to their expected types.
// Example: {"depth": IntAtLeast(2), "step_length": FloatAtLeast(0)}
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Fields are checked in name order so messages are stable.
// Returns an error with all validation failures found.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var errs []error
	for _, fieldName := range fields {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
				Err:    fieldType.Validate(nil),
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
				Err:    err,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// RequestSchema describes the public generator boundary.
func RequestSchema() Schema {
	return Schema{
		"depth":       WithSentinel(IntAtLeast(domain.MinDepth), domain.ErrInvalidDepth),
		"step_length": WithSentinel(FloatAtLeast(0), domain.ErrInvalidStepLength),
	}
}

// ValidateRequest validates raw request parameters against RequestSchema.
func ValidateRequest(data map[string]any) error {
	return Validate(RequestSchema(), data)
}

// DecodeRequest validates raw parameters and converts them into a domain.Request.
// Numbers may arrive as JSON floats or strings.
func DecodeRequest(data map[string]any) (domain.Request, error) {
	if err := ValidateRequest(data); err != nil {
		return domain.Request{}, err
	}
	depth, _ := toInt(data["depth"])
	step, _ := toFloat(data["step_length"])
	return domain.Request{Depth: depth, StepLength: step}, nil
}
