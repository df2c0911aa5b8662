package formdata

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/validator"
)

// Field describes one company-defined form field.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	Position int
}

// Schema is the ordered list of fields a company attaches to attendance records.
type Schema []Field

func (s Schema) field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Decode converts a raw JSON object into typed values. Keys missing from the schema
// are kept with a guessed kind; values that cannot be converted are reported.
func Decode(raw map[string]any, schema Schema) (Values, error) {
	values := make(Values, len(raw))
	var errs validator.ValidationErrors

	for key, item := range raw {
		f, ok := schema.field(key)
		if !ok {
			values[key] = guess(item)
			continue
		}
		if item == nil {
			continue
		}
		v, err := coerce(item, f.Kind)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   key,
				Message: err.Error(),
			})
			continue
		}
		values[key] = v
	}

	if len(errs) > 0 {
		return values, errs
	}
	return values, nil
}

// DecodeJSON is Decode over a JSONB column. Empty input yields an empty bag.
func DecodeJSON(data []byte, schema Schema) (Values, error) {
	if len(data) == 0 || string(data) == "null" {
		return Values{}, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Values{}, fmt.Errorf("failed to unmarshal form_data: %w", err)
	}
	return Decode(raw, schema)
}

// Validate checks required fields and kinds against the schema.
func (s Schema) Validate(values Values) error {
	var errs validator.ValidationErrors

	for _, f := range s {
		v, ok := values[f.Name]
		if !ok {
			if f.Required {
				errs = append(errs, validator.ValidationError{
					Field:   f.Name,
					Message: fmt.Sprintf("%s is required", f.Name),
				})
			}
			continue
		}
		if v.Kind != f.Kind {
			errs = append(errs, validator.ValidationError{
				Field:   f.Name,
				Message: fmt.Sprintf("%s must be of type %s", f.Name, f.Kind),
			})
			continue
		}
		if f.Required && v.Kind == KindString && validator.IsEmpty(v.String) {
			errs = append(errs, validator.ValidationError{
				Field:   f.Name,
				Message: fmt.Sprintf("%s is required", f.Name),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SchemaRepository loads the company form definition.
type SchemaRepository interface {
	GetSchema(ctx context.Context, companyID string) (Schema, error)
}
