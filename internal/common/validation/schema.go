package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ReservationSchema is the contract between the dialog code hook, which
// enqueues reservation requests, and the recommendation worker.
const ReservationSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "ReservationRequest",
  "type": "object",
  "required": ["location", "cuisine", "date", "time", "numberOfPeople", "emailAddress"],
  "properties": {
    "location":       {"type": "string", "minLength": 1},
    "cuisine":        {"type": "string", "minLength": 1},
    "date":           {"type": "string", "minLength": 1},
    "time":           {"type": "string", "minLength": 1},
    "numberOfPeople": {"type": "string", "pattern": "^[0-9]+$"},
    "emailAddress":   {"type": "string", "minLength": 1}
  }
}`

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator checks JSON documents against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schemaJSON.
func NewValidator(schemaJSON string) (*Validator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// NewReservationValidator compiles ReservationSchema.
func NewReservationValidator() (*Validator, error) {
	return NewValidator(ReservationSchema)
}

// ValidateJSON validates a raw document. A document that is not JSON at all
// is reported as an error rather than a failed result.
func (v *Validator) ValidateJSON(document string) (*ValidationResult, error) {
	res, err := v.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return toResult(res), nil
}

// ValidateValue validates an in-memory value (marshalled by gojsonschema).
func (v *Validator) ValidateValue(value interface{}) (*ValidationResult, error) {
	res, err := v.schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return nil, fmt.Errorf("load value: %w", err)
	}
	return toResult(res), nil
}

func toResult(res *gojsonschema.Result) *ValidationResult {
	out := &ValidationResult{Valid: res.Valid()}
	for _, e := range res.Errors() {
		field := e.Field()
		if field == "(root)" {
			if missing, ok := e.Details()["property"].(string); ok {
				field = missing
			}
		}
		out.Errors = append(out.Errors, ValidationError{
			Field:   field,
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return out
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return messages
}
