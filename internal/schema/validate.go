// Package schema validates raw résumé documents against the embedded JSON
// Schema before they are decoded into a ResumeRecord.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"resumeaudit/internal/types"
)

//go:embed resume.schema.json
var resumeSchema string

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(resumeSchema))
})

// ValidationError lists every field that failed validation
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single failure at a field path
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// Fields returns the failing field paths in order
func (ve *ValidationError) Fields() []string {
	fields := make([]string, 0, len(ve.Errors))
	for _, e := range ve.Errors {
		fields = append(fields, e.Field)
	}
	return fields
}

// SchemaLoadError reports a problem with the embedded schema or a document
// that is not JSON at all.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validate checks a raw résumé document against the schema
func Validate(document []byte) error {
	s, err := loadSchema()
	if err != nil {
		return &SchemaLoadError{Message: "failed to load resume schema", Cause: err}
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &SchemaLoadError{Message: "failed to read resume document", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// DecodeResume validates document and decodes it
func DecodeResume(document []byte) (types.ResumeRecord, error) {
	var r types.ResumeRecord
	if err := Validate(document); err != nil {
		return r, err
	}
	if err := json.Unmarshal(document, &r); err != nil {
		return r, fmt.Errorf("failed to decode resume: %w", err)
	}
	return r, nil
}
