package contract

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/recordlens/schema"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed record.schema.json
var recordSchema string

// recordSchemaName identifies the embedded schema in load errors.
const recordSchemaName = "record.schema.json"

// RecordValidationError lists every problem found in a student record.
type RecordValidationError struct {
	Errors []FieldError
}

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *RecordValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// RecordValidator checks records at the input boundary. The zero value is not usable.
type RecordValidator struct {
	schema   *gojsonschema.Schema
	validate *validator.Validate
}

// NewRecordValidator compiles the embedded record schema.
func NewRecordValidator() (*RecordValidator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(recordSchema))
	if err != nil {
		return nil, &SchemaLoadError{Path: recordSchemaName, Message: "schema compilation failed", Cause: err}
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RecordValidator{schema: compiled, validate: v}, nil
}

// Parse validates raw JSON against the record schema, decodes it with tag
// normalization, then checks value ranges. Out-of-range input is rejected
// here so the scoring engine never sees it.
func (rv *RecordValidator) Parse(data []byte) (schema.StudentRecord, error) {
	var rec schema.StudentRecord

	result, err := rv.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return rec, &RecordValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if !result.Valid() {
		verr := &RecordValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			verr.Errors = append(verr.Errors, FieldError{Field: field, Message: desc.Description()})
		}
		return rec, verr
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&rec); err != nil {
		return rec, &RecordValidationError{Errors: []FieldError{{Field: "(decode)", Message: err.Error()}}}
	}

	if err := rv.validate.Struct(rec); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return rec, err
		}
		verr := &RecordValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
		for _, fe := range fieldErrs {
			verr.Errors = append(verr.Errors, FieldError{Field: fieldPath(fe.Namespace()), Message: ruleMessage(fe)})
		}
		return rec, verr
	}
	return rec, nil
}

// LoadRecord reads and validates a record file.
func (rv *RecordValidator) LoadRecord(path string) (schema.StudentRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.StudentRecord{}, fmt.Errorf("failed to read record %s: %w", path, err)
	}
	rec, err := rv.Parse(data)
	if err != nil {
		return rec, fmt.Errorf("invalid record %s: %w", path, err)
	}
	return rec, nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s (received %v)", fe.Param(), fe.Value())
	case "max":
		return fmt.Sprintf("must be at most %s (received %v)", fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("must not be negative (received %v)", valueOf(fe.Value()))
	default:
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	}
}

func valueOf(v any) any {
	if p, ok := v.(*float64); ok && p != nil {
		return *p
	}
	return v
}
