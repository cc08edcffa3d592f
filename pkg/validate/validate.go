// Package validate checks raw JSON documents against a target type, either
// through a compiled JSON Schema that reports every violation at once, or by
// decoding directly and stopping at the first structural mismatch.
package validate

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"

	"github.com/spector-project/spector/pkg/types"
)

// Validator validates a raw document and, when it is structurally sound,
// returns it decoded as T. Implementations hold no per-document state, so a
// single validator may serve concurrent calls.
type Validator[T any] interface {
	Validate(doc []byte) (T, error)
}

// Violation is one schema defect: the path of the offending subtree within
// the document, a human-readable message, and the offending value.
type Violation struct {
	Path    string `json:"path"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

// AggregateError collects every violation found in one validation pass, so
// a caller fixing a large document sees all problems at once instead of one
// per attempt.
type AggregateError struct {
	Violations []Violation
}

func (e *AggregateError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = fmt.Sprintf("%s: %s", v.Path, v.Message)
	}
	return fmt.Sprintf("document has %d schema violation(s):\n%s", len(e.Violations), strings.Join(lines, "\n"))
}

// SchemaValidator validates against a JSON Schema compiled once at
// construction, then decodes to T. The compiled schema is immutable, so
// Validate is safe to call concurrently on one instance.
type SchemaValidator[T any] struct {
	schema *gojsonschema.Schema
}

// NewSchemaValidator compiles schemaDoc. Compilation cost is paid once here
// and amortized across every Validate call.
func NewSchemaValidator[T any](schemaDoc []byte) (*SchemaValidator[T], error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaDoc))
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &SchemaValidator[T]{schema: schema}, nil
}

// Validate checks doc against the compiled schema, collecting every
// violation into one *AggregateError. Only a structurally valid document is
// decoded to T; a decode failure at that stage is returned as a
// *types.DecodeError so callers can tell it apart from schema violations.
func (v *SchemaValidator[T]) Validate(doc []byte) (T, error) {
	var out T
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return out, &types.ParseError{Err: err}
	}
	if !result.Valid() {
		agg := &AggregateError{Violations: make([]Violation, 0, len(result.Errors()))}
		for _, re := range result.Errors() {
			agg.Violations = append(agg.Violations, Violation{
				Path:    re.Field(),
				Message: re.Description(),
				Value:   re.Value(),
			})
		}
		return out, agg
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, &types.DecodeError{Err: err}
	}
	return out, nil
}

// GenericValidator decodes doc directly into T with no schema pass, failing
// on the first structural mismatch. It exists because schema compilation has
// a fixed cost that is wasted when only type-shape checking is needed.
type GenericValidator[T any] struct{}

// NewGenericValidator returns a ready-to-use generic validator.
func NewGenericValidator[T any]() GenericValidator[T] {
	return GenericValidator[T]{}
}

func (GenericValidator[T]) Validate(doc []byte) (T, error) {
	var out T
	if !json.Valid(doc) {
		var probe any
		err := json.Unmarshal(doc, &probe)
		return out, &types.ParseError{Err: err}
	}
	if err := json.Unmarshal(doc, &out); err != nil {
		return out, err
	}
	return out, nil
}

var (
	_ Validator[any] = (*SchemaValidator[any])(nil)
	_ Validator[any] = GenericValidator[any]{}
)
