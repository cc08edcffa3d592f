// Package schema generates JSON Schema documents from the attestation
// models by reflection. Generation is a pure function from a type to a
// schema document; nothing here reads or writes files.
package schema

import (
	"fmt"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/spector-project/spector/pkg/codec"
	"github.com/spector-project/spector/pkg/types"
)

func newReflector() *jsonschema.Reflector {
	r := &jsonschema.Reflector{}
	r.Mapper = func(t reflect.Type) *jsonschema.Schema {
		switch t {
		case reflect.TypeOf(codec.URL{}):
			return &jsonschema.Schema{Type: "string", Format: "uri"}
		case reflect.TypeOf(codec.Content(nil)):
			return &jsonschema.Schema{Type: "string", ContentEncoding: "base64"}
		case reflect.TypeOf((*types.Predicate)(nil)).Elem():
			// The predicate's shape depends on the predicateType
			// identifier; at the envelope level it is any object.
			return &jsonschema.Schema{Type: "object"}
		}
		return nil
	}
	return r
}

// For reflects v into a JSON Schema document. Fields without omitempty are
// required; URL- and byte-typed fields carry format hints.
func For(v any) ([]byte, error) {
	s := newReflector().Reflect(v)
	doc, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	return doc, nil
}

// ForStatement returns the schema of the in-toto v1 statement envelope.
func ForStatement() ([]byte, error) {
	return For(&types.Statement{})
}

// ForPredicate returns the schema for a known predicate-type identifier.
func ForPredicate(typeURL string) ([]byte, error) {
	switch typeURL {
	case types.PredicateSLSAProvenanceV1:
		return For(&types.SLSAProvenanceV1{})
	case types.PredicateSLSAProvenanceV02:
		return For(&types.SLSAProvenanceV02{})
	case types.PredicateSCAIReportV02:
		return For(&types.SCAIReportV02{})
	}
	return nil, fmt.Errorf("no schema for predicate type %q", typeURL)
}
