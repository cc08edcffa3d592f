package types

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/spector-project/spector/pkg/codec"
)

// StatementTypeV1 is the required value of the envelope's _type marker.
const StatementTypeV1 = "https://in-toto.io/Statement/v1"

// Statement is an in-toto v1 attestation statement. Statements are built
// only by the decode path, so the Predicate variant is always consistent
// with the PredicateType identifier.
type Statement struct {
	Type          codec.URL `json:"_type"`
	Subject       []Subject `json:"subject"`
	PredicateType codec.URL `json:"predicateType"`
	Predicate     Predicate `json:"predicate"`
}

// statementWire is the intermediate shape used to pull the predicate-type
// identifier out before the payload is dispatched.
type statementWire struct {
	Type          *codec.URL      `json:"_type"`
	Subject       []Subject       `json:"subject"`
	PredicateType *codec.URL      `json:"predicateType"`
	Predicate     json.RawMessage `json:"predicate"`
}

// DecodeStatement decodes data into a Statement, dispatching the predicate
// payload through r. Envelope defects fail fast on the first problem found.
// Field-level codecs run as part of the envelope parse, so a codec or digest
// defect anywhere in the document can surface before the _type and subject
// checks below.
func (r *Registry) DecodeStatement(data []byte) (*Statement, error) {
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, &ParseError{Err: err}
	}
	if trimmed := bytes.TrimLeft(data, " \t\r\n"); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &SchemaError{Message: "document is not a JSON object"}
	}

	var wire statementWire
	if err := json.Unmarshal(data, &wire); err != nil {
		// Field-level codecs surface their own error kinds here, for
		// example a FormatError from a malformed predicateType URL or a
		// SchemaError from an unrecognized digest algorithm.
		return nil, err
	}

	if wire.Type == nil || wire.Type.String() != StatementTypeV1 {
		return nil, &SchemaError{Field: "_type", Message: "missing or invalid _type, expected " + StatementTypeV1}
	}
	if len(wire.Subject) == 0 {
		return nil, &SchemaError{Field: "subject", Message: "must be a non-empty array"}
	}
	for _, s := range wire.Subject {
		if len(s.Digest) == 0 {
			return nil, &SchemaError{Field: "subject", Message: "subject " + s.Name + " has no digest"}
		}
	}
	if wire.PredicateType == nil {
		return nil, &SchemaError{Field: "predicateType", Message: "missing required field"}
	}
	if wire.Predicate == nil {
		return nil, &SchemaError{Field: "predicate", Message: "missing required field"}
	}

	predicate, err := r.Dispatch(wire.PredicateType.String(), wire.Predicate)
	if err != nil {
		return nil, err
	}

	return &Statement{
		Type:          *wire.Type,
		Subject:       wire.Subject,
		PredicateType: *wire.PredicateType,
		Predicate:     predicate,
	}, nil
}

// DecodeStatement decodes data using the default registry.
func DecodeStatement(data []byte) (*Statement, error) {
	return defaultRegistry.DecodeStatement(data)
}

// UnmarshalJSON decodes through the default registry so statements embed
// naturally in larger documents.
func (s *Statement) UnmarshalJSON(data []byte) error {
	decoded, err := defaultRegistry.DecodeStatement(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

func (s Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type          codec.URL `json:"_type"`
		Subject       []Subject `json:"subject"`
		PredicateType codec.URL `json:"predicateType"`
		Predicate     Predicate `json:"predicate"`
	}{s.Type, s.Subject, s.PredicateType, s.Predicate})
}
