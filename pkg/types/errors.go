package types

import "fmt"

// ParseError reports input that is not well-formed JSON. Nothing in the
// document can be trusted past this point, so it is always terminal.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("malformed document: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError reports a structural defect in the statement envelope itself:
// a missing or mismatched required field, an empty subject list, or an
// unrecognized digest algorithm. Envelope defects fail fast because the rest
// of the document is meaningless without a sound envelope.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DecodeError reports a predicate payload that does not match the shape its
// declared predicate type implies. It is surfaced verbatim by dispatch and
// never downgraded to the unknown-type fallback: a document that claims a
// known type but fails to match it is a real defect.
type DecodeError struct {
	PredicateType string
	Err           error
}

func (e *DecodeError) Error() string {
	if e.PredicateType == "" {
		return fmt.Sprintf("decoding document: %v", e.Err)
	}
	return fmt.Sprintf("decoding predicate %q: %v", e.PredicateType, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
