package types

import (
	json "github.com/goccy/go-json"
)

// Predicate type identifiers for the predicate kinds the default registry
// knows. Any other identifier decodes to *Other.
const (
	PredicateSLSAProvenanceV1  = "https://slsa.dev/provenance/v1"
	PredicateSLSAProvenanceV02 = "https://slsa.dev/provenance/v0.2"
	PredicateSCAIReportV02     = "https://in-toto.io/attestation/scai/attribute-report/v0.2"
)

// Predicate is the typed payload of a statement. Exactly one concrete
// variant backs each value; the variant is selected once, by the
// predicate-type identifier, at decode time. *Other is a first-class member
// of the set, so type switches over Predicate stay total.
type Predicate interface {
	isPredicate()
}

// Other holds the payload of a predicate whose type identifier is not in
// the registry. The value is the decoded JSON, preserved unmodified.
type Other struct {
	Value any
}

func (*Other) isPredicate() {}

func (o *Other) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

// DecoderFunc decodes a raw predicate payload into one concrete Predicate
// variant, returning a *DecodeError when the payload does not match the
// variant's shape.
type DecoderFunc func(raw json.RawMessage) (Predicate, error)

// Registry maps predicate-type identifiers to decoders. Adding a new known
// predicate kind means registering one entry here; the statement envelope
// and the validators never change.
type Registry struct {
	decoders map[string]DecoderFunc
}

// NewRegistry returns a registry preloaded with the known predicate kinds.
func NewRegistry() *Registry {
	r := &Registry{decoders: make(map[string]DecoderFunc)}
	r.Register(PredicateSLSAProvenanceV1, decodeSLSAProvenanceV1)
	r.Register(PredicateSLSAProvenanceV02, decodeSLSAProvenanceV02)
	r.Register(PredicateSCAIReportV02, decodeSCAIReportV02)
	return r
}

// Register makes typeURL a known predicate kind. Registering an identifier
// twice replaces the earlier decoder.
func (r *Registry) Register(typeURL string, fn DecoderFunc) {
	r.decoders[typeURL] = fn
}

// Known reports whether typeURL has a registered decoder.
func (r *Registry) Known(typeURL string) bool {
	_, ok := r.decoders[typeURL]
	return ok
}

// Dispatch decodes raw according to typeURL. A known identifier uses its
// registered decoder and surfaces that decoder's error verbatim; a document
// claiming a known type but failing its shape is a defect, never an
// unknown-type case. An unknown identifier decodes to *Other, which accepts
// any well-formed JSON value.
func (r *Registry) Dispatch(typeURL string, raw json.RawMessage) (Predicate, error) {
	if dec, ok := r.decoders[typeURL]; ok {
		return dec(raw)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, &DecodeError{PredicateType: typeURL, Err: err}
	}
	return &Other{Value: v}, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the registry used by Statement.UnmarshalJSON.
func DefaultRegistry() *Registry { return defaultRegistry }

func decodeSLSAProvenanceV1(raw json.RawMessage) (Predicate, error) {
	var p SLSAProvenanceV1
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSLSAProvenanceV1, Err: err}
	}
	if err := p.checkRequired(); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSLSAProvenanceV1, Err: err}
	}
	return &p, nil
}

func decodeSLSAProvenanceV02(raw json.RawMessage) (Predicate, error) {
	var p SLSAProvenanceV02
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSLSAProvenanceV02, Err: err}
	}
	if err := p.checkRequired(); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSLSAProvenanceV02, Err: err}
	}
	return &p, nil
}

func decodeSCAIReportV02(raw json.RawMessage) (Predicate, error) {
	var p SCAIReportV02
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSCAIReportV02, Err: err}
	}
	if err := p.checkRequired(); err != nil {
		return nil, &DecodeError{PredicateType: PredicateSCAIReportV02, Err: err}
	}
	return &p, nil
}
