package types

import (
	"errors"
	"time"

	"github.com/spector-project/spector/pkg/codec"
)

// SLSAProvenanceV1 is the SLSA Provenance v1 predicate
// (https://slsa.dev/provenance/v1).
type SLSAProvenanceV1 struct {
	BuildDefinition BuildDefinition `json:"buildDefinition"`
	RunDetails      RunDetails      `json:"runDetails"`
}

func (*SLSAProvenanceV1) isPredicate() {}

// BuildDefinition describes all inputs to the build.
type BuildDefinition struct {
	BuildType            codec.URL            `json:"buildType"`
	ExternalParameters   map[string]any       `json:"externalParameters"`
	InternalParameters   map[string]any       `json:"internalParameters,omitempty"`
	ResolvedDependencies []ResourceDescriptor `json:"resolvedDependencies,omitempty"`
}

// RunDetails describes the build platform's execution of the build.
type RunDetails struct {
	Builder    Builder              `json:"builder"`
	Metadata   *BuildMetadata       `json:"metadata,omitempty"`
	Byproducts []ResourceDescriptor `json:"byproducts,omitempty"`
}

// Builder identifies the build platform that produced the provenance.
type Builder struct {
	ID                  codec.URL            `json:"id"`
	BuilderDependencies []ResourceDescriptor `json:"builderDependencies,omitempty"`
	Version             string               `json:"version,omitempty"`
}

// BuildMetadata carries metadata about one execution of the build.
type BuildMetadata struct {
	InvocationID string     `json:"invocationId,omitempty"`
	StartedOn    *time.Time `json:"startedOn,omitempty"`
	FinishedOn   *time.Time `json:"finishedOn,omitempty"`
}

// checkRequired enforces field presence that JSON decoding alone cannot.
func (p *SLSAProvenanceV1) checkRequired() error {
	switch {
	case p.BuildDefinition.BuildType.IsZero():
		return errors.New("missing required field buildDefinition.buildType")
	case p.BuildDefinition.ExternalParameters == nil:
		return errors.New("missing required field buildDefinition.externalParameters")
	case p.RunDetails.Builder.ID.IsZero():
		return errors.New("missing required field runDetails.builder.id")
	}
	return nil
}
