package types

import (
	"errors"
	"time"

	"github.com/spector-project/spector/pkg/codec"
)

// SLSAProvenanceV02 is the SLSA Provenance v0.2 predicate
// (https://slsa.dev/provenance/v0.2). Field names and optionality follow the
// v0.2 specification; they intentionally differ from v1.
type SLSAProvenanceV02 struct {
	Builder     BuilderV02           `json:"builder"`
	BuildType   codec.URL            `json:"buildType"`
	Invocation  *Invocation          `json:"invocation,omitempty"`
	BuildConfig map[string]any       `json:"buildConfig,omitempty"`
	Metadata    *BuildMetadataV02    `json:"metadata,omitempty"`
	Materials   []MaterialDescriptor `json:"materials,omitempty"`
}

func (*SLSAProvenanceV02) isPredicate() {}

// BuilderV02 identifies the entity that executed the build.
type BuilderV02 struct {
	ID codec.URL `json:"id"`
}

// Invocation identifies the event that kicked off the build.
type Invocation struct {
	ConfigSource *ConfigSource  `json:"configSource,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	Environment  map[string]any `json:"environment,omitempty"`
}

// ConfigSource points at the config that kicked off the build.
type ConfigSource struct {
	URI        *codec.URL        `json:"uri,omitempty"`
	Digest     map[string]string `json:"digest,omitempty"`
	EntryPoint string            `json:"entryPoint,omitempty"`
}

// BuildMetadataV02 carries metadata about one execution of the build.
type BuildMetadataV02 struct {
	BuildInvocationID string        `json:"buildInvocationId,omitempty"`
	BuildStartedOn    *time.Time    `json:"buildStartedOn,omitempty"`
	BuildFinishedOn   *time.Time    `json:"buildFinishedOn,omitempty"`
	Completeness      *Completeness `json:"completeness,omitempty"`
	Reproducible      *bool         `json:"reproducible,omitempty"`
}

// Completeness records how complete the provided information claims to be.
type Completeness struct {
	Parameters  *bool `json:"parameters,omitempty"`
	Environment *bool `json:"environment,omitempty"`
	Materials   *bool `json:"materials,omitempty"`
}

func (p *SLSAProvenanceV02) checkRequired() error {
	switch {
	case p.Builder.ID.IsZero():
		return errors.New("missing required field builder.id")
	case p.BuildType.IsZero():
		return errors.New("missing required field buildType")
	}
	return nil
}
