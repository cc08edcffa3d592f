package types

import "github.com/spector-project/spector/pkg/codec"

// ResourceDescriptor is a size-efficient pointer to a software artifact or
// resource. Every field is optional on the wire; a descriptor is only
// meaningful when at least one of uri, digest, or content is present, but
// that is a policy rule, not a decode failure (see Meaningful).
type ResourceDescriptor struct {
	URI              *codec.URL        `json:"uri,omitempty"`
	Digest           map[string]string `json:"digest,omitempty"`
	Name             string            `json:"name,omitempty"`
	DownloadLocation *codec.URL        `json:"downloadLocation,omitempty"`
	MediaType        string            `json:"mediaType,omitempty"`
	Content          codec.Content     `json:"content,omitempty"`
	Annotations      map[string]any    `json:"annotations,omitempty"`
}

// Meaningful reports whether the descriptor identifies anything at all.
func (d ResourceDescriptor) Meaningful() bool {
	return d.URI != nil || len(d.Digest) > 0 || d.Content != nil
}

// MaterialDescriptor is the slimmer artifact reference used by the SLSA
// provenance v0.2 predicate. v0.2 pins its own shape; it is not unified with
// the v1 descriptor.
type MaterialDescriptor struct {
	URI    *codec.URL        `json:"uri,omitempty"`
	Digest map[string]string `json:"digest,omitempty"`
}
