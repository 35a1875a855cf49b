// Package header provides the Kubernetes-style envelope carried by documents
// clusterdef emits.
package header

import (
	"strings"
	"time"
)

const (
	APIGroup     = "clusterdef.nvidia.com"
	APIVersionV1 = "v1"

	// MetadataTimestamp records when the document was produced.
	MetadataTimestamp = "timestamp"
)

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
// If the Metadata map is nil, it will be initialized.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind string) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a Header stamped with the current time. Options are applied
// after the stamp, so they may override it.
func New(opts ...Option) *Header {
	h := &Header{
		APIVersion: APIVersion(APIVersionV1),
		Metadata: map[string]string{
			MetadataTimestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// APIVersion returns the group-qualified form of version, e.g.
// "clusterdef.nvidia.com/v1".
func APIVersion(version string) string {
	return APIGroup + "/" + strings.TrimPrefix(version, "/")
}

// Header follows Kubernetes resource conventions with Kind, APIVersion, and
// Metadata fields.
type Header struct {
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Timestamp parses the timestamp metadata. ok is false when it is missing or
// malformed.
func (h *Header) Timestamp() (t time.Time, ok bool) {
	s, found := h.Metadata[MetadataTimestamp]
	if !found {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	return t, err == nil
}
