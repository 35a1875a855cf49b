package header

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC().Truncate(time.Second)
	h := New(WithKind("ValidationReport"), WithMetadata("source", "cluster.yml"))

	assert.Equal(t, "ValidationReport", h.Kind)
	assert.Equal(t, "clusterdef.nvidia.com/v1", h.APIVersion)
	assert.Equal(t, "cluster.yml", h.Metadata["source"])

	ts, ok := h.Timestamp()
	require.True(t, ok)
	assert.False(t, ts.Before(before))
}

func TestWithAPIVersion(t *testing.T) {
	h := New(WithAPIVersion(APIVersion("v2")))
	assert.Equal(t, "clusterdef.nvidia.com/v2", h.APIVersion)
}

func TestTimestamp(t *testing.T) {
	h := &Header{}
	_, ok := h.Timestamp()
	assert.False(t, ok)

	h = New(WithMetadata(MetadataTimestamp, "yesterday"))
	_, ok = h.Timestamp()
	assert.False(t, ok)
}
