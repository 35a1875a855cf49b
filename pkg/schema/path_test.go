/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	p := Path(nil).Child("hosts").At(1).Child("taints").At(0).Child("effect")
	assert.Equal(t, "hosts[1].taints[0].effect", p.String())
	assert.Equal(t, "", Path(nil).String())
}

func TestPath_ChildDoesNotAlias(t *testing.T) {
	base := make(Path, 0, 8).Child("hosts")
	a := base.At(0)
	b := base.At(1)
	assert.Equal(t, "hosts[0]", a.String())
	assert.Equal(t, "hosts[1]", b.String())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "network.dns_replicas", want: "network.dns_replicas"},
		{in: "hosts", want: "hosts"},
		{in: "hosts[0].address", want: "hosts[0].address"},
		{in: "a[1][2].b", want: "a[1][2].b"},
		{in: "", wantErr: true},
		{in: "[0]", wantErr: true},
		{in: "a..b", wantErr: true},
		{in: "a[x]", wantErr: true},
		{in: "a[1", wantErr: true},
		{in: "hosts[", wantErr: true},
		{in: "hosts[0][", wantErr: true},
		{in: "a[-1]", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			p, err := ParsePath(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestLookup(t *testing.T) {
	doc := map[string]any{
		"network": map[string]any{"dns_replicas": 2},
		"hosts":   []any{map[string]any{"address": "10.0.0.1"}},
	}

	v, ok := Lookup(doc, MustParsePath("network.dns_replicas"))
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	v, ok = Lookup(doc, MustParsePath("hosts[0].address"))
	assert.True(t, ok)
	assert.Equal(t, "10.0.0.1", v)

	_, ok = Lookup(doc, MustParsePath("hosts[3].address"))
	assert.False(t, ok)

	_, ok = Lookup(doc, MustParsePath("network.dns_replicas.deeper"))
	assert.False(t, ok)
}
