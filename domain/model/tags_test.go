package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagsBuilder(t *testing.T) {
	t.Parallel()

	b := NewTagsBuilder()
	require.True(t, b.Add("ver", NewStr("3.0")))
	require.True(t, b.Add("his", Marker()))
	require.False(t, b.Add("ver", NewStr("2.0")))
	tags := b.Build()

	assert.Equal(t, 2, tags.Len())
	assert.Equal(t, []string{"ver", "his"}, tags.Names())
	ver, ok := tags.Str("ver")
	assert.True(t, ok)
	assert.Equal(t, "3.0", ver)
	_, ok = tags.Str("his")
	assert.False(t, ok)
	assert.Equal(t, `ver:"3.0" his`, tags.String())

	var names []string
	for name, v := range tags.All() {
		names = append(names, name+"="+v.Kind().String())
	}
	assert.Equal(t, []string{"ver=Str", "his=Marker"}, names)
}

func TestTags_Zero(t *testing.T) {
	t.Parallel()

	var tags Tags
	assert.Equal(t, 0, tags.Len())
	assert.False(t, tags.Has("ver"))
	_, ok := tags.Get("ver")
	assert.False(t, ok)
	assert.True(t, tags.Equal(NewTags()))
	assert.Empty(t, tags.String())
}

func TestDecodeOptions(t *testing.T) {
	t.Parallel()

	opts := NewDecodeOptions()
	assert.Positive(t, opts.Workers())
	assert.False(t, opts.MixedKinds())

	opts = opts.WithWorkers(3).WithMixedKinds(true)
	assert.Equal(t, 3, opts.Workers())
	assert.True(t, opts.MixedKinds())
}
