package x3d

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/x3dscene/pkg/scene"
)

func TestResolverCurrentPass(t *testing.T) {
	r := NewResolver(nil)
	n := scene.NewNode(scene.KindGroup)
	r.Merge("a", n)

	got, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Same(t, n, got)
	assert.Equal(t, scene.Labels{"a"}, n.Labels)

	_, err = r.Resolve("b")
	assert.True(t, errors.Is(err, ErrReferenceNotFound))
}

func TestResolverLaterRegistrationWins(t *testing.T) {
	r := NewResolver(nil)
	first, second := scene.NewNode(scene.KindGroup), scene.NewNode(scene.KindGroup)
	r.Register("a", first)
	r.Register("a", second)
	got, err := r.Resolve("a")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestResolverFallback(t *testing.T) {
	root := scene.NewNode(scene.KindGroup)
	shape := scene.NewNode(scene.KindShape)
	shape.Material = scene.NewMaterial(scene.MaterialPhong)
	shape.Material.Labels.Add("m")
	root.Add(shape)

	r := NewResolver(root)
	got, err := r.Resolve("m")
	require.NoError(t, err)
	assert.Same(t, shape.Material, got)

	_, ok := r.Lookup("m")
	assert.False(t, ok, "fallback objects are not part of the current pass")
}

func TestResolverIgnoresEmpty(t *testing.T) {
	r := NewResolver(nil)
	r.Register("", scene.NewNode(scene.KindGroup))
	r.Merge("x", nil)
	assert.Equal(t, 0, r.Len())
}
