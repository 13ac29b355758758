package texture

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/x3dscene/pkg/grf"
)

func TestCleanRef(t *testing.T) {
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"wood.png", "wood.png", true},
		{"./textures/wood.png", "textures/wood.png", true},
		{`textures\wood.png`, "textures/wood.png", true},
		{"/textures/wood.png", "textures/wood.png", true},
		{"a/../b.png", "b.png", true},
		{"../outside.png", "", false},
		{"https://example.com/wood.png", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := cleanRef(tt.ref)
		assert.Equal(t, tt.ok, ok, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestSourcesPriority(t *testing.T) {
	s := NewSources()
	s.Add("base", fstest.MapFS{
		"wood.png":  {Data: []byte("base wood")},
		"stone.png": {Data: []byte("base stone")},
	})
	s.Add("mod", fstest.MapFS{
		"wood.png": {Data: []byte("mod wood")},
	})
	assert.Equal(t, 2, s.Len())

	data, from, err := s.ReadFile("wood.png")
	require.NoError(t, err)
	assert.Equal(t, "mod wood", string(data))
	assert.Equal(t, "mod", from)

	data, from, err = s.ReadFile("./stone.png")
	require.NoError(t, err)
	assert.Equal(t, "base stone", string(data))
	assert.Equal(t, "base", from)

	_, _, err = s.ReadFile("missing.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	_, _, err = s.ReadFile("../escape.png")
	assert.ErrorIs(t, err, fs.ErrInvalid)
}

func TestSourcesDirAndArchive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "tex"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tex", "a.png"), []byte("from dir"), 0o644))

	w := grf.NewWriter()
	w.Add(`Tex\B.png`, []byte("from pack"))
	var buf bytes.Buffer
	_, err := w.WriteTo(&buf)
	require.NoError(t, err)
	pack := filepath.Join(t.TempDir(), "pack.grf")
	require.NoError(t, os.WriteFile(pack, buf.Bytes(), 0o644))

	s := NewSources()
	require.NoError(t, s.AddDir(dir))
	require.NoError(t, s.AddArchive(pack))

	data, from, err := s.ReadFile("tex/a.png")
	require.NoError(t, err)
	assert.Equal(t, "from dir", string(data))
	assert.Equal(t, dir, from)

	data, from, err = s.ReadFile("tex/b.png")
	require.NoError(t, err)
	assert.Equal(t, "from pack", string(data))
	assert.Equal(t, pack, from)

	assert.Error(t, s.AddDir(filepath.Join(dir, "tex", "a.png")))
	assert.Error(t, s.AddDir(filepath.Join(dir, "nope")))
	assert.Error(t, s.AddArchive(filepath.Join(dir, "tex", "a.png")))

	require.NoError(t, s.Close())
	assert.Equal(t, 0, s.Len())
}
