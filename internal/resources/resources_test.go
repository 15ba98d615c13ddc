package resources

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/imageview"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestFS_FirstRootWins(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, a, "sound.ogg", "from a")
	writeFile(t, b, "sound.ogg", "from b")
	writeFile(t, b, "fonts/mono.ttf", "font")

	f := New(a, b)

	data, err := f.ReadFile("/sound.ogg")
	require.NoError(t, err)
	assert.Equal(t, "from a", string(data))

	data, err = f.ReadFile("/fonts/mono.ttf")
	require.NoError(t, err)
	assert.Equal(t, "font", string(data))
}

func TestFS_NotFound(t *testing.T) {
	f := New(t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	_, err := f.ReadFile("/dragon1.png")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFS_InvalidPath(t *testing.T) {
	f := New(t.TempDir())
	for _, p := range []string{"dragon1.png", "", "./x"} {
		_, err := f.Open(p)
		assert.ErrorIs(t, err, ErrInvalidPath, "path %q", p)
	}
}

func TestFS_CleansPath(t *testing.T) {
	f := &FS{}
	f.AddFS("mem", fstest.MapFS{"a/b.txt": {Data: []byte("ok")}})
	data, err := f.ReadFile("/a/./c/../b.txt")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestFS_ReadDirectory(t *testing.T) {
	f := &FS{}
	f.AddFS("mem", fstest.MapFS{"dir/file": {Data: []byte("x")}})
	_, err := f.ReadFile("/dir")
	assert.Error(t, err)
}

func TestFS_Load(t *testing.T) {
	f := &FS{}
	f.AddFS("mem", fstest.MapFS{"dragon1.png": {Data: []byte("png")}})

	data, err := f.Load("/dragon1.png")
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	tests := []struct {
		path string
		kind imageview.LoadErrorKind
	}{
		{"/missing.png", imageview.NotFound},
		{"relative.png", imageview.NotFound},
		{"/", imageview.Decode},
	}
	for _, tt := range tests {
		_, err := f.Load(tt.path)
		var lerr *imageview.ResourceLoadError
		require.ErrorAs(t, err, &lerr, tt.path)
		assert.Equal(t, tt.kind, lerr.Kind, tt.path)
		assert.Equal(t, tt.path, lerr.Path)
	}
}

func TestFS_List(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	writeFile(t, a, "sound.ogg", "aaaa")
	writeFile(t, b, "sound.ogg", "b")
	writeFile(t, b, "dragon1.png", "bb")
	writeFile(t, b, "fonts/mono.ttf", "bbb")

	f := New(a, filepath.Join(a, "missing"), b)
	entries, err := f.List()
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Path: "/dragon1.png", Root: b, Size: 2},
		{Path: "/fonts/mono.ttf", Root: b, Size: 3},
		{Path: "/sound.ogg", Root: a, Size: 4},
	}, entries)
}

func TestDefaultDirs(t *testing.T) {
	t.Setenv(EnvResourceDir, "")
	assert.Equal(t, []string{"resources"}, DefaultDirs())

	t.Setenv(EnvResourceDir, "/opt/imageview")
	assert.Equal(t, []string{filepath.Join("/opt/imageview", "resources"), "resources"}, DefaultDirs())
}

func TestFS_Roots(t *testing.T) {
	f := New("x", "y")
	f.AddFS("embedded", fstest.MapFS{})
	assert.Equal(t, []string{"x", "y", "embedded"}, f.Roots())
}
