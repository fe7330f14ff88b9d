package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativeSlashPath(t *testing.T) {
	root := filepath.Join("srv", "boxes")
	target := filepath.Join(root, "1.0.0", "virtualbox", "precise64.box")

	rel, err := RelativeSlashPath(root, target)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0/virtualbox/precise64.box", rel)
}

func TestRelativeSlashPath_Error(t *testing.T) {
	_, err := RelativeSlashPath("relative", string(filepath.Separator)+"absolute")
	assert.Error(t, err)
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		rel      string
		expected string
	}{
		{"plain", "http://example.com", "1.0.0/vb/a.box", "http://example.com/1.0.0/vb/a.box"},
		{"base with trailing slash", "http://example.com/", "1.0.0/vb/a.box", "http://example.com/1.0.0/vb/a.box"},
		{"base with path", "https://example.com/boxes", "1.0.0/vb/a.box", "https://example.com/boxes/1.0.0/vb/a.box"},
		{"relative base", "boxes", "1.0.0/vb/a.box", "boxes/1.0.0/vb/a.box"},
		{"empty base", "", "1.0.0/vb/a.box", "/1.0.0/vb/a.box"},
		{"rel with leading slash", "http://example.com", "/1.0.0/vb/a.box", "http://example.com/1.0.0/vb/a.box"},
		{"both slashes", "http://example.com/boxes/", "/1.0.0/vb/a.box", "http://example.com/boxes/1.0.0/vb/a.box"},
		{"only one trailing slash trimmed", "http://example.com//", "1.0.0/vb/a.box", "http://example.com//1.0.0/vb/a.box"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinURL(tt.base, tt.rel))
		})
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "metadata.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "cache"), ExpandPath("~/cache"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
