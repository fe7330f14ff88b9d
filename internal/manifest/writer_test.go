package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Marshal_JSONFieldOrder(t *testing.T) {
	m := domain.NewManifest("x", "d", "http://example.com")
	m.Versions = []domain.Version{{
		Version: "1.0.0",
		Providers: []domain.Provider{{
			Name:         "virtualbox",
			ChecksumType: "sha1",
			Checksum:     emptySHA1,
			URL:          "http://example.com/1.0.0/virtualbox/a.box?x=1&y=2",
		}},
	}}

	data, err := NewWriter().Marshal(m, ".json")
	require.NoError(t, err)

	expected := `{
  "name": "x",
  "description": "d",
  "baseurl": "http://example.com",
  "versions": [
    {
      "version": "1.0.0",
      "providers": [
        {
          "name": "virtualbox",
          "checksum_type": "sha1",
          "checksum": "da39a3ee5e6b4b0d3255bfef95601890afd80709",
          "url": "http://example.com/1.0.0/virtualbox/a.box?x=1&y=2"
        }
      ]
    }
  ]
}
`
	assert.Equal(t, expected, string(data))
}

func TestWriter_Marshal_EmptyVersions(t *testing.T) {
	data, err := NewWriter().Marshal(domain.NewManifest("x", "", "http://example.com"), ".json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"versions": []`)
}

func TestWriter_Marshal_YAML(t *testing.T) {
	data, err := NewWriter().Marshal(expectedMetadata(), ".yaml")
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasPrefix(text, "name: hashicorp/precise64\n"))
	assert.Less(t, strings.Index(text, "checksum_type:"), strings.Index(text, "checksum: "))
}

func TestWriter_Marshal_UnsupportedExt(t *testing.T) {
	_, err := NewWriter().Marshal(expectedMetadata(), ".toml")
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestWriter_RoundTrip(t *testing.T) {
	for _, name := range []string{"metadata.json", "metadata.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			require.NoError(t, NewWriter().Write(path, expectedMetadata()))

			m, err := NewLoader().Load(path)
			require.NoError(t, err)
			assert.Equal(t, expectedMetadata(), m)
		})
	}
}

func TestWriter_Write_Reproducible(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "a.json")
	second := filepath.Join(dir, "b.json")

	require.NoError(t, NewWriter().Write(first, expectedMetadata()))
	require.NoError(t, NewWriter().Write(second, expectedMetadata()))

	a, err := os.ReadFile(first)
	require.NoError(t, err)
	b, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
