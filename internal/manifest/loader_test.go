package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
}

func TestLoader_Load_FileNotFound(t *testing.T) {
	loader := NewLoader()

	m, err := loader.Load("/nonexistent/path/metadata.json")

	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoader_Load_ValidJSON(t *testing.T) {
	loader := NewLoader()

	jsonContent := `{
  "name": "hashicorp/precise64",
  "description": "This box contains Ubuntu 12.04 LTS 64-bit.",
  "baseurl": "http://example.com",
  "versions": [
    {
      "version": "1.0.0",
      "providers": [
        {
          "name": "virtualbox",
          "url": "http://example.com/1.0.0/virtualbox/precise64_virtualbox.box",
          "checksum_type": "sha1",
          "checksum": "da39a3ee5e6b4b0d3255bfef95601890afd80709"
        }
      ]
    }
  ]
}`

	manifestPath := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(jsonContent), 0644))

	m, err := loader.Load(manifestPath)
	require.NoError(t, err)

	assert.Equal(t, "hashicorp/precise64", m.Name)
	assert.Equal(t, "http://example.com", m.BaseURL)
	require.Len(t, m.Versions, 1)
	assert.Equal(t, domain.Provider{
		Name:         "virtualbox",
		ChecksumType: "sha1",
		Checksum:     "da39a3ee5e6b4b0d3255bfef95601890afd80709",
		URL:          "http://example.com/1.0.0/virtualbox/precise64_virtualbox.box",
	}, m.Versions[0].Providers[0])
}

func TestLoader_Load_ValidYAML(t *testing.T) {
	loader := NewLoader()

	yamlContent := `
name: hashicorp/precise64
description: Ubuntu
baseurl: http://example.com
versions:
  - version: 1.0.0
    providers:
      - name: virtualbox
        checksum_type: sha1
        checksum: abc
        url: http://example.com/1.0.0/virtualbox/a.box
`

	manifestPath := filepath.Join(t.TempDir(), "metadata.yml")
	require.NoError(t, os.WriteFile(manifestPath, []byte(yamlContent), 0644))

	m, err := loader.Load(manifestPath)
	require.NoError(t, err)
	require.Len(t, m.Versions, 1)
	assert.Equal(t, "1.0.0", m.Versions[0].Version)
	assert.Equal(t, "abc", m.Versions[0].Providers[0].Checksum)
}

func TestLoader_Load_NoVersions(t *testing.T) {
	m, err := NewLoader().LoadFromBytes([]byte(`{"name": "x", "baseurl": "http://example.com"}`), ".json")
	require.NoError(t, err)

	assert.NotNil(t, m.Versions)
	assert.Empty(t, m.Versions)
}

func TestLoader_Load_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		ext      string
		expected error
	}{
		{"invalid JSON", `{invalid json content}`, ".json", ErrInvalidFormat},
		{"invalid YAML", "name: [unclosed", ".yaml", ErrInvalidFormat},
		{"unsupported extension", "content", ".txt", ErrUnsupportedExt},
		{"missing name", `{"baseurl": "http://example.com"}`, ".json", ErrMissingField},
		{"missing baseurl", `{"name": "x"}`, ".json", ErrMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewLoader().LoadFromBytes([]byte(tt.content), tt.ext)

			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestLoadFromBytes_CaseInsensitiveExt(t *testing.T) {
	loader := NewLoader()
	content := `{"name": "x", "baseurl": "http://example.com"}`

	for _, ext := range []string{".JSON", ".Yml", ".YAML"} {
		_, err := loader.LoadFromBytes([]byte(content), ext)
		assert.NoError(t, err, ext)
	}
}

func TestLoader_Load_ReadError(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.Mkdir(manifestPath, 0755))

	m, err := NewLoader().Load(manifestPath)

	assert.Nil(t, m)
	assert.Contains(t, err.Error(), "failed to read manifest file")
}

func TestLoader_Seed(t *testing.T) {
	t.Run("new manifest from fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")

		m, err := NewLoader().Seed(path, "x", "d", "http://example.com")
		require.NoError(t, err)
		assert.Equal(t, domain.NewManifest("x", "d", "http://example.com"), m)
	})

	t.Run("new manifest requires baseurl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")

		_, err := NewLoader().Seed(path, "x", "d", "")
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("existing manifest keeps its fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		require.NoError(t, NewWriter().Write(path, expectedMetadata()))

		m, err := NewLoader().Seed(path, "", "", "")
		require.NoError(t, err)
		assert.Equal(t, expectedMetadata(), m)
	})

	t.Run("explicit fields override existing ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		require.NoError(t, NewWriter().Write(path, expectedMetadata()))

		m, err := NewLoader().Seed(path, "", "new description", "https://cdn.example.com")
		require.NoError(t, err)
		assert.Equal(t, "hashicorp/precise64", m.Name)
		assert.Equal(t, "new description", m.Description)
		assert.Equal(t, "https://cdn.example.com", m.BaseURL)
		assert.Len(t, m.Versions, 2)
	})

	t.Run("override fills missing baseurl", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "x", "versions": []}`), 0644))

		m, err := NewLoader().Seed(path, "", "", "http://example.com")
		require.NoError(t, err)
		assert.Equal(t, "x", m.Name)
		assert.Equal(t, "http://example.com", m.BaseURL)
	})

	t.Run("override fills missing name", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.yaml")
		require.NoError(t, os.WriteFile(path, []byte("baseurl: http://example.com\n"), 0644))

		m, err := NewLoader().Seed(path, "x", "", "")
		require.NoError(t, err)
		assert.Equal(t, "x", m.Name)
		assert.NotNil(t, m.Versions)
	})

	t.Run("incomplete manifest without override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "x"}`), 0644))

		_, err := NewLoader().Seed(path, "", "", "")
		assert.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("broken manifest is an error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "metadata.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, err := NewLoader().Seed(path, "x", "d", "http://example.com")
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}
