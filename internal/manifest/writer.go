package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lvillani/vagrant-metadata/internal/domain"
	"github.com/lvillani/vagrant-metadata/internal/utils"
	"gopkg.in/yaml.v3"
)

// Writer serializes manifests with a stable field order
type Writer struct{}

// NewWriter creates a new manifest writer
func NewWriter() *Writer {
	return &Writer{}
}

// Write atomically replaces the manifest file at path. The format follows
// the file extension.
func (w *Writer) Write(path string, m *domain.Manifest) error {
	data, err := w.Marshal(m, filepath.Ext(path))
	if err != nil {
		return err
	}

	if err := utils.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}
	return nil
}

// Marshal encodes m as JSON or YAML depending on ext
func (w *Writer) Marshal(m *domain.Manifest, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}
}
