package domain

// ChecksumTypeSHA1 is the only digest kind recorded in manifests
const ChecksumTypeSHA1 = "sha1"

// ArtifactSuffix is the file suffix a box artifact must carry
const ArtifactSuffix = ".box"

// Manifest is a Vagrant box catalog (metadata.json)
type Manifest struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	BaseURL     string    `json:"baseurl" yaml:"baseurl"`
	Versions    []Version `json:"versions" yaml:"versions"`
}

// Version describes one released version of a box
type Version struct {
	Version   string     `json:"version" yaml:"version"`
	Providers []Provider `json:"providers" yaml:"providers"`
}

// Provider describes the artifact built for one virtualization backend
type Provider struct {
	Name         string `json:"name" yaml:"name"`
	ChecksumType string `json:"checksum_type" yaml:"checksum_type"`
	Checksum     string `json:"checksum" yaml:"checksum"`
	URL          string `json:"url" yaml:"url"`
}

// NewManifest creates a manifest seed with no versions
func NewManifest(name, description, baseURL string) *Manifest {
	return &Manifest{
		Name:        name,
		Description: description,
		BaseURL:     baseURL,
		Versions:    []Version{},
	}
}

// NewVersion creates an empty version placeholder
func NewVersion(version string) Version {
	return Version{
		Version:   version,
		Providers: []Provider{},
	}
}

// NewProvider creates a provider placeholder with no checksum or URL
func NewProvider(name string) Provider {
	return Provider{
		Name:         name,
		ChecksumType: ChecksumTypeSHA1,
	}
}

// FindVersion returns a copy of the version with the given identifier,
// or an empty placeholder when the manifest does not list it.
func (m *Manifest) FindVersion(version string) Version {
	if m == nil {
		return NewVersion(version)
	}
	for _, v := range m.Versions {
		if v.Version == version {
			return v.Clone()
		}
	}
	return NewVersion(version)
}

// FindProvider returns a copy of the named provider, or a placeholder
// when the version does not list it.
func (v Version) FindProvider(name string) Provider {
	for _, p := range v.Providers {
		if p.Name == name {
			return p
		}
	}
	return NewProvider(name)
}

// Clone returns a deep copy of the version
func (v Version) Clone() Version {
	providers := make([]Provider, len(v.Providers))
	copy(providers, v.Providers)
	return Version{
		Version:   v.Version,
		Providers: providers,
	}
}

// Clone returns a deep copy of the manifest
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	versions := make([]Version, 0, len(m.Versions))
	for _, v := range m.Versions {
		versions = append(versions, v.Clone())
	}
	return &Manifest{
		Name:        m.Name,
		Description: m.Description,
		BaseURL:     m.BaseURL,
		Versions:    versions,
	}
}

// ProviderCount returns the number of provider entries across all versions
func (m *Manifest) ProviderCount() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range m.Versions {
		n += len(v.Providers)
	}
	return n
}
