// Package manifest saves a working set with its planned target names to a
// file and applies such a file back onto a registry.
//
// The codec is chosen from the file extension: .toml, .yaml/.yml or .json.
package manifest

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/rebatch/pkg/errors"
	"github.com/arthur-debert/rebatch/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// CurrentVersion is the manifest layout written by this build
const CurrentVersion = 1

// Entry is one selected file, in selection order
type Entry struct {
	Name      string `toml:"name" yaml:"name" json:"name"`
	Extension string `toml:"extension,omitempty" yaml:"extension,omitempty" json:"extension,omitempty"`
	Target    string `toml:"target,omitempty" yaml:"target,omitempty" json:"target,omitempty"`
}

// Manifest is a saved working set
type Manifest struct {
	Version   int     `toml:"version" yaml:"version" json:"version"`
	Directory string  `toml:"directory" yaml:"directory" json:"directory"`
	Base      string  `toml:"base,omitempty" yaml:"base,omitempty" json:"base,omitempty"`
	Code      string  `toml:"code,omitempty" yaml:"code,omitempty" json:"code,omitempty"`
	Entries   []Entry `toml:"entries" yaml:"entries" json:"entries"`
}

// Format is a manifest encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.ErrInvalidInput, "cannot tell manifest format of %s (use .toml, .yaml or .json)", path)
	}
}

// FromSelection builds a manifest from selected entries
func FromSelection(dir, base, code string, selected []types.FileEntry) *Manifest {
	m := &Manifest{
		Version:   CurrentVersion,
		Directory: dir,
		Base:      base,
		Code:      code,
		Entries:   make([]Entry, 0, len(selected)),
	}
	for _, e := range selected {
		m.Entries = append(m.Entries, Entry{
			Name:      e.FileName(),
			Extension: e.Extension,
			Target:    e.TargetName,
		})
	}
	return m
}

// Names returns the file names in selection order
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Name
	}
	return names
}

// Marshal encodes m
func Marshal(format Format, m *Manifest) ([]byte, error) {
	switch format {
	case FormatTOML:
		return toml.Marshal(m)
	case FormatYAML:
		return yaml.Marshal(m)
	case FormatJSON:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
}

// Unmarshal decodes data and checks the version
func Unmarshal(format Format, data []byte) (*Manifest, error) {
	var m Manifest
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &m)
	case FormatYAML:
		err = yaml.Unmarshal(data, &m)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&m)
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown manifest format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "invalid %s manifest", format)
	}

	if m.Version == 0 {
		m.Version = CurrentVersion
	}
	if m.Version > CurrentVersion {
		return nil, errors.Newf(errors.ErrManifestLoad, "manifest version %d is newer than supported version %d", m.Version, CurrentVersion)
	}
	for i, e := range m.Entries {
		if e.Name == "" {
			return nil, errors.Newf(errors.ErrManifestLoad, "entry %d has no name", i+1)
		}
	}
	return &m, nil
}

// Save writes m to path
func Save(path string, m *Manifest) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(format, m)
	if err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "cannot encode manifest")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestSave, "cannot write %s", path)
	}
	return nil
}

// Load reads a manifest from path
func Load(path string) (*Manifest, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestLoad, "cannot read %s", path)
	}
	return Unmarshal(format, data)
}
