package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"studylog/internal/modules/plugin/domain"
	pluginout "studylog/internal/modules/plugin/port/out"
)

// FileManifestStore reads the plugin registry from <stateDir>/plugins. The
// registry is plugins.json or, when that file is absent, plugins.yaml.
type FileManifestStore struct {
	stateDir string
}

func NewFileManifestStore(stateDir string) pluginout.ManifestStore {
	return &FileManifestStore{stateDir: stateDir}
}

type manifestDecoder func([]byte, *[]domain.Manifest) error

func decodeJSON(raw []byte, into *[]domain.Manifest) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	return dec.Decode(into)
}

func decodeYAML(raw []byte, into *[]domain.Manifest) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	return dec.Decode(into)
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	for _, candidate := range []struct {
		name   string
		decode manifestDecoder
	}{
		{"plugins.json", decodeJSON},
		{"plugins.yaml", decodeYAML},
	} {
		path := filepath.Join(s.stateDir, "plugins", candidate.name)
		raw, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", candidate.name, err)
		}
		var manifests []domain.Manifest
		if len(bytes.TrimSpace(raw)) > 0 {
			if err := candidate.decode(raw, &manifests); err != nil {
				return nil, fmt.Errorf("decode %s: %w", candidate.name, err)
			}
		}
		return s.resolve(manifests)
	}
	return []domain.Manifest{}, nil
}

// resolve anchors relative binaries at the state directory and rejects
// registries that name a plugin twice.
func (s *FileManifestStore) resolve(manifests []domain.Manifest) ([]domain.Manifest, error) {
	names := make(map[string]bool, len(manifests))
	for i, m := range manifests {
		if names[m.Name] {
			return nil, fmt.Errorf("plugin %q is declared twice", m.Name)
		}
		names[m.Name] = true
		if m.Binary != "" && !filepath.IsAbs(m.Binary) {
			manifests[i].Binary = filepath.Join(s.stateDir, m.Binary)
		}
	}
	if manifests == nil {
		manifests = []domain.Manifest{}
	}
	return manifests, nil
}
