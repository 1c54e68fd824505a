package texture

import (
	"fmt"
	"path/filepath"

	"github.com/Faultbox/tidemirror/internal/assets"
	"github.com/Faultbox/tidemirror/internal/engine/scene"
)

// LoadNormalMap decodes the named asset from m and returns a repeat-wrapped
// sampler resized to power-of-two dimensions. Repeated loads of the same
// name are served from the manager's cache.
func LoadNormalMap(m *assets.Manager, name string) (*Sampler, error) {
	data, err := m.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := Decode(name, data)
	if err != nil {
		return nil, fmt.Errorf("decoding normal map %s: %w", name, err)
	}
	return NewSampler(PowerOfTwo(img), scene.Repeat), nil
}

// LoadNormalMapFile adds the directory holding path as a root of m and
// loads the file through it.
func LoadNormalMapFile(m *assets.Manager, path string) (*Sampler, error) {
	if err := m.AddDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return LoadNormalMap(m, filepath.Base(path))
}
