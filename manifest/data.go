// Package manifest loads the ordered list of assets a bundle is built from.
package manifest

import (
	"path/filepath"

	"github.com/samber/lo"
	"rsgame-bundler/bundle"
)

type (
	// Manifest describes one bundle build. Sources keep the order they were
	// written in; that order decides every offset in the bundle.
	Manifest struct {
		Schema  string          `json:"schema" yaml:"schema"`
		Output  string          `json:"output" yaml:"output"`
		Sources []bundle.Source `json:"assets" yaml:"assets"`
		// Root is the directory relative source paths are joined onto.
		Root string `json:"-" yaml:"-"`
	}
)

const (
	DefaultOutput = "assets.bin"
)

// DefaultAssets is the asset list the game has always shipped with.
var DefaultAssets = []string{
	"assets/flat.frag",
	"assets/flat.vert",
	"assets/terrain.frag",
	"assets/terrain.png",
	"assets/terrain.vert",
}

// Default returns the built-in manifest for schema. footer-v0 names keep
// the relative path; header-v1 only has room for the file name.
func Default(schema bundle.Schema) *Manifest {
	return &Manifest{
		Schema: string(schema),
		Output: DefaultOutput,
		Sources: lo.Map(
			DefaultAssets,
			func(path string, _ int) bundle.Source {
				name := path
				if schema == bundle.SchemaHeaderV1 {
					name = filepath.Base(path)
				}
				return bundle.Source{Name: name, Path: path}
			},
		),
	}
}

// Resolve returns the sources with relative paths joined onto m.Root.
func (m *Manifest) Resolve() []bundle.Source {
	return lo.Map(
		m.Sources,
		func(source bundle.Source, _ int) bundle.Source {
			if m.Root != "" && !filepath.IsAbs(source.Path) {
				source.Path = filepath.Join(m.Root, source.Path)
			}
			return source
		},
	)
}

// OutputPath is Output joined onto Root when relative.
func (m *Manifest) OutputPath() string {
	if m.Output == "" || filepath.IsAbs(m.Output) || m.Root == "" {
		return m.Output
	}
	return filepath.Join(m.Root, m.Output)
}
