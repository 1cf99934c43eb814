package manifest

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"rsgame-bundler/bundle"
)

// Load reads the manifest at path. The format follows the extension, and
// relative paths inside it are taken relative to the manifest's directory.
func Load(path string) (*Manifest, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `Load error reading "%s"`, path)
	}

	var m *Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		m, err = DecodeJSON(bs)
	case ".yaml", ".yml":
		m, err = DecodeYAML(bs)
	default:
		return nil, ErrUnknownFormat{Path: path}
	}
	if err != nil {
		return nil, errors.Wrapf(err, `Load error decoding "%s"`, path)
	}
	m.Root = filepath.Dir(path)
	return m, nil
}

// DecodeJSON reads a manifest whose "assets" field is an object from name to
// path. Key order in the document is the entry order.
//
//	{
//	  "schema": "footer-v0",
//	  "output": "assets.bin",
//	  "assets": {"assets/flat.frag": "assets/flat.frag"}
//	}
func DecodeJSON(bs []byte) (*Manifest, error) {
	lhm := orderedmap.New()
	if err := json.Unmarshal(bs, lhm); err != nil {
		return nil, errors.Wrap(err, "DecodeJSON error")
	}

	m := Manifest{}
	for _, key := range lhm.Keys() {
		value, _ := lhm.Get(key)
		switch key {
		case "schema", "output":
			s, ok := value.(string)
			if !ok {
				return nil, ErrInvalidValue{Field: key, Expected: "a string", Actual: value}
			}
			if key == "schema" {
				m.Schema = s
			} else {
				m.Output = s
			}
		case "assets":
			var raw struct {
				Assets json.RawMessage `json:"assets"`
			}
			if err := json.Unmarshal(bs, &raw); err != nil {
				return nil, errors.Wrap(err, "DecodeJSON error")
			}
			sources, err := decodeJSONAssets(raw.Assets)
			if err != nil {
				return nil, err
			}
			m.Sources = sources
		default:
			return nil, ErrUnknownField{Field: key}
		}
	}
	return &m, nil
}

// decodeJSONAssets walks the "assets" object token by token. A repeated name
// stays in the list, so Build reports it instead of the last path silently
// winning.
func decodeJSONAssets(raw json.RawMessage) ([]bundle.Source, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	token, err := decoder.Token()
	if err != nil {
		return nil, errors.Wrap(err, "decodeJSONAssets error")
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		var value any
		_ = json.Unmarshal(raw, &value)
		return nil, ErrInvalidValue{Field: "assets", Expected: "an object", Actual: value}
	}

	sources := make([]bundle.Source, 0)
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decodeJSONAssets error")
		}
		name, _ := token.(string)
		var pathAny any
		if err := decoder.Decode(&pathAny); err != nil {
			return nil, errors.Wrapf(err, `decodeJSONAssets error reading "%s"`, name)
		}
		path, ok := pathAny.(string)
		if !ok {
			return nil, ErrInvalidValue{Field: "assets." + name, Expected: "a path string", Actual: pathAny}
		}
		sources = append(sources, bundle.Source{Name: name, Path: path})
	}
	return sources, nil
}

type (
	yamlManifest struct {
		Schema string       `yaml:"schema"`
		Output string       `yaml:"output"`
		Assets []yamlSource `yaml:"assets"`
	}
	yamlSource bundle.Source
)

// UnmarshalYAML accepts either {name, path} or a bare path, which is then
// also the name.
func (s *yamlSource) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		s.Name = node.Value
		s.Path = node.Value
		return nil
	}
	type plain yamlSource
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Path == "" {
		return ErrInvalidValue{Field: "assets[].path", Expected: "a path string", Actual: nil}
	}
	if p.Name == "" {
		p.Name = p.Path
	}
	*s = yamlSource(p)
	return nil
}

// DecodeYAML reads a manifest whose "assets" field is a list:
//
//	schema: header-v1
//	output: assets.bin
//	assets:
//	  - name: flat.frag
//	    path: assets/flat.frag
//	  - assets/terrain.png
func DecodeYAML(bs []byte) (*Manifest, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(bs))
	decoder.KnownFields(true)

	raw := yamlManifest{}
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "DecodeYAML error")
	}

	sources := make([]bundle.Source, 0, len(raw.Assets))
	for _, asset := range raw.Assets {
		sources = append(sources, bundle.Source(asset))
	}
	return &Manifest{
		Schema:  raw.Schema,
		Output:  raw.Output,
		Sources: sources,
	}, nil
}
