package cli

import (
	"github.com/sirupsen/logrus"
	"rsgame-bundler/bundle"
	"rsgame-bundler/manifest"
)

// StartPacking builds and writes one bundle. Flags win over the manifest;
// without a manifest the built-in asset list is packed.
func StartPacking(cmd PackCmd, logger *logrus.Logger) (*bundle.Bundle, error) {
	schema, err := parseSchemaFlag(cmd.Schema)
	if err != nil {
		return nil, err
	}

	var m *manifest.Manifest
	out := cmd.Out
	if cmd.Manifest != "" {
		m, err = manifest.Load(cmd.Manifest)
		if err != nil {
			return nil, err
		}
		if schema == "" && m.Schema != "" {
			schema, err = bundle.ParseSchema(m.Schema)
			if err != nil {
				return nil, err
			}
		}
		if out == "" {
			out = m.OutputPath()
		}
	} else {
		if schema == "" {
			schema = bundle.DefaultSchema
		}
		m = manifest.Default(schema)
	}
	if schema == "" {
		schema = bundle.DefaultSchema
	}
	if cmd.Root != "" {
		m.Root = cmd.Root
	}
	if out == "" {
		out = manifest.DefaultOutput
	}

	sources := m.Resolve()
	log := logger.WithFields(
		logrus.Fields{
			"schema":  schema,
			"entries": len(sources),
			"output":  out,
		},
	)

	log.Info("reading entries")
	b, err := bundle.Build(sources, schema)
	if err != nil {
		return nil, err
	}
	for _, entry := range b.Entries {
		logger.WithFields(
			logrus.Fields{
				"name":   entry.Name,
				"offset": entry.Offset,
				"size":   entry.Size,
			},
		).Debug("packed entry")
	}

	log.WithField("bytes", b.Len()).Info("writing output")
	if err := b.WriteFile(out, bundle.WriteOptions{AttachTo: cmd.Attach}); err != nil {
		return nil, err
	}

	log.WithFields(
		logrus.Fields{
			"bytes":  b.Len(),
			"digest": b.Digest().String(),
		},
	).Info("done")
	return b, nil
}
