package bundle

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type (
	WriteOptions struct {
		// AttachTo names a file whose bytes are written ahead of the bundle,
		// typically the executable that will read it. Only SchemaFooterV0
		// bundles can be attached, since they are located from the end.
		AttachTo string
	}
)

const DefaultFileMode os.FileMode = 0o644

// WriteFile replaces path with the bundle. The bytes go to a temporary file
// next to path which is renamed over it only once fully written, so a
// failed run never leaves a truncated bundle behind.
func (b *Bundle) WriteFile(path string, opts WriteOptions) error {
	if opts.AttachTo != "" && b.Schema != SchemaFooterV0 {
		return ErrAttachUnsupported{Schema: b.Schema}
	}
	if err := writeFileAtomic(path, opts.AttachTo, b.bs); err != nil {
		return ErrDestinationWrite{Path: path, Err: err}
	}
	return nil
}

// Pack is Build followed by WriteFile.
func Pack(sources []Source, schema Schema, path string, opts WriteOptions) (*Bundle, error) {
	b, err := Build(sources, schema)
	if err != nil {
		return nil, err
	}
	if err := b.WriteFile(path, opts); err != nil {
		return nil, err
	}
	return b, nil
}

func writeFileAtomic(target string, hostPath string, data []byte) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".bundle-*")
	if err != nil {
		return errors.Wrap(err, "create temporary file")
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	mode := DefaultFileMode
	if hostPath != "" {
		// keep the host's permissions so an attached executable stays runnable
		hostMode, err := copyHost(tmp, hostPath)
		if err != nil {
			return fail(err)
		}
		mode = hostMode
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(errors.Wrap(err, "write bundle"))
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(errors.Wrap(err, "set file mode"))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "close temporary file")
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "rename temporary file")
	}
	return nil
}

func copyHost(w io.Writer, hostPath string) (os.FileMode, error) {
	host, err := os.Open(hostPath)
	if err != nil {
		return 0, errors.Wrap(err, "open attach target")
	}
	defer host.Close()

	info, err := host.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "stat attach target")
	}
	if _, err := io.Copy(w, host); err != nil {
		return 0, errors.Wrapf(err, `copy attach target "%s"`, hostPath)
	}
	return info.Mode().Perm(), nil
}
