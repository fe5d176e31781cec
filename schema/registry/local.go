package registry

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	terrors "github.com/go-tabular/tabular/errors"
	"github.com/go-tabular/tabular/schema"
	"github.com/go-tabular/tabular/schema/reader"
)

// LocalConf configures a Local registry.
type LocalConf struct {
	Root   string // The root directory containing schema documents.
	Suffix string // The file suffix of schema documents under Root. Defaults to "xlsx".
}

// Local is a Registry backed by a directory tree on the local file system.
// Keys are paths relative to the root directory.
type Local struct {
	conf   *LocalConf
	reader reader.Reader
}

// CreateLocal returns a Registry rooted at conf.Root.
func CreateLocal(conf *LocalConf) (*Local, error) {
	if conf.Suffix == "" {
		conf.Suffix = "xlsx"
	}
	r, err := reader.ForSuffix(conf.Suffix)
	if err != nil {
		return nil, err
	}
	return &Local{conf: conf, reader: r}, nil
}

// Exists reports whether key resolves to a regular file under the root.
func (l *Local) Exists(_ context.Context, key string) (bool, error) {
	info, err := os.Stat(filepath.Join(l.conf.Root, filepath.FromSlash(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Keys walks the root directory and lists every schema document with the
// configured suffix, skipping spreadsheet lock files.
func (l *Local) Keys(_ context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(l.conf.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), "."+l.conf.Suffix) {
			return nil
		}
		// Excel drops "~$" lock files next to open workbooks.
		if strings.HasPrefix(d.Name(), "~$") {
			return nil
		}
		rel, err := filepath.Rel(l.conf.Root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Get reads and parses the schema document stored under key. The document is
// re-read from disk on every call.
func (l *Local) Get(ctx context.Context, key string) (*schema.Spec, error) {
	ok, err := l.Exists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, terrors.KeyNotFoundError{Key: key}
	}

	path := filepath.Join(l.conf.Root, filepath.FromSlash(key))
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	spec, err := l.reader.Read(f)
	if err != nil {
		return nil, terrors.SchemaParseError{Path: path, Err: err}
	}
	return spec, nil
}
