package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Diskv stores each record as a file at <base>/<collection>/<key>.
type Diskv struct {
	serialized
	d        *diskv.Diskv
	basePath string
}

var _ Store = (*Diskv)(nil)

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
	s := &Diskv{d: d, basePath: basePath}
	s.objs = (*diskvObjects)(s)
	return s, nil
}

// BasePath is the directory holding the collections.
func (s *Diskv) BasePath() string { return s.basePath }

// Close releases the store; later transactions fail with ErrClosed.
func (s *Diskv) Close() error {
	s.close()
	return nil
}

type diskvObjects Diskv

func (o *diskvObjects) read(collection, key string) ([]byte, error) {
	val, err := o.d.Read(joinKey(collection, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s/%s: %w", collection, key, err)
	}
	return val, nil
}

func (o *diskvObjects) write(collection, key string, data []byte) error {
	if err := o.d.Write(joinKey(collection, key), data); err != nil {
		return fmt.Errorf("store: write %s/%s: %w", collection, key, err)
	}
	return nil
}

func (o *diskvObjects) erase(collection, key string) error {
	k := joinKey(collection, key)
	if !o.d.Has(k) {
		return nil
	}
	if err := o.d.Erase(k); err != nil {
		return fmt.Errorf("store: erase %s/%s: %w", collection, key, err)
	}
	return nil
}

func (o *diskvObjects) keys(collection string) ([]string, error) {
	dir := filepath.Join(o.basePath, collection)
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	prefix := joinKey(collection, "")
	set := make(map[string]struct{})
	cancel := make(chan struct{})
	defer close(cancel)
	for k := range o.d.KeysPrefix(prefix, cancel) {
		set[strings.TrimPrefix(k, prefix)] = struct{}{}
	}
	return sortedKeys(set), nil
}

// Keys are "<collection>/<key>"; the collection becomes a directory.
func joinKey(collection, key string) string {
	return collection + "/" + key
}

func keyToPathTransform(s string) *diskv.PathKey {
	collection, key, _ := strings.Cut(s, "/")
	return &diskv.PathKey{
		Path:     []string{collection},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(pathKey.Path, "/") + "/" + pathKey.FileName
}
