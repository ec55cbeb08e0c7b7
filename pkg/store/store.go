// Package store is the transactional object store the app persists into.
// Records are JSON documents addressed by a collection name and a key.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotFound is returned by Tx.Get when no record exists for the key.
	ErrNotFound = errors.New("store: not found")
	// ErrCorrupt wraps records that could not be decoded.
	ErrCorrupt = errors.New("store: corrupt record")
	// ErrClosed is returned by a store after Close.
	ErrClosed = errors.New("store: closed")
	// ErrReadOnly is returned for writes inside View.
	ErrReadOnly = errors.New("store: write in read-only transaction")
)

// Store runs units of work against persisted collections. View runs fn
// against a read-only snapshot; Update runs fn as one read-write mutation
// that becomes visible to later transactions only if fn returns nil.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Tx is the view of the store inside a transaction. Values are encoded as
// JSON.
type Tx interface {
	// Get decodes the record at collection/key into v.
	Get(collection, key string, v any) error
	// Put upserts v at collection/key.
	Put(collection, key string, v any) error
	// Delete removes collection/key. Deleting a missing key is not an error.
	Delete(collection, key string) error
	// Keys lists the keys of a collection in ascending order.
	Keys(collection string) ([]string, error)
}

// Backend names accepted by Open.
const (
	BackendDiskv  = "diskv"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config selects and locates a backend.
type Config interface {
	Backend() string
	DataPath() string
}

// Open creates the store selected by cfg.
func Open(cfg Config, logger *log.Logger) (Store, error) {
	if logger == nil {
		logger = log.Default()
	}
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend()))
	logger.Debug("opening store", "backend", backend, "path", cfg.DataPath())
	switch backend {
	case "", BackendDiskv:
		return NewDiskv(cfg.DataPath())
	case BackendSQLite:
		return NewSQLite(cfg.DataPath() + ".db")
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend())
	}
}

// All decodes every record in collection, ordered by key. Keys listed in skip
// are ignored, which lets a collection hold a few records of another shape.
func All[T any](tx Tx, collection string, skip ...string) ([]*T, error) {
	keys, err := tx.Keys(collection)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(keys))
	for _, key := range keys {
		if slices.Contains(skip, key) {
			continue
		}
		v := new(T)
		if err := tx.Get(collection, key, v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Exists reports whether collection/key holds a record.
func Exists(tx Tx, collection, key string) (bool, error) {
	var raw json.RawMessage
	err := tx.Get(collection, key, &raw)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func encode(collection, key string, v any) ([]byte, error) {
	if err := validate(collection, key); err != nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("store: encode %s/%s: %w", collection, key, err)
	}
	return b, nil
}

func decode(collection, key string, data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w %s/%s: %v", ErrCorrupt, collection, key, err)
	}
	return nil
}

func validate(collection, key string) error {
	switch {
	case collection == "" || key == "":
		return fmt.Errorf("store: collection and key required (%q/%q)", collection, key)
	case strings.ContainsAny(collection, `/\`) || strings.ContainsAny(key, `/\`):
		return fmt.Errorf("store: invalid key %q/%q", collection, key)
	case strings.HasPrefix(collection, ".") || strings.HasPrefix(key, "."):
		return fmt.Errorf("store: invalid key %q/%q", collection, key)
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
