package store

import (
	"context"
	"sync"
)

// objects is the raw byte-level storage underneath the buffered
// transactions used by the diskv and memory backends.
type objects interface {
	read(collection, key string) ([]byte, error)
	write(collection, key string, data []byte) error
	erase(collection, key string) error
	keys(collection string) ([]string, error)
}

// serialized gives a raw object store transactional semantics within one
// process: readers share a lock, a writer holds it exclusively and its
// changes are only applied once fn succeeds.
type serialized struct {
	mu     sync.RWMutex
	objs   objects
	closed bool
}

func (s *serialized) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	return fn(&bufferedTx{objs: s.objs, readOnly: true})
}

func (s *serialized) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	tx := &bufferedTx{objs: s.objs, pending: make(map[string]map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	return tx.commit()
}

func (s *serialized) close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// bufferedTx records writes in pending; a nil value marks a delete.
type bufferedTx struct {
	objs     objects
	readOnly bool
	pending  map[string]map[string][]byte
}

func (t *bufferedTx) Get(collection, key string, v any) error {
	if err := validate(collection, key); err != nil {
		return err
	}
	if data, ok := t.pending[collection][key]; ok {
		if data == nil {
			return ErrNotFound
		}
		return decode(collection, key, data, v)
	}
	data, err := t.objs.read(collection, key)
	if err != nil {
		return err
	}
	return decode(collection, key, data, v)
}

func (t *bufferedTx) Put(collection, key string, v any) error {
	if t.readOnly {
		return ErrReadOnly
	}
	data, err := encode(collection, key, v)
	if err != nil {
		return err
	}
	t.stage(collection, key, data)
	return nil
}

func (t *bufferedTx) Delete(collection, key string) error {
	if t.readOnly {
		return ErrReadOnly
	}
	if err := validate(collection, key); err != nil {
		return err
	}
	t.stage(collection, key, nil)
	return nil
}

func (t *bufferedTx) stage(collection, key string, data []byte) {
	if t.pending[collection] == nil {
		t.pending[collection] = make(map[string][]byte)
	}
	t.pending[collection][key] = data
}

func (t *bufferedTx) Keys(collection string) ([]string, error) {
	stored, err := t.objs.keys(collection)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(stored))
	for _, k := range stored {
		set[k] = struct{}{}
	}
	for k, data := range t.pending[collection] {
		if data == nil {
			delete(set, k)
		} else {
			set[k] = struct{}{}
		}
	}
	return sortedKeys(set), nil
}

func (t *bufferedTx) commit() error {
	for collection, records := range t.pending {
		for key, data := range records {
			var err error
			if data == nil {
				err = t.objs.erase(collection, key)
			} else {
				err = t.objs.write(collection, key, data)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}
