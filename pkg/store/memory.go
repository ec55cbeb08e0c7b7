package store

import "sync"

// Memory keeps records in process memory. It backs the "memory" backend and
// tests.
type Memory struct {
	serialized
}

var _ Store = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{}
	m.objs = &memoryObjects{collections: make(map[string]map[string][]byte)}
	return m
}

// Close releases the store; later transactions fail with ErrClosed.
func (m *Memory) Close() error {
	m.close()
	return nil
}

type memoryObjects struct {
	mu          sync.Mutex
	collections map[string]map[string][]byte
}

func (o *memoryObjects) read(collection, key string) ([]byte, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	data, ok := o.collections[collection][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (o *memoryObjects) write(collection, key string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.collections[collection] == nil {
		o.collections[collection] = make(map[string][]byte)
	}
	o.collections[collection][key] = append([]byte(nil), data...)
	return nil
}

func (o *memoryObjects) erase(collection, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.collections[collection], key)
	return nil
}

func (o *memoryObjects) keys(collection string) ([]string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	set := make(map[string]struct{}, len(o.collections[collection]))
	for k := range o.collections[collection] {
		set[k] = struct{}{}
	}
	return sortedKeys(set), nil
}
