package storage

import "sync"

// Substrate is the persistence capability the store is built on: a flat
// namespace of named byte values. Implementations must make Write
// replace the whole value; the store never issues partial writes.
//
// Read reports ok=false when the name has never been written (or was
// deleted). That is distinct from an empty value.
type Substrate interface {
	Read(name string) (data []byte, ok bool, err error)
	Write(name string, data []byte) error
	Delete(name string) error
}

// MemSubstrate is an in-memory Substrate for tests and ephemeral runs.
// Safe for concurrent use.
type MemSubstrate struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemSubstrate creates an empty in-memory substrate.
func NewMemSubstrate() *MemSubstrate {
	return &MemSubstrate{values: make(map[string][]byte)}
}

// Read returns a copy of the stored value.
func (m *MemSubstrate) Read(name string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Write stores a copy of data under name, replacing any prior value.
func (m *MemSubstrate) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(data))
	copy(v, data)
	m.values[name] = v
	return nil
}

// Delete removes the value stored under name. Deleting an absent name
// is a no-op.
func (m *MemSubstrate) Delete(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}
