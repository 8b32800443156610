package resources

import (
	"fmt"
	"sort"
	"sync"
)

// Store holds loaded artifacts by name. Entries are write-once: a name is
// never overwritten or removed.
type Store struct {
	mu       sync.RWMutex
	items    map[string]any
	released bool
}

// disposer is implemented by artifacts holding GPU memory.
type disposer interface {
	Dispose()
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{items: make(map[string]any)}
}

// put inserts v under name. A second put for the same name is rejected. A
// released store disposes v and rejects it.
func (s *Store) put(name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		if d, ok := v.(disposer); ok {
			d.Dispose()
		}
		return fmt.Errorf("resources: store released, %q dropped", name)
	}
	if _, exists := s.items[name]; exists {
		return fmt.Errorf("resources: %q already stored", name)
	}
	s.items[name] = v
	return nil
}

// Release disposes every stored artifact that holds GPU memory. Entries stay
// retrievable but must not be drawn. Idempotent.
func (s *Store) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	for _, v := range s.items {
		if d, ok := v.(disposer); ok {
			d.Dispose()
		}
	}
}

// Get returns the artifact stored under name, or an error satisfying
// IsNotFound.
func (s *Store) Get(name string) (any, error) {
	s.mu.RLock()
	v, ok := s.items[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound(name)
	}
	return v, nil
}

// Has reports whether name is stored.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[name]
	return ok
}

// Len returns the number of stored artifacts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Names returns the stored names, sorted.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.items))
	for n := range s.items {
		names = append(names, n)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Lookup returns the artifact stored under name as a T. A stored artifact of
// another type is reported as not found.
func Lookup[T any](s *Store, name string) (T, error) {
	var zero T
	v, err := s.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, &notFoundError{name: name, reason: fmt.Sprintf("stored as %T, want %T", v, zero)}
	}
	return t, nil
}

// Texture returns the image named name.
func (s *Store) Texture(name string) (*Texture, error) { return Lookup[*Texture](s, name) }

// Cube returns the cube map named name.
func (s *Store) Cube(name string) (*CubeTexture, error) { return Lookup[*CubeTexture](s, name) }

// Model returns the model named name.
func (s *Store) Model(name string) (*Model, error) { return Lookup[*Model](s, name) }

// Audio returns the audio clip named name.
func (s *Store) Audio(name string) (*AudioClip, error) { return Lookup[*AudioClip](s, name) }
