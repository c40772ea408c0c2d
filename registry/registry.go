package registry

import (
	"sync"

	"github.com/corespace/tuplespace/space"
)

// DefaultName is the Space name Get uses when called with "".
const DefaultName = "default"

var (
	mu     sync.RWMutex
	spaces = make(map[string]*space.Space)
)

// Get returns the named Space, creating it on first use. An empty
// name is treated as DefaultName.
func Get(name string) *space.Space {
	if name == "" {
		name = DefaultName
	}

	mu.RLock()
	s, ok := spaces[name]
	mu.RUnlock()
	if ok {
		return s
	}

	mu.Lock()
	defer mu.Unlock()
	if s, ok := spaces[name]; ok {
		return s
	}
	s = space.New(name)
	spaces[name] = s
	return s
}

// Names returns the names of every Space currently registered.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(spaces))
	for name := range spaces {
		names = append(names, name)
	}
	return names
}

// Close closes and forgets the named Space. Closing a name that was
// never created is a no-op.
func Close(name string) error {
	if name == "" {
		name = DefaultName
	}

	mu.Lock()
	s, ok := spaces[name]
	if ok {
		delete(spaces, name)
	}
	mu.Unlock()

	if !ok {
		return nil
	}
	return s.Close()
}

// CloseAll closes and forgets every registered Space. Intended for
// test teardown and clean process shutdown.
func CloseAll() error {
	mu.Lock()
	all := spaces
	spaces = make(map[string]*space.Space)
	mu.Unlock()

	var firstErr error
	for _, s := range all {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
