package store

import (
	"math/rand"
	"sync"

	"github.com/corespace/tuplespace/tuple"
	"github.com/corespace/tuplespace/util"
)

var log = util.New("store")

type bucket struct {
	mu        sync.Mutex
	tuples    []*tuple.Tuple
	templates []*tuple.Template
}

func (b *bucket) empty() bool {
	return len(b.tuples) == 0 && len(b.templates) == 0
}

// memoryStore is the sole provided Store implementation: a map of
// shape hash to bucket, with bucket creation/removal serialised by a
// store-wide mutex and bucket contents serialised independently by
// each bucket's own mutex.
type memoryStore struct {
	mu      sync.RWMutex
	buckets map[tuple.Shape]*bucket
}

// NewMemory returns a new in-memory Store.
func NewMemory() Store {
	return &memoryStore{buckets: make(map[tuple.Shape]*bucket)}
}

// bucketFor returns the bucket for shape, creating it atomically if
// absent.
func (s *memoryStore) bucketFor(shape tuple.Shape) *bucket {
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if ok {
		return b
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok = s.buckets[shape]; ok {
		return b
	}
	b = &bucket{}
	s.buckets[shape] = b
	return b
}

// dropIfEmpty removes shape's bucket from the map if it holds nothing.
// Called with b already unlocked.
func (s *memoryStore) dropIfEmpty(shape tuple.Shape, b *bucket) {
	b.mu.Lock()
	empty := b.empty()
	b.mu.Unlock()
	if !empty {
		return
	}
	s.mu.Lock()
	if cur, ok := s.buckets[shape]; ok && cur == b {
		cur.mu.Lock()
		stillEmpty := cur.empty()
		cur.mu.Unlock()
		if stillEmpty {
			delete(s.buckets, shape)
		}
	}
	s.mu.Unlock()
}

func (s *memoryStore) StoreTuple(t *tuple.Tuple) {
	b := s.bucketFor(t.Shape())
	b.mu.Lock()
	n := len(b.tuples)
	if n == 0 {
		b.tuples = append(b.tuples, t)
	} else {
		i := rand.Intn(n + 1)
		b.tuples = append(b.tuples, nil)
		copy(b.tuples[i+1:], b.tuples[i:n])
		b.tuples[i] = t
	}
	b.mu.Unlock()
	log.Logf("stored tuple %d in shape %v (bucket now %d)", t.ID(), t.Shape(), n+1)
}

func (s *memoryStore) StoreTemplate(p *tuple.Template) {
	b := s.bucketFor(p.Shape())
	b.mu.Lock()
	b.templates = append(b.templates, p)
	b.mu.Unlock()
	log.Logf("registered template %d in shape %v", p.ID(), p.Shape())
}

func (s *memoryStore) RemoveTuple(t *tuple.Tuple) {
	shape := t.Shape()
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if !ok {
		return
	}
	b.mu.Lock()
	for i, x := range b.tuples {
		if x == t {
			b.tuples = append(b.tuples[:i], b.tuples[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	s.dropIfEmpty(shape, b)
}

func (s *memoryStore) RemoveTemplate(p *tuple.Template) {
	shape := p.Shape()
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if !ok {
		return
	}
	b.mu.Lock()
	for i, x := range b.templates {
		if x == p {
			b.templates = append(b.templates[:i], b.templates[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
	s.dropIfEmpty(shape, b)
}

func (s *memoryStore) GetMatch(p *tuple.Template, destroy bool) (*tuple.Tuple, error) {
	shape := p.Shape()
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	b.mu.Lock()
	found, foundIdx, err := scanForMatch(b.tuples, p)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	if found == nil {
		b.mu.Unlock()
		s.dropIfEmpty(shape, b)
		return nil, nil
	}
	if destroy {
		b.tuples = append(b.tuples[:foundIdx], b.tuples[foundIdx+1:]...)
	}
	for i, x := range b.templates {
		if x == p {
			b.templates = append(b.templates[:i], b.templates[i+1:]...)
			break
		}
	}
	b.mu.Unlock()

	s.dropIfEmpty(shape, b)
	return found, nil
}

func (s *memoryStore) TryMatchTuple(p *tuple.Template, destroy bool) (*tuple.Tuple, error) {
	shape := p.Shape()
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	b.mu.Lock()
	found, foundIdx, err := scanForMatch(b.tuples, p)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	if found != nil && destroy {
		b.tuples = append(b.tuples[:foundIdx], b.tuples[foundIdx+1:]...)
	}
	b.mu.Unlock()

	if found != nil && destroy {
		s.dropIfEmpty(shape, b)
	}
	return found, nil
}

func scanForMatch(tuples []*tuple.Tuple, p *tuple.Template) (*tuple.Tuple, int, error) {
	for i, t := range tuples {
		ok, err := tuple.Match(t, p)
		if err != nil {
			return nil, -1, err
		}
		if ok {
			return t, i, nil
		}
	}
	return nil, -1, nil
}

func (s *memoryStore) GetWaitingTemplates(t *tuple.Tuple) ([]*tuple.Template, error) {
	shape := t.Shape()
	s.mu.RLock()
	b, ok := s.buckets[shape]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var acc []*tuple.Template
	for _, p := range b.templates {
		ok, err := tuple.Match(t, p)
		if err != nil {
			return nil, err
		}
		if ok {
			acc = append(acc, p)
			if p.Destructive() {
				break
			}
		}
	}
	return acc, nil
}

func (s *memoryStore) GetAllTuples() []*tuple.Tuple {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var acc []*tuple.Tuple
	for _, b := range s.buckets {
		b.mu.Lock()
		acc = append(acc, b.tuples...)
		b.mu.Unlock()
	}
	return acc
}

func (s *memoryStore) DeleteStorage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[tuple.Shape]*bucket)
}
