package lockset

import "sync"

// LockSet serializes critical sections per key. Two goroutines holding
// different keys proceed independently; the same key is mutually exclusive.
type LockSet struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New constructs an empty lock set.
func New() *LockSet {
	return &LockSet{locks: make(map[string]*entry)}
}

// Lock acquires the mutex for key, creating it on first use.
func (s *LockSet) Lock(key string) {
	s.mu.Lock()
	e, ok := s.locks[key]
	if !ok {
		e = &entry{}
		s.locks[key] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key and drops it once nobody waits.
func (s *LockSet) Unlock(key string) {
	s.mu.Lock()
	e, ok := s.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(s.locks, key)
		}
	}
	s.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
