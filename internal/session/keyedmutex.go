package session

import "sync"

// KeyedMutex serializes work per session key. Two rapid taps on the same
// message must not both read the session, both fetch content and race each
// other's view write; taps on different messages stay independent.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*keyLock)}
}

// Lock acquires the mutex for key and returns its unlock function. Lock
// entries are reference-counted and removed once the last holder releases,
// so the map does not accumulate a lock per expired session.
func (m *KeyedMutex) Lock(key string) func() {
	m.mu.Lock()
	entry, ok := m.locks[key]
	if !ok {
		entry = &keyLock{}
		m.locks[key] = entry
	}
	entry.refs++
	m.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		m.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
