package booking

import "sync"

// lockRegistry hands out one mutex per request ID so transitions for a
// single request serialize while different requests proceed independently.
// Entries are refcounted and dropped when the last holder releases.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*requestLock
}

type requestLock struct {
	mu   sync.Mutex
	refs int
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[string]*requestLock)}
}

// acquire blocks until the per-request lock is held and returns the release
// function. The lock must never be held across a blocking external call.
func (r *lockRegistry) acquire(requestID string) func() {
	r.mu.Lock()
	l, ok := r.locks[requestID]
	if !ok {
		l = &requestLock{}
		r.locks[requestID] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, requestID)
		}
		r.mu.Unlock()
	}
}
