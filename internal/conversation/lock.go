package conversation

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// ErrTurnInProgress is returned when a second turn arrives for a
// conversation whose previous turn is still running.
var ErrTurnInProgress = errors.New("a turn is already in progress for this conversation")

// turnLock pairs the semaphore with a count of goroutines currently between
// lookup and release, so the registry entry can be dropped once idle.
type turnLock struct {
	sem  *semaphore.Weighted
	refs int
}

// turnLocks serializes turns per conversation. A turn that cannot take the
// lock fails fast rather than queueing; the client retries after the
// in-flight turn finishes. Entries are removed when no turn references them.
type turnLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*turnLock
}

func newTurnLocks() *turnLocks {
	return &turnLocks{locks: make(map[uuid.UUID]*turnLock)}
}

func (t *turnLocks) acquire(id uuid.UUID) (release func(), err error) {
	t.mu.Lock()
	l, ok := t.locks[id]
	if !ok {
		l = &turnLock{sem: semaphore.NewWeighted(1)}
		t.locks[id] = l
	}
	l.refs++
	t.mu.Unlock()

	if !l.sem.TryAcquire(1) {
		t.unref(id, l)
		return nil, ErrTurnInProgress
	}
	return func() {
		l.sem.Release(1)
		t.unref(id, l)
	}, nil
}

func (t *turnLocks) unref(id uuid.UUID, l *turnLock) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(t.locks, id)
	}
}

func (t *turnLocks) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.locks)
}
