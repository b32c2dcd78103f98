package scheduling

import (
	"sync"
	"time"
)

type dayLock struct {
	mu   sync.Mutex
	refs int
}

// dayLocks serializes availability-check-plus-commit per (trainer, day) so
// two concurrent bookings cannot both pass the overlap check. Entries are
// refcounted and removed once the last holder releases, so the map stays
// bounded by the number of in-flight bookings.
type dayLocks struct {
	mu    sync.Mutex
	locks map[string]*dayLock
}

func newDayLocks() *dayLocks {
	return &dayLocks{locks: make(map[string]*dayLock)}
}

func (d *dayLocks) lock(trainerID string, day time.Time) func() {
	key := trainerID + "|" + day.Format("2006-01-02")

	d.mu.Lock()
	l, ok := d.locks[key]
	if !ok {
		l = &dayLock{}
		d.locks[key] = l
	}
	l.refs++
	d.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		d.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(d.locks, key)
		}
		d.mu.Unlock()
	}
}
