package scheduling

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayLocksEvictOnRelease(t *testing.T) {
	d := newDayLocks()
	day := time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC)

	unlock := d.lock("t1", day)
	d.mu.Lock()
	assert.Len(t, d.locks, 1)
	d.mu.Unlock()

	unlock()
	d.mu.Lock()
	assert.Empty(t, d.locks)
	d.mu.Unlock()
}

func TestDayLocksSerializeSameDay(t *testing.T) {
	d := newDayLocks()
	day := time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := d.lock("t1", day)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, counter)
	d.mu.Lock()
	assert.Empty(t, d.locks)
	d.mu.Unlock()
}

func TestDayLocksIndependentAcrossDays(t *testing.T) {
	d := newDayLocks()
	monday := time.Date(2023, 12, 11, 0, 0, 0, 0, time.UTC)
	tuesday := time.Date(2023, 12, 12, 0, 0, 0, 0, time.UTC)

	unlockMon := d.lock("t1", monday)
	defer unlockMon()

	done := make(chan struct{})
	go func() {
		unlock := d.lock("t1", tuesday)
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("locking a different day blocked on the held one")
	}
}
