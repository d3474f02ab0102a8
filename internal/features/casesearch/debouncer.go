package casesearch

import (
	"sync"
	"time"
)

// Debouncer collapses a burst of calls into one call fired after a quiet
// period. Every Trigger issues a new sequence token and only the most recent
// token is current, so work started for an older token can be discarded.
type Debouncer struct {
	wait time.Duration

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{wait: wait}
}

// Trigger replaces any pending call with fn and returns fn's token.
func (d *Debouncer) Trigger(fn func(seq uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() { fn(seq) })
	return seq
}

func (d *Debouncer) IsLatest(seq uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return seq == d.seq
}

// Stop cancels the pending call and invalidates every issued token.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
