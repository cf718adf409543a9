package watcher

import "time"

type expiry struct {
	path string
	gen  uint64
}

type pendingPath struct {
	timer *time.Timer
	gen   uint64
}

// debouncer keeps one sliding timer per path. It is not safe for concurrent use;
// the watcher loop goroutine owns it.
type debouncer struct {
	duration time.Duration
	entries  map[string]*pendingPath
	next     uint64
	fire     func(expiry)
}

func newDebouncer(duration time.Duration, fire func(expiry)) *debouncer {
	return &debouncer{
		duration: duration,
		entries:  make(map[string]*pendingPath),
		fire:     fire,
	}
}

// schedule (re)starts the timer for path and reports whether a pending timer was replaced.
func (d *debouncer) schedule(path string) bool {
	d.next++
	exp := expiry{path: path, gen: d.next}

	entry, coalesced := d.entries[path]
	if coalesced {
		entry.timer.Stop()
	} else {
		entry = &pendingPath{}
		d.entries[path] = entry
	}
	entry.gen = exp.gen
	entry.timer = time.AfterFunc(d.duration, func() {
		d.fire(exp)
	})
	return coalesced
}

// pop removes the entry if exp is its latest generation. A stale generation
// means the path was written again after the timer fired.
func (d *debouncer) pop(exp expiry) bool {
	entry, ok := d.entries[exp.path]
	if !ok || entry.gen != exp.gen {
		return false
	}
	delete(d.entries, exp.path)
	return true
}

func (d *debouncer) cancel(path string) bool {
	entry, ok := d.entries[path]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(d.entries, path)
	return true
}

func (d *debouncer) pending() int {
	return len(d.entries)
}

func (d *debouncer) stop() {
	for path, entry := range d.entries {
		entry.timer.Stop()
		delete(d.entries, path)
	}
}
