// Package watchdog guards an active session against inactivity: any user
// input signal restarts a countdown, and silence for the full timeout forces
// a logout through the session controller.
package watchdog

import "sync"

// Signal identifies one kind of user input.
type Signal string

const (
	SignalPointerMove Signal = "pointer-move"
	SignalKeyPress    Signal = "key-press"
	SignalTouchStart  Signal = "touch-start"
	SignalScroll      Signal = "scroll"
)

// SignalSource is the capability the monitor subscribes to. Subscribe
// returns the matching unsubscribe function; the monitor guarantees
// symmetric pairing.
type SignalSource interface {
	Subscribe(fn func(Signal)) func()
}

// Feed is a fan-out SignalSource. The embedding UI calls Emit for every
// observed input event.
type Feed struct {
	mu      sync.Mutex
	subs    map[int]func(Signal)
	nextSub int
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(Signal))}
}

func (f *Feed) Subscribe(fn func(Signal)) func() {
	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Emit delivers the signal to all current subscribers. Callbacks run outside
// the feed's lock.
func (f *Feed) Emit(s Signal) {
	f.mu.Lock()
	fns := make([]func(Signal), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
