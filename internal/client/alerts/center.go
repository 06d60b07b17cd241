// Package alerts holds the transient user-facing notice. A published alert
// replaces the previous one and clears itself after a fixed display duration.
package alerts

import (
	"sync"
	"time"

	"github.com/agroscanai/agroscan-cli/internal/client/models"
)

const DefaultTTL = 5 * time.Second

type Center struct {
	mu      sync.Mutex
	ttl     time.Duration
	current models.Alert
	timer   *time.Timer
	subs    map[int]func(models.Alert)
	nextSub int
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, subs: make(map[int]func(models.Alert))}
}

// Publish replaces the current alert and restarts the clear countdown.
func (c *Center) Publish(text string, kind models.AlertKind) {
	c.mu.Lock()
	c.current = models.Alert{Text: text, Kind: kind}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.ttl, c.clear)
	fns := c.snapshotSubs()
	alert := c.current
	c.mu.Unlock()

	for _, fn := range fns {
		fn(alert)
	}
}

// Current returns the active alert; the zero Alert when nothing is shown.
func (c *Center) Current() models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Take returns the active alert and clears it immediately. Useful for
// one-shot consumers such as a line-based UI.
func (c *Center) Take() models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	a := c.current
	c.current = models.Alert{}
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	return a
}

// Subscribe registers fn for every published alert and returns the matching
// unsubscribe function.
func (c *Center) Subscribe(fn func(models.Alert)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Close cancels the pending clear timer.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Center) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = models.Alert{}
	c.timer = nil
}

func (c *Center) snapshotSubs() []func(models.Alert) {
	fns := make([]func(models.Alert), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}
