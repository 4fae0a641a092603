// Package feedback holds the single live, auto-expiring message of one surface.
package feedback

import (
	"sync"
	"time"
)

type Severity int

const (
	Success Severity = iota
	Error
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "success"
}

// Message is what the surface shows. ExpiresAfter of zero means it stays
// until cleared or replaced.
type Message struct {
	Text         string
	Severity     Severity
	ExpiresAfter time.Duration
}

type Timer interface {
	Stop() bool
}

type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// RealClock schedules on the runtime timer.
var RealClock Clock = realClock{}

type Channel struct {
	mu       sync.Mutex
	clock    Clock
	current  *Message
	timer    Timer
	then     func()
	gen      uint64
	onChange func()
}

func New(clock Clock) *Channel {
	if clock == nil {
		clock = RealClock
	}
	return &Channel{clock: clock}
}

// OnChange sets a hook run after the message is posted, cleared or expires.
func (c *Channel) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Channel) Current() (Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return Message{}, false
	}
	return *c.current, true
}

// Post shows text for d, replacing any pending message and its timer.
func (c *Channel) Post(text string, severity Severity, d time.Duration) {
	c.PostThen(text, severity, d, nil)
}

// PostSticky shows text with no timer.
func (c *Channel) PostSticky(text string, severity Severity) {
	c.PostThen(text, severity, 0, nil)
}

// PostThen shows text for d and runs then once the message expires. A later
// post or Clear discards then without running it.
func (c *Channel) PostThen(text string, severity Severity, d time.Duration, then func()) {
	c.mu.Lock()
	c.stopLocked()
	c.gen++
	gen := c.gen
	c.current = &Message{Text: text, Severity: severity, ExpiresAfter: d}
	c.then = then
	if d > 0 {
		c.timer = c.clock.AfterFunc(d, func() { c.expire(gen) })
	}
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
}

// Clear removes the message now and cancels its timer and follow-up.
func (c *Channel) Clear() {
	c.mu.Lock()
	had := c.current != nil
	c.stopLocked()
	c.gen++
	c.current = nil
	c.then = nil
	hook := c.onChange
	c.mu.Unlock()

	if had && hook != nil {
		hook()
	}
}

// CancelFollowUp keeps the current message on screen until it expires but
// drops whatever PostThen scheduled to run afterwards.
func (c *Channel) CancelFollowUp() {
	c.mu.Lock()
	c.then = nil
	c.mu.Unlock()
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	then := c.then
	c.current = nil
	c.timer = nil
	c.then = nil
	hook := c.onChange
	c.mu.Unlock()

	if hook != nil {
		hook()
	}
	if then != nil {
		then()
	}
}

func (c *Channel) stopLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
