package feedback

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostExpires(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	c.Post("Logged in successfully!", Success, 3*time.Second)
	msg, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Logged in successfully!", msg.Text)
	assert.Equal(t, Success, msg.Severity)

	clock.Advance(2 * time.Second)
	_, ok = c.Current()
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Current()
	assert.False(t, ok)
}

func TestPostThenRunsOnlyAfterExpiry(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	navigated := 0
	c.PostThen("Successfully logged out!", Success, 5*time.Second, func() { navigated++ })

	clock.Advance(4 * time.Second)
	assert.Equal(t, 0, navigated)

	clock.Advance(time.Second)
	assert.Equal(t, 1, navigated)
	_, ok := c.Current()
	assert.False(t, ok)
}

func TestNewPostSupersedesPending(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	first := 0
	c.PostThen("first", Success, 3*time.Second, func() { first++ })
	clock.Advance(2 * time.Second)

	c.Post("second", Error, 3*time.Second)
	assert.Equal(t, 1, clock.Pending())

	clock.Advance(time.Second)
	msg, ok := c.Current()
	require.True(t, ok, "old timer must not remove the new message")
	assert.Equal(t, "second", msg.Text)
	assert.Equal(t, 0, first)

	clock.Advance(2 * time.Second)
	_, ok = c.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, first)
}

func TestClearCancelsFollowUp(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	navigated := false
	c.PostThen("bye", Success, time.Second, func() { navigated = true })
	c.Clear()

	_, ok := c.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Minute)
	assert.False(t, navigated)
}

func TestCancelFollowUpKeepsMessage(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	navigated := 0
	c.PostThen("Successfully logged out!", Success, 5*time.Second, func() { navigated++ })
	c.CancelFollowUp()

	msg, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Successfully logged out!", msg.Text)

	clock.Advance(5 * time.Second)
	_, ok = c.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, navigated)

	c.PostThen("Logged in successfully!", Success, time.Second, func() { navigated++ })
	clock.Advance(time.Second)
	assert.Equal(t, 1, navigated)
}

func TestStickyDoesNotExpire(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	c.PostSticky("Email already registered", Error)
	assert.Equal(t, 0, clock.Pending())

	clock.Advance(time.Hour)
	msg, ok := c.Current()
	require.True(t, ok)
	assert.Equal(t, "Email already registered", msg.Text)
	assert.Equal(t, Error, msg.Severity)
}

func TestOnChange(t *testing.T) {
	clock := NewManualClock()
	c := New(clock)

	changes := 0
	c.OnChange(func() { changes++ })

	c.Post("a", Success, time.Second)
	clock.Advance(time.Second)
	c.Clear()
	assert.Equal(t, 2, changes, "clearing an empty channel is silent")
}

func TestRealClock(t *testing.T) {
	c := New(nil)

	done := make(chan struct{})
	c.PostThen("x", Success, 10*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("follow-up never ran")
	}
	_, ok := c.Current()
	assert.False(t, ok)
}
