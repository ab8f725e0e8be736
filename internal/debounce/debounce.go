// Package debounce delays a rapidly changing input until it has been quiet
// for a fixed period, and guards asynchronous results against reordering.
package debounce

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultQuiet is the quiet period used when none is configured
const DefaultQuiet = 300 * time.Millisecond

// Generation is a monotonically increasing request counter.
// Tag each request with Next and drop any result whose tag is not Current.
type Generation struct {
	n uint64
}

// Next starts a new generation and returns its tag
func (g *Generation) Next() uint64 {
	g.n++
	return g.n
}

// Current reports whether tag belongs to the latest generation
func (g *Generation) Current(tag uint64) bool {
	return tag == g.n
}

// Value returns the latest tag
func (g *Generation) Value() uint64 {
	return g.n
}

// SettledMsg is delivered when an input has been quiet for the full period.
// ID identifies the controller that scheduled it.
type SettledMsg[T any] struct {
	ID    int
	Gen   uint64
	Value T
}

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Controller holds a pending and a stable value. Each Input restarts the quiet
// period; only the tick carrying the latest generation settles. Superseded
// ticks are discarded on arrival, so at most one value is emitted per burst.
//
// A Controller belongs to a Bubble Tea model and is not safe for concurrent use.
type Controller[T comparable] struct {
	id      int
	quiet   time.Duration
	gen     Generation
	pending T
	stable  T
}

// New creates a controller with the given quiet period (DefaultQuiet when <= 0)
func New[T comparable](quiet time.Duration) *Controller[T] {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Controller[T]{id: nextID(), quiet: quiet}
}

// Input records v as the pending value and returns the command that settles
// it after the quiet period. Re-entering the pending value restarts nothing
// and returns nil.
func (c *Controller[T]) Input(v T) tea.Cmd {
	if v == c.pending && c.gen.Value() > 0 {
		return nil
	}
	c.pending = v
	gen := c.gen.Next()
	id := c.id
	return tea.Tick(c.quiet, func(time.Time) tea.Msg {
		return SettledMsg[T]{ID: id, Gen: gen, Value: v}
	})
}

// Settle applies msg if it is the latest tick for this controller.
// It returns the new stable value and true, or the zero value and false
// for superseded or foreign ticks.
func (c *Controller[T]) Settle(msg SettledMsg[T]) (T, bool) {
	var zero T
	if msg.ID != c.id || !c.gen.Current(msg.Gen) {
		return zero, false
	}
	c.stable = msg.Value
	return c.stable, true
}

// Flush settles the pending value immediately, invalidating any scheduled tick.
// It returns the message that was applied.
func (c *Controller[T]) Flush() SettledMsg[T] {
	msg := SettledMsg[T]{ID: c.id, Gen: c.gen.Next(), Value: c.pending}
	c.stable = msg.Value
	return msg
}

// Reset sets pending and stable to v without scheduling anything
func (c *Controller[T]) Reset(v T) {
	c.gen.Next()
	c.pending = v
	c.stable = v
}

// Pending returns the latest input, settled or not
func (c *Controller[T]) Pending() T { return c.pending }

// Stable returns the last settled value
func (c *Controller[T]) Stable() T { return c.stable }

// Quiet returns the quiet period
func (c *Controller[T]) Quiet() time.Duration { return c.quiet }

// Owns reports whether msg was scheduled by this controller
func (c *Controller[T]) Owns(msg SettledMsg[T]) bool { return msg.ID == c.id }
