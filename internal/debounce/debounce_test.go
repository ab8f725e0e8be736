package debounce

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// settle runs a scheduled tick and feeds the result back to the controller
func settle[T comparable](t *testing.T, c *Controller[T], cmd tea.Cmd) (T, bool) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a scheduled command")
	}
	msg, ok := cmd().(SettledMsg[T])
	if !ok {
		t.Fatalf("command produced %T, want SettledMsg", cmd())
	}
	return c.Settle(msg)
}

func TestGeneration(t *testing.T) {
	var g Generation
	a := g.Next()
	b := g.Next()

	if g.Current(a) {
		t.Error("superseded tag reported current")
	}
	if !g.Current(b) {
		t.Error("latest tag not reported current")
	}
	if b <= a {
		t.Errorf("Next() = %d after %d, want increasing", b, a)
	}
}

func TestController_OnlyLastInputSettles(t *testing.T) {
	c := New[string](time.Millisecond)

	var cmds []tea.Cmd
	for _, q := range []string{"b", "ba", "bat", "batm", "batma", "batman"} {
		cmds = append(cmds, c.Input(q))
	}

	if c.Pending() != "batman" {
		t.Errorf("Pending() = %q, want batman", c.Pending())
	}
	if c.Stable() != "" {
		t.Errorf("Stable() before settling = %q, want empty", c.Stable())
	}

	settled := 0
	var last string
	for _, cmd := range cmds {
		if v, ok := settle(t, c, cmd); ok {
			settled++
			last = v
		}
	}

	if settled != 1 {
		t.Fatalf("settled %d values, want exactly 1", settled)
	}
	if last != "batman" || c.Stable() != "batman" {
		t.Errorf("settled %q (stable %q), want batman", last, c.Stable())
	}
}

func TestController_WaitsForQuietPeriod(t *testing.T) {
	quiet := 20 * time.Millisecond
	c := New[string](quiet)
	cmd := c.Input("heat")

	start := time.Now()
	if _, ok := settle(t, c, cmd); !ok {
		t.Fatal("tick did not settle")
	}
	if elapsed := time.Since(start); elapsed < quiet {
		t.Errorf("settled after %v, want at least %v", elapsed, quiet)
	}
}

func TestController_SameValueDoesNotReschedule(t *testing.T) {
	c := New[string](time.Millisecond)

	first := c.Input("alien")
	if again := c.Input("alien"); again != nil {
		t.Error("re-entering the pending value should not schedule a tick")
	}
	if v, ok := settle(t, c, first); !ok || v != "alien" {
		t.Errorf("settle = %q, %v; want alien, true", v, ok)
	}
}

func TestController_IgnoresForeignTicks(t *testing.T) {
	a := New[string](time.Millisecond)
	b := New[string](time.Millisecond)

	cmd := a.Input("x")
	b.Input("x")

	msg := cmd().(SettledMsg[string])
	if b.Owns(msg) {
		t.Error("controller b should not own a's tick")
	}
	if _, ok := b.Settle(msg); ok {
		t.Error("controller b settled a's tick")
	}
	if _, ok := a.Settle(msg); !ok {
		t.Error("controller a rejected its own tick")
	}
}

func TestController_FlushSupersedesTick(t *testing.T) {
	c := New[string](time.Millisecond)
	cmd := c.Input("dune")

	msg := c.Flush()
	if msg.Value != "dune" || c.Stable() != "dune" {
		t.Errorf("Flush() = %+v, stable %q", msg, c.Stable())
	}
	if _, ok := settle(t, c, cmd); ok {
		t.Error("tick scheduled before Flush should be discarded")
	}
}

func TestController_Reset(t *testing.T) {
	c := New[int](time.Millisecond)
	cmd := c.Input(5)
	c.Reset(0)

	if c.Pending() != 0 || c.Stable() != 0 {
		t.Errorf("after Reset pending=%d stable=%d, want 0 and 0", c.Pending(), c.Stable())
	}
	if _, ok := settle(t, c, cmd); ok {
		t.Error("tick scheduled before Reset should be discarded")
	}
}

func TestNew_DefaultQuiet(t *testing.T) {
	if got := New[string](0).Quiet(); got != DefaultQuiet {
		t.Errorf("Quiet() = %v, want %v", got, DefaultQuiet)
	}
}
