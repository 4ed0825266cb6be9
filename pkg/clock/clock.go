// Package clock provides the frame clock that self-driven animations hook into.
//
// The clock owns no goroutine: the host game loop calls Tick once per frame
// (or Step, which derives the delta from ebiten's tick rate) and every
// registered handler receives the frame delta in seconds.
package clock

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Handler receives the frame delta in seconds.
type Handler func(dt float64)

type entry struct {
	owner   any
	handler Handler
}

// FrameClock runs handlers once per tick in registration order.
// One handler per owner; registering the same owner again replaces the
// handler but keeps its position.
type FrameClock struct {
	entries []entry
	scale   float64
	elapsed float64
	frames  uint64
}

// New creates a clock with time scale 1.
func New() *FrameClock {
	return &FrameClock{scale: 1}
}

// Add registers handler for owner. Idempotent per owner.
func (c *FrameClock) Add(owner any, handler Handler) {
	if owner == nil || handler == nil {
		return
	}
	for i := range c.entries {
		if c.entries[i].owner == owner {
			c.entries[i].handler = handler
			return
		}
	}
	c.entries = append(c.entries, entry{owner: owner, handler: handler})
}

// Remove unregisters owner. Removing an unknown owner is a no-op.
func (c *FrameClock) Remove(owner any) {
	for i := range c.entries {
		if c.entries[i].owner == owner {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			return
		}
	}
}

// Has reports whether owner is registered.
func (c *FrameClock) Has(owner any) bool {
	for i := range c.entries {
		if c.entries[i].owner == owner {
			return true
		}
	}
	return false
}

// Len returns the number of registered owners.
func (c *FrameClock) Len() int { return len(c.entries) }

// SetTimeScale scales every delta passed to handlers. Negative values clamp to 0.
func (c *FrameClock) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	c.scale = scale
}

// TimeScale returns the current time scale.
func (c *FrameClock) TimeScale() float64 { return c.scale }

// Elapsed returns the scaled time accumulated over all ticks.
func (c *FrameClock) Elapsed() float64 { return c.elapsed }

// Frames returns the number of ticks so far.
func (c *FrameClock) Frames() uint64 { return c.frames }

// Tick runs every handler with dt*TimeScale.
//
// Handlers may add or remove owners (including themselves) while the tick
// is running: removed owners are skipped, added owners start next tick.
func (c *FrameClock) Tick(dt float64) {
	dt *= c.scale
	c.elapsed += dt
	c.frames++

	snapshot := make([]entry, len(c.entries))
	copy(snapshot, c.entries)
	for _, e := range snapshot {
		if !c.Has(e.owner) {
			continue
		}
		e.handler(dt)
	}
}

// Step ticks with the delta of one ebiten update.
func (c *FrameClock) Step() {
	c.Tick(TickDelta())
}

// TickDelta returns the duration of one ebiten update in seconds.
func TickDelta() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(tps)
}
