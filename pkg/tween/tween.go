// Package tween implements the single-property interpolation state machine.
//
// A Tween resolves its to/from PropertySpec against the live target once per
// activation (or once per cycle, see DiffMode) into per-property
// (baseline, delta) channels, then writes baseline + delta*ease(progress) on
// every Update. Time is pushed in by the caller: Update for sequential play,
// Goto for random-access seeking.
//
// Callback order inside one Update/Goto call:
//
//	OnAwake (once) -> OnStart (per cycle) -> OnUpdate -> OnEnd (per cycle) -> OnComplete (once)
//
// Destroying the tween from any callback is allowed; nothing fires afterwards.
package tween

import (
	"log"
	"math"

	"github.com/gonewx/tween/pkg/easing"
	"github.com/quasilyte/gmath"
)

// Infinite is the normalized repeat count for endless tweens.
// SetRepeat maps 0 and negative counts to it.
const Infinite = math.MaxInt

// DiffMode selects when baseline/delta channels are computed.
type DiffMode int

const (
	// DiffOnAwake computes the channels once, on the first qualifying update,
	// and keeps them for every repeat cycle.
	DiffOnAwake DiffMode = iota
	// DiffEveryCycle recomputes the channels from the live target at the
	// start of every cycle.
	DiffEveryCycle
)

// Callback is a lifecycle notification.
type Callback func(tw *Tween)

// channel is one resolved property: value = base + delta*eased.
type channel struct {
	key   string
	sub   string
	field bool
	base  float64
	delta float64
}

// Tween animates named properties of one target.
type Tween struct {
	target Target
	to     PropertySpec
	from   PropertySpec

	delay       float64
	duration    float64
	repeat      int
	repeatDelay float64
	yoyo        bool
	ease        easing.Func
	diffMode    DiffMode

	channels []channel

	awaked      bool
	started     bool
	ended       bool
	destroyed   bool
	repeatTimes int

	OnAwake    Callback
	OnStart    Callback
	OnUpdate   Callback
	OnEnd      Callback
	OnComplete Callback
}

// New creates an unbound tween: duration 1s, one cycle, linear easing.
func New() *Tween {
	return &Tween{
		duration: 1,
		repeat:   1,
		ease:     easing.Linear,
	}
}

// SetTarget binds the target. Binding does not start anything.
func (tw *Tween) SetTarget(target Target) *Tween {
	if !tw.destroyed {
		tw.target = target
	}
	return tw
}

// SetTo sets the end state.
func (tw *Tween) SetTo(spec PropertySpec) *Tween {
	tw.to = spec
	return tw
}

// SetFrom sets the start state; the tween runs from it to the live values.
// Ignored while a to spec is present.
func (tw *Tween) SetFrom(spec PropertySpec) *Tween {
	tw.from = spec
	return tw
}

// SetDelay sets the delay before the first cycle, in seconds.
func (tw *Tween) SetDelay(delay float64) *Tween {
	tw.delay = delay
	return tw
}

// SetDuration sets the length of one cycle, in seconds.
// Zero or negative durations jump straight to the terminal value.
func (tw *Tween) SetDuration(duration float64) *Tween {
	tw.duration = duration
	return tw
}

// SetRepeat sets the number of cycles; n <= 0 means Infinite.
func (tw *Tween) SetRepeat(n int) *Tween {
	if n <= 0 {
		n = Infinite
	}
	tw.repeat = n
	return tw
}

// SetRepeatDelay sets the pause between cycles, in seconds.
func (tw *Tween) SetRepeatDelay(d float64) *Tween {
	tw.repeatDelay = d
	return tw
}

// SetYoyo makes odd cycles run backwards.
func (tw *Tween) SetYoyo(yoyo bool) *Tween {
	tw.yoyo = yoyo
	return tw
}

// SetEase sets the easing function; nil means linear.
func (tw *Tween) SetEase(fn easing.Func) *Tween {
	if fn == nil {
		fn = easing.Linear
	}
	tw.ease = fn
	return tw
}

// SetEaseName looks the easing up by name; unknown names fall back to linear.
func (tw *Tween) SetEaseName(name string) *Tween {
	tw.ease = easing.Get(name)
	return tw
}

// SetDiffMode selects when channels are computed.
func (tw *Tween) SetDiffMode(mode DiffMode) *Tween {
	tw.diffMode = mode
	return tw
}

// Target returns the bound target, nil after Destroy.
func (tw *Tween) Target() Target { return tw.target }

// Delay returns the initial delay.
func (tw *Tween) Delay() float64 { return tw.delay }

// Duration returns the cycle length.
func (tw *Tween) Duration() float64 { return tw.duration }

// Repeat returns the normalized cycle count.
func (tw *Tween) Repeat() int { return tw.repeat }

// RepeatDelay returns the pause between cycles.
func (tw *Tween) RepeatDelay() float64 { return tw.repeatDelay }

// Yoyo reports whether odd cycles run backwards.
func (tw *Tween) Yoyo() bool { return tw.yoyo }

// DiffMode returns the channel computation mode.
func (tw *Tween) DiffMode() DiffMode { return tw.diffMode }

// Awaked reports whether channels were computed at least once.
func (tw *Tween) Awaked() bool { return tw.awaked }

// Started reports whether the current cycle has started.
func (tw *Tween) Started() bool { return tw.started }

// Ended reports whether every cycle has finished.
func (tw *Tween) Ended() bool { return tw.ended }

// Destroyed reports whether Destroy was called.
func (tw *Tween) Destroyed() bool { return tw.destroyed }

// RepeatTimes returns the number of completed cycles.
func (tw *Tween) RepeatTimes() int { return tw.repeatTimes }

// StartTime returns the start of the current cycle on the caller's timeline.
func (tw *Tween) StartTime() float64 {
	return tw.cycleStart(tw.repeatTimes)
}

// TotalDuration returns delay plus every cycle, +Inf for endless tweens.
func (tw *Tween) TotalDuration() float64 {
	if tw.repeat == Infinite {
		return math.Inf(1)
	}
	n := float64(tw.repeat)
	return tw.delay + tw.duration*n + tw.repeatDelay*(n-1)
}

func (tw *Tween) cycleStart(n int) float64 {
	return tw.delay + (tw.repeatDelay+tw.duration)*float64(n)
}

// Update advances the tween to currentTime on the caller's timeline.
//
// It does nothing before the current cycle's start time or after the tween
// has ended. When currentTime is past the cycle window the end-of-cycle
// transition runs instead of an ordinary progress write; at most one cycle
// ends per call.
func (tw *Tween) Update(currentTime float64) {
	if tw.destroyed || tw.ended || tw.target == nil {
		return
	}
	start := tw.StartTime()
	if currentTime < start {
		return
	}

	if !tw.awaked {
		tw.awaked = true
		tw.computeDiff()
		if !tw.fire(tw.OnAwake) {
			return
		}
	}

	if !tw.started {
		if tw.diffMode == DiffEveryCycle && tw.repeatTimes > 0 {
			tw.computeDiff()
		}
		tw.started = true
		if !tw.fire(tw.OnStart) {
			return
		}
	}

	p := tw.progress(currentTime - start)
	if p < 1 {
		tw.apply(tw.eased(p, tw.repeatTimes))
		tw.fire(tw.OnUpdate)
		return
	}
	tw.endCycle()
}

// endCycle writes the terminal value of the cycle that just finished and
// either arms the next cycle or ends the tween.
func (tw *Tween) endCycle() {
	finished := tw.repeatTimes
	tw.repeatTimes++

	tw.apply(tw.eased(1, finished))
	if !tw.fire(tw.OnUpdate) {
		return
	}

	if tw.repeatTimes < tw.repeat {
		tw.started = false
		tw.ended = false
		tw.fire(tw.OnEnd)
		return
	}

	tw.ended = true
	if !tw.fire(tw.OnEnd) {
		return
	}
	tw.fire(tw.OnComplete)
}

// Goto seeks to an absolute time without replaying intermediate frames.
//
// The cycle containing time is recomputed from scratch, so Goto works in
// both directions regardless of play history. Before the delay nothing is
// written; use Reset to restore the initial value.
func (tw *Tween) Goto(time float64) {
	if tw.destroyed {
		return
	}
	tw.repeatTimes = tw.cycleAt(time)
	tw.started = false
	tw.ended = false
	if time >= tw.StartTime() {
		tw.Update(time)
	}
}

// cycleAt returns the index of the cycle time falls into, clamped to the
// existing cycles.
func (tw *Tween) cycleAt(time float64) int {
	last := tw.repeat - 1
	span := tw.duration + tw.repeatDelay
	if span <= 0 {
		if time >= tw.delay && tw.repeat != Infinite {
			return last
		}
		return 0
	}
	n := math.Floor((time - tw.delay) / span)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n >= float64(last) {
		return last
	}
	return int(n)
}

// Reset rewinds to the state before the first cycle. An awaked tween writes
// its t=0 value immediately so a scrubbed timeline shows the initial state.
func (tw *Tween) Reset() {
	if tw.destroyed {
		return
	}
	tw.repeatTimes = 0
	tw.started = false
	tw.ended = false
	if tw.awaked && tw.target != nil {
		tw.apply(tw.eased(0, 0))
	}
}

// Destroy detaches the target and drops every callback. Idempotent.
func (tw *Tween) Destroy() {
	if tw.destroyed {
		return
	}
	tw.destroyed = true
	tw.target = nil
	tw.to = nil
	tw.from = nil
	tw.channels = nil
	tw.OnAwake = nil
	tw.OnStart = nil
	tw.OnUpdate = nil
	tw.OnEnd = nil
	tw.OnComplete = nil
}

// fire runs cb and reports whether the tween is still alive afterwards.
func (tw *Tween) fire(cb Callback) bool {
	if tw.destroyed {
		return false
	}
	if cb != nil {
		cb(tw)
	}
	return !tw.destroyed
}

// progress maps elapsed cycle time into [0,1].
func (tw *Tween) progress(elapsed float64) float64 {
	if tw.duration <= 0 {
		return 1
	}
	return gmath.Clamp(elapsed/tw.duration, 0, 1)
}

// eased applies the easing for the given cycle; odd yoyo cycles evaluate
// the curve on the mirrored timeline.
func (tw *Tween) eased(p float64, cycle int) float64 {
	if tw.yoyo && cycle%2 == 1 {
		return tw.ease(1 - p)
	}
	return tw.ease(p)
}

func (tw *Tween) apply(eased float64) {
	target := tw.target
	if target == nil {
		return
	}
	for _, ch := range tw.channels {
		v := ch.base + ch.delta*eased
		if ch.field {
			target.SetField(ch.key, ch.sub, v)
		} else {
			target.SetProperty(ch.key, v)
		}
	}
}

// computeDiff resolves the active spec against the live target.
// Relative descriptors are resolved here and nowhere else.
func (tw *Tween) computeDiff() {
	tw.channels = tw.channels[:0]
	spec, reverse := tw.to, false
	if spec == nil {
		spec, reverse = tw.from, true
	}

	for _, key := range spec.Keys() {
		v := spec[key]
		if v.IsRecord() {
			for _, sub := range PropertySpec(v.Fields).Keys() {
				sv := v.Fields[sub]
				if sv.IsRecord() {
					continue
				}
				cur, ok := tw.target.Field(key, sub)
				if !ok {
					log.Printf("[Tween] property %s.%s not found on target, skipped", key, sub)
					continue
				}
				tw.channels = append(tw.channels, newChannel(key, sub, true, cur, sv.Resolve(cur), reverse))
			}
			continue
		}
		cur, ok := tw.target.Property(key)
		if !ok {
			log.Printf("[Tween] property %s not found on target, skipped", key)
			continue
		}
		tw.channels = append(tw.channels, newChannel(key, "", false, cur, v.Resolve(cur), reverse))
	}
}

func newChannel(key, sub string, field bool, current, resolved float64, reverse bool) channel {
	ch := channel{key: key, sub: sub, field: field}
	if reverse {
		// from: start at the resolved value, arrive at the live one
		ch.base = resolved
		ch.delta = current - resolved
	} else {
		ch.base = current
		ch.delta = resolved - current
	}
	return ch
}
