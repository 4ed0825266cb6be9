// Package track drives a flat set of property tweens bound to descendants of
// one owner, all positioned by a single externally supplied time value.
//
// An Animator never hooks into a clock. The host either calls Update with a
// frame delta or Goto with an absolute time (an editor playhead, say). The
// animator has its own duration and repeat count layered over whatever
// repeat settings the individual tracks carry: when the animator's time
// crosses its duration it emits SignalEnd and either wraps or emits
// SignalComplete.
package track

import (
	"log"

	"github.com/gonewx/tween/pkg/tween"
)

// Signal names emitted through the animator's Emitter.
const (
	// SignalTrackStart fires each time a track starts a cycle. Payload: TrackEvent.
	SignalTrackStart = "track:start"
	// SignalTrackEnd fires each time a track finishes a cycle. Payload: TrackEvent.
	SignalTrackEnd = "track:end"
	// SignalEnd fires each time the animator crosses its duration. Payload: *Animator.
	SignalEnd = "animator:end"
	// SignalComplete fires once after the last animator cycle. Payload: *Animator.
	SignalComplete = "animator:complete"
)

// Finder resolves track targets inside the owner's subtree.
type Finder interface {
	Lookup(id string) (tween.Target, bool)
}

// Emitter receives lifecycle signals. *signal.Bus satisfies it.
type Emitter interface {
	Emit(name string, payload any)
}

// TrackEvent is the payload of the per-track signals.
type TrackEvent struct {
	Animator *Animator
	// Index is the position of the track's Spec in the SetTracks argument.
	Index    int
	TargetID string
}

// Spec describes one track.
type Spec struct {
	TargetID string
	Delay    float64
	Duration float64 // 0 keeps the 1s default
	Easing   string
	// Repeat is the track cycle count: 0 keeps a single cycle, negative
	// repeats forever. Unlike tween.SetRepeat, 0 is not infinite here.
	Repeat      int
	RepeatDelay float64
	Yoyo        bool

	// Initial is written onto the target as soon as the track is created.
	Initial map[string]any
	From    map[string]any
	To      map[string]any
}

// Track is one live track.
type Track struct {
	Spec  Spec
	Index int
	Tween *tween.Tween
}

// Animator is the multi-track driver.
type Animator struct {
	// Name is informational, FromClip sets it to the clip name.
	Name string
	// TimeScale multiplies every Update delta.
	TimeScale float64

	owner   Finder
	emitter Emitter
	tracks  []*Track

	duration    float64
	repeat      int
	repeatTimes int
	currentTime float64
	paused      bool
	destroyed   bool
}

// New creates an empty animator. emitter may be nil.
func New(owner Finder, emitter Emitter) *Animator {
	return &Animator{
		TimeScale: 1,
		owner:     owner,
		emitter:   emitter,
		repeat:    1,
	}
}

// SetDuration sets the length of one animator cycle in seconds. A zero
// duration disables Update.
func (a *Animator) SetDuration(d float64) *Animator {
	if d < 0 {
		d = 0
	}
	a.duration = d
	return a
}

// SetRepeat sets the animator cycle count; n <= 0 means forever.
func (a *Animator) SetRepeat(n int) *Animator {
	if n <= 0 {
		n = tween.Infinite
	}
	a.repeat = n
	return a
}

// SetTracks replaces the tracks. Specs whose target cannot be resolved are
// skipped. It returns the number of tracks created.
func (a *Animator) SetTracks(specs []Spec) int {
	if a.destroyed {
		return 0
	}
	a.clearTracks()

	for i, spec := range specs {
		target, ok := a.lookup(spec.TargetID)
		if !ok {
			log.Printf("[Track] target %q not found, track #%d skipped", spec.TargetID, i)
			continue
		}

		if len(spec.Initial) > 0 {
			tween.Apply(target, tween.ParseSpec(spec.Initial))
		}

		tr := &Track{Spec: spec, Index: i}
		tr.Tween = tween.New().SetProperties(a.tweenProps(spec, target, tr))
		a.tracks = append(a.tracks, tr)
	}
	return len(a.tracks)
}

func (a *Animator) lookup(id string) (tween.Target, bool) {
	if a.owner == nil || id == "" {
		return nil, false
	}
	return a.owner.Lookup(id)
}

// tweenProps maps a Spec onto tween.SetProperties keys.
func (a *Animator) tweenProps(spec Spec, target tween.Target, tr *Track) map[string]any {
	props := map[string]any{
		"target":      target,
		"delay":       spec.Delay,
		"repeatDelay": spec.RepeatDelay,
		"yoyo":        spec.Yoyo,
		"onStart": func(*tween.Tween) {
			a.emit(SignalTrackStart, TrackEvent{Animator: a, Index: tr.Index, TargetID: tr.Spec.TargetID})
		},
		"onEnd": func(*tween.Tween) {
			a.emit(SignalTrackEnd, TrackEvent{Animator: a, Index: tr.Index, TargetID: tr.Spec.TargetID})
		},
	}
	if spec.Duration > 0 {
		props["duration"] = spec.Duration
	}
	if spec.Easing != "" {
		props["easing"] = spec.Easing
	}
	if spec.Repeat != 0 {
		props["repeat"] = spec.Repeat
	}
	if spec.To != nil {
		props["to"] = spec.To
	}
	if spec.From != nil {
		props["from"] = spec.From
	}
	return props
}

// Tracks returns the live tracks.
func (a *Animator) Tracks() []*Track { return a.tracks }

// Len returns the number of live tracks.
func (a *Animator) Len() int { return len(a.tracks) }

// Duration returns the cycle length.
func (a *Animator) Duration() float64 { return a.duration }

// Repeat returns the normalized cycle count.
func (a *Animator) Repeat() int { return a.repeat }

// RepeatTimes returns the number of finished animator cycles.
func (a *Animator) RepeatTimes() int { return a.repeatTimes }

// CurrentTime returns the playhead position inside the current cycle.
func (a *Animator) CurrentTime() float64 { return a.currentTime }

// Paused reports whether Update is suspended.
func (a *Animator) Paused() bool { return a.paused }

// Destroyed reports whether Destroy was called.
func (a *Animator) Destroyed() bool { return a.destroyed }

// Completed reports whether every animator cycle has finished.
func (a *Animator) Completed() bool {
	return a.repeatTimes >= a.repeat
}

// Pause suspends Update. Time and track state are left untouched.
func (a *Animator) Pause() { a.paused = true }

// Resume re-enables Update.
func (a *Animator) Resume() { a.paused = false }

// Goto moves the playhead to time and repositions every track there.
// Works while paused and in both directions.
func (a *Animator) Goto(time float64) {
	if a.destroyed {
		return
	}
	a.currentTime = time
	a.seekTracks(time)
}

// Restart clears the cycle counter and seeks to 0.
func (a *Animator) Restart() {
	if a.destroyed {
		return
	}
	a.repeatTimes = 0
	a.Goto(0)
}

// Update advances the playhead by delta*TimeScale and forwards the new time
// to every track. It is a no-op while paused, when the duration is zero, and
// once the playhead has reached the duration of the final cycle.
func (a *Animator) Update(delta float64) {
	if a.destroyed || a.paused || a.duration == 0 || a.currentTime >= a.duration {
		return
	}

	a.currentTime += delta * a.TimeScale
	for _, tr := range a.tracks {
		tr.Tween.Update(a.currentTime)
		if a.destroyed {
			return
		}
	}

	if a.currentTime < a.duration {
		return
	}

	// a delta spanning several cycles ends each of them
	for a.currentTime >= a.duration {
		a.emit(SignalEnd, a)
		if a.destroyed {
			return
		}
		a.repeatTimes++
		if a.repeatTimes >= a.repeat {
			a.emit(SignalComplete, a)
			return
		}
		a.currentTime -= a.duration
	}
	a.seekTracks(a.currentTime)
}

// seekTracks rewinds each track before seeking so that tracks whose delay
// lies after time show their initial values again.
func (a *Animator) seekTracks(time float64) {
	for _, tr := range a.tracks {
		tr.Tween.Reset()
		tr.Tween.Goto(time)
		if a.destroyed {
			return
		}
	}
}

func (a *Animator) emit(name string, payload any) {
	if a.emitter != nil {
		a.emitter.Emit(name, payload)
	}
}

func (a *Animator) clearTracks() {
	for _, tr := range a.tracks {
		tr.Tween.Destroy()
	}
	a.tracks = nil
}

// Destroy destroys every track. Idempotent.
func (a *Animator) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.clearTracks()
	a.owner = nil
	a.emitter = nil
}
