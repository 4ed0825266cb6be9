// Package sequence chains tweens into back-to-back timelines.
//
// A Sequencer owns an ordered list of tween steps. Each appended step starts
// where the previous one ends (plus its own delay), so
//
//	seq.To(a).To(b).From(c)
//
// plays a, then b, then c. Play hooks the sequencer into a frame clock and
// feeds its elapsed time to the current step; when the last step completes
// the sequencer destroys itself.
//
// Registry adds labels on top: creating a labeled sequencer cancels every
// live sequencer carrying the same label.
package sequence

import (
	"github.com/gonewx/tween/pkg/clock"
	"github.com/gonewx/tween/pkg/easing"
	"github.com/gonewx/tween/pkg/tween"
)

// Clock is the frame clock a sequencer registers with while playing.
// Registering the same owner twice must be harmless.
type Clock interface {
	Add(owner any, handler clock.Handler)
	Remove(owner any)
}

// Step describes one queued tween.
type Step struct {
	// Target overrides the sequencer's target for this step.
	Target tween.Target

	// Props is the loosely typed property map ("+10", "*2", records...).
	// Spec wins when both are set.
	Props map[string]any
	Spec  tween.PropertySpec

	// Duration of one cycle and extra delay after the previous step, seconds.
	Duration float64
	Delay    float64

	// Repeat is the cycle count; 0 keeps a single cycle, negative repeats forever.
	// Unlike tween.SetRepeat, 0 does not mean infinite here, so a zero Step
	// plays once.
	Repeat      int
	RepeatDelay float64
	Yoyo        bool

	// Ease is looked up by name unless EaseFunc is set.
	Ease     string
	EaseFunc easing.Func

	DiffMode tween.DiffMode

	OnStart    tween.Callback
	OnUpdate   tween.Callback
	OnEnd      tween.Callback
	OnComplete tween.Callback
}

// Sequencer plays queued steps one after another.
type Sequencer struct {
	id       ID
	label    string
	target   tween.Target
	clock    Clock
	registry *Registry

	queue   []*tween.Tween
	cursor  int
	current *tween.Tween
	endTime float64
	elapsed float64

	playing   bool
	paused    bool
	completed bool
	destroyed bool
	done      chan struct{}

	onAllComplete func(s *Sequencer)
	onDestroy     func(s *Sequencer)
}

// New creates an unregistered sequencer. clock may be nil when the host
// drives the sequencer through Advance.
func New(c Clock, target tween.Target) *Sequencer {
	return &Sequencer{
		clock:  c,
		target: target,
	}
}

// ID returns the registry id, 0 for unregistered sequencers.
func (s *Sequencer) ID() ID { return s.id }

// Label returns the registry label.
func (s *Sequencer) Label() string { return s.label }

// Target returns the default step target.
func (s *Sequencer) Target() tween.Target { return s.target }

// Playing reports whether Play was called and the sequence has not ended.
func (s *Sequencer) Playing() bool { return s.playing }

// Paused reports whether playback is paused.
func (s *Sequencer) Paused() bool { return s.paused }

// Completed reports whether every step has completed.
func (s *Sequencer) Completed() bool { return s.completed }

// Destroyed reports whether Destroy was called.
func (s *Sequencer) Destroyed() bool { return s.destroyed }

// Elapsed returns the playback position in seconds.
func (s *Sequencer) Elapsed() float64 { return s.elapsed }

// Duration returns the end time of the last queued step.
func (s *Sequencer) Duration() float64 { return s.endTime }

// Len returns the number of queued steps.
func (s *Sequencer) Len() int { return len(s.queue) }

// Current returns the step being played, nil between steps.
func (s *Sequencer) Current() *tween.Tween { return s.current }

// SetImmediate writes props onto target without animating. A nil target
// means the sequencer's own target.
func (s *Sequencer) SetImmediate(target tween.Target, props map[string]any) *Sequencer {
	if s.destroyed {
		return s
	}
	if target == nil {
		target = s.target
	}
	tween.Apply(target, tween.ParseSpec(props))
	return s
}

// To appends a step animating towards step's properties.
func (s *Sequencer) To(step Step) *Sequencer {
	return s.push(step, false)
}

// From appends a step animating from step's properties to the live values.
func (s *Sequencer) From(step Step) *Sequencer {
	return s.push(step, true)
}

// OnAllComplete sets the callback run when the last step completes.
func (s *Sequencer) OnAllComplete(fn func(s *Sequencer)) *Sequencer {
	s.onAllComplete = fn
	return s
}

// OnDestroy sets the callback run once by Destroy.
func (s *Sequencer) OnDestroy(fn func(s *Sequencer)) *Sequencer {
	s.onDestroy = fn
	return s
}

func (s *Sequencer) push(step Step, from bool) *Sequencer {
	if s.destroyed {
		return s
	}
	target := step.Target
	if target == nil {
		target = s.target
	}

	tw := tween.New().
		SetTarget(target).
		SetDuration(step.Duration).
		SetDelay(s.endTime + step.Delay).
		SetRepeatDelay(step.RepeatDelay).
		SetYoyo(step.Yoyo).
		SetDiffMode(step.DiffMode)
	if step.Repeat != 0 {
		tw.SetRepeat(step.Repeat)
	}
	if step.EaseFunc != nil {
		tw.SetEase(step.EaseFunc)
	} else if step.Ease != "" {
		tw.SetEaseName(step.Ease)
	}

	spec := step.Spec
	if spec == nil {
		spec = tween.ParseSpec(step.Props)
	}
	if from {
		tw.SetFrom(spec)
	} else {
		tw.SetTo(spec)
	}

	tw.OnStart = step.OnStart
	tw.OnUpdate = step.OnUpdate
	tw.OnEnd = step.OnEnd
	userComplete := step.OnComplete
	tw.OnComplete = func(t *tween.Tween) {
		if userComplete != nil {
			userComplete(t)
		}
		s.stepCompleted(t)
	}

	s.queue = append(s.queue, tw)
	s.endTime = tw.TotalDuration()
	return s
}

// Play starts or restarts self-driven playback.
//
// The returned channel is closed when this playback ends: the last step
// completed, Stop was called, or the sequencer was destroyed. Completed tells
// the cases apart. Playing an already playing or destroyed sequencer is a
// no-op that returns an already closed channel.
func (s *Sequencer) Play() <-chan struct{} {
	if s.destroyed || s.playing {
		return closedChan()
	}
	s.playing = true
	s.paused = false
	s.completed = false
	s.done = make(chan struct{})
	if s.clock != nil {
		s.clock.Add(s, s.Advance)
	}
	return s.done
}

// Pause stops the clock hook, keeping the playback position.
func (s *Sequencer) Pause() {
	if s.destroyed || !s.playing || s.paused {
		return
	}
	s.paused = true
	if s.clock != nil {
		s.clock.Remove(s)
	}
}

// Resume re-hooks a paused sequencer.
func (s *Sequencer) Resume() {
	if s.destroyed || !s.playing || !s.paused {
		return
	}
	s.paused = false
	if s.clock != nil {
		s.clock.Add(s, s.Advance)
	}
}

// Stop halts playback and rewinds to the first step. The sequencer stays
// usable; Play starts it again from the beginning.
func (s *Sequencer) Stop() {
	if s.destroyed {
		return
	}
	if s.clock != nil {
		s.clock.Remove(s)
	}
	s.playing = false
	s.paused = false
	s.elapsed = 0
	s.cursor = 0
	s.current = nil
	// rewind back to front so the earliest step's initial values win
	for i := len(s.queue) - 1; i >= 0; i-- {
		s.queue[i].Reset()
	}
	s.closeDone()
}

// Advance moves playback forward by dt seconds. It is the clock handler and
// can also be called directly by hosts without a clock.
func (s *Sequencer) Advance(dt float64) {
	if s.destroyed || !s.playing || s.paused {
		return
	}
	s.elapsed += dt
	s.run()
}

// run feeds the elapsed time to the current step, moving on to the next
// step as long as steps complete within this call.
func (s *Sequencer) run() {
	for !s.destroyed && s.playing && !s.paused {
		if s.current == nil {
			if s.cursor >= len(s.queue) {
				s.finish()
				return
			}
			s.current = s.queue[s.cursor]
			s.cursor++
		}
		cur := s.current
		s.catchUp(cur)
		if s.current == cur {
			return
		}
	}
}

// catchUp feeds the elapsed time to tw until it stops finishing cycles, so a
// tick longer than one cycle of a repeated step does not delay later steps.
func (s *Sequencer) catchUp(tw *tween.Tween) {
	for !s.destroyed && s.playing && !s.paused && s.current == tw {
		before := tw.RepeatTimes()
		tw.Update(s.elapsed)
		if tw.Ended() || tw.RepeatTimes() == before {
			return
		}
		// zero-length cycles of an endless step would never catch up
		if tw.Repeat() == tween.Infinite && tw.Duration()+tw.RepeatDelay() <= 0 {
			return
		}
	}
}

func (s *Sequencer) stepCompleted(tw *tween.Tween) {
	if s.destroyed {
		return
	}
	if s.current == tw {
		s.current = nil
	}
}

func (s *Sequencer) finish() {
	s.playing = false
	s.completed = true
	if s.clock != nil {
		s.clock.Remove(s)
	}
	if s.onAllComplete != nil {
		s.onAllComplete(s)
	}
	s.Destroy()
}

// Destroy destroys every step, leaves the registry and runs the OnDestroy
// callback. Idempotent.
func (s *Sequencer) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.playing = false
	s.paused = false
	if s.clock != nil {
		s.clock.Remove(s)
	}
	for _, tw := range s.queue {
		tw.Destroy()
	}
	s.queue = nil
	s.current = nil
	s.target = nil

	if s.registry != nil {
		s.registry.remove(s.id)
	}
	cb := s.onDestroy
	s.onDestroy = nil
	s.onAllComplete = nil
	if cb != nil {
		cb(s)
	}
	s.closeDone()
}

func (s *Sequencer) closeDone() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
