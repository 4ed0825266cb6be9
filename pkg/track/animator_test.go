package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gonewx/tween/pkg/config"
	"github.com/gonewx/tween/pkg/scene"
	"github.com/gonewx/tween/pkg/signal"
	"github.com/gonewx/tween/pkg/tween"
)

const eps = 0.001

type fixture struct {
	root  *scene.Node
	box   *scene.Node
	label *scene.Node
	bus   *signal.Bus
	log   []string
}

func newFixture() *fixture {
	f := &fixture{
		root:  scene.NewNode("root"),
		box:   scene.NewNode("box"),
		label: scene.NewNode("label"),
		bus:   signal.New(),
	}
	panel := scene.NewNode("panel")
	f.root.AddChild(panel)
	panel.AddChild(f.box).AddChild(f.label)

	f.bus.On("", func(name string, payload any) {
		if ev, ok := payload.(TrackEvent); ok {
			name += ":" + ev.TargetID
		}
		f.log = append(f.log, name)
	})
	return f
}

func TestSetTracksSkipsUnresolvedTargets(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus)

	n := a.SetTracks([]Spec{
		{TargetID: "box", To: map[string]any{"x": 100}},
		{TargetID: "ghost", To: map[string]any{"x": 100}},
		{TargetID: "", To: map[string]any{"x": 100}},
		{TargetID: "label", To: map[string]any{"alpha": 0}},
	})

	assert.Equal(t, 2, n)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, 0, a.Tracks()[0].Index)
	assert.Equal(t, 3, a.Tracks()[1].Index, "index keeps the spec position")
	assert.Same(t, f.label, a.Tracks()[1].Tween.Target())
}

func TestInitialAppliedImmediately(t *testing.T) {
	f := newFixture()
	f.box.X = 10
	a := New(f.root, nil)

	a.SetTracks([]Spec{{
		TargetID: "box",
		Initial:  map[string]any{"alpha": 0, "x": "+5", "scale": map[string]any{"x": 0.5}},
		To:       map[string]any{"alpha": 1},
	}})

	assert.Equal(t, 0.0, f.box.Alpha)
	assert.Equal(t, 15.0, f.box.X)
	assert.Equal(t, 0.5, f.box.Scale.X)
}

func TestUpdateDrivesTracksAndEmitsSignals(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(1)
	a.SetTracks([]Spec{
		{TargetID: "box", Duration: 1, To: map[string]any{"x": 100}},
		{TargetID: "label", Delay: 0.5, Duration: 0.5, To: map[string]any{"alpha": 0}},
	})

	a.Update(0.5)
	assert.InDelta(t, 50, f.box.X, eps)
	assert.InDelta(t, 1, f.label.Alpha, eps)

	a.Update(0.25)
	assert.InDelta(t, 75, f.box.X, eps)
	assert.InDelta(t, 0.5, f.label.Alpha, eps)
	assert.False(t, a.Completed())

	a.Update(0.25)
	assert.InDelta(t, 100, f.box.X, eps)
	assert.InDelta(t, 0, f.label.Alpha, eps)
	assert.True(t, a.Completed())
	assert.Equal(t, []string{
		"track:start:box",
		"track:start:label",
		"track:end:box",
		"track:end:label",
		SignalEnd,
		SignalComplete,
	}, f.log)

	// past the final cycle: no-op
	a.Update(1)
	assert.InDelta(t, 1, a.CurrentTime(), eps)
	assert.Len(t, f.log, 6)
}

func TestRepeatWrapsAndSeeksTracks(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(1).SetRepeat(2)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 1, To: map[string]any{"x": "+100"}}})

	a.Update(0.5)
	a.Update(0.75)
	assert.Equal(t, 1, a.RepeatTimes())
	assert.InDelta(t, 0.25, a.CurrentTime(), eps)
	assert.InDelta(t, 25, f.box.X, eps, "relative target resolved once, not re-applied on wrap")
	assert.Equal(t, 1, f.bus.Count(SignalEnd))
	assert.Equal(t, 0, f.bus.Count(SignalComplete))

	a.Update(0.75)
	assert.InDelta(t, 100, f.box.X, eps)
	assert.Equal(t, 2, f.bus.Count(SignalEnd))
	assert.Equal(t, 1, f.bus.Count(SignalComplete))
	assert.Equal(t, 2, f.bus.Count(SignalTrackStart))
}

func TestLongDeltaEndsEveryCycle(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(1).SetRepeat(5)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 1, To: map[string]any{"x": 100}}})

	a.Update(3.25)
	assert.Equal(t, 3, a.RepeatTimes())
	assert.Equal(t, 3, f.bus.Count(SignalEnd))
	assert.InDelta(t, 0.25, a.CurrentTime(), eps)
	assert.InDelta(t, 25, f.box.X, eps)

	a.Update(5)
	assert.True(t, a.Completed())
	assert.Equal(t, 5, a.RepeatTimes())
	assert.Equal(t, 5, f.bus.Count(SignalEnd))
	assert.Equal(t, 1, f.bus.Count(SignalComplete))
}

func TestInfiniteRepeat(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(0.5).SetRepeat(0)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 0.5, To: map[string]any{"x": 10}}})

	assert.Equal(t, tween.Infinite, a.Repeat())
	for i := 0; i < 100; i++ {
		a.Update(0.1)
	}
	assert.False(t, a.Completed())
	assert.Equal(t, 0, f.bus.Count(SignalComplete))
	assert.GreaterOrEqual(t, f.bus.Count(SignalEnd), 15)
}

func TestPauseResume(t *testing.T) {
	f := newFixture()
	a := New(f.root, nil).SetDuration(1)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 1, To: map[string]any{"x": 100}}})

	a.Update(0.25)
	a.Pause()
	a.Pause()
	assert.True(t, a.Paused())
	a.Update(0.5)
	assert.InDelta(t, 25, f.box.X, eps)
	assert.InDelta(t, 0.25, a.CurrentTime(), eps)

	// seeking works while paused
	a.Goto(0.6)
	assert.InDelta(t, 60, f.box.X, eps)

	a.Resume()
	assert.False(t, a.Paused())
	a.Update(0.2)
	assert.InDelta(t, 80, f.box.X, eps)
}

func TestGotoScrubsBothWays(t *testing.T) {
	f := newFixture()
	a := New(f.root, nil).SetDuration(1)
	a.SetTracks([]Spec{
		{TargetID: "box", Duration: 1, Easing: "Linear", To: map[string]any{"x": 100}},
		{TargetID: "label", Delay: 0.5, Duration: 0.5, To: map[string]any{"alpha": 0}},
	})

	a.Goto(0.75)
	assert.InDelta(t, 75, f.box.X, eps)
	assert.InDelta(t, 0.5, f.label.Alpha, eps)

	a.Goto(0.2)
	assert.InDelta(t, 20, f.box.X, eps)
	assert.InDelta(t, 1, f.label.Alpha, eps, "track before its delay shows its initial value")

	a.Goto(1)
	assert.InDelta(t, 100, f.box.X, eps)
	assert.InDelta(t, 0, f.label.Alpha, eps)
}

func TestRestart(t *testing.T) {
	f := newFixture()
	a := New(f.root, nil).SetDuration(0.5)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 0.5, To: map[string]any{"x": 100}}})

	a.Update(1)
	require.True(t, a.Completed())

	a.Restart()
	assert.Equal(t, 0, a.RepeatTimes())
	assert.InDelta(t, 0, f.box.X, eps)
	a.Update(0.25)
	assert.InDelta(t, 50, f.box.X, eps)
}

func TestZeroDurationAndTimeScale(t *testing.T) {
	f := newFixture()
	a := New(f.root, nil)
	a.SetTracks([]Spec{{TargetID: "box", Duration: 1, To: map[string]any{"x": 100}}})

	a.Update(0.5)
	assert.Equal(t, 0.0, a.CurrentTime(), "zero duration disables update")
	assert.Equal(t, 0.0, f.box.X)

	a.SetDuration(-3)
	assert.Equal(t, 0.0, a.Duration())

	a.SetDuration(2)
	a.TimeScale = 2
	a.Update(0.25)
	assert.InDelta(t, 0.5, a.CurrentTime(), eps)
	assert.InDelta(t, 50, f.box.X, eps)
}

func TestDestroy(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(1)
	a.SetTracks([]Spec{{TargetID: "box", To: map[string]any{"x": 100}}})
	tw := a.Tracks()[0].Tween

	a.Destroy()
	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.True(t, tw.Destroyed())
	assert.Equal(t, 0, a.Len())

	a.Update(0.5)
	a.Goto(0.5)
	a.Restart()
	assert.Equal(t, 0, a.SetTracks([]Spec{{TargetID: "box"}}))
	assert.Equal(t, 0.0, f.box.X)
	assert.Empty(t, f.log)
}

func TestDestroyFromSignal(t *testing.T) {
	f := newFixture()
	a := New(f.root, f.bus).SetDuration(1)
	a.SetTracks([]Spec{
		{TargetID: "box", Duration: 0.5, To: map[string]any{"x": 100}},
		{TargetID: "label", Duration: 0.5, To: map[string]any{"alpha": 0}},
	})
	f.bus.On(SignalTrackEnd, func(string, any) { a.Destroy() })

	assert.NotPanics(t, func() { a.Update(0.6) })
	assert.True(t, a.Destroyed())
	assert.Equal(t, 1, f.bus.Count(SignalTrackEnd))
}

func TestFromClip(t *testing.T) {
	doc, err := config.ParseClipConfig([]byte(`clips:
  - name: intro
    repeat: 2
    time_scale: 2
    tracks:
      - target: box
        easing: QuadIn
        yoyo: true
        repeat: 2
        initial: {alpha: 0}
        to: {x: "+100", alpha: 1}
      - target: missing
        to: {x: 1}
`))
	require.NoError(t, err)
	clip, ok := doc.Clip("intro")
	require.True(t, ok)

	f := newFixture()
	a := FromClip(f.root, f.bus, clip)

	assert.Equal(t, "intro", a.Name)
	assert.Equal(t, 2.0, a.TimeScale)
	assert.Equal(t, 2.0, a.Duration(), "two yoyo cycles of the default 1s")
	assert.Equal(t, 2, a.Repeat())
	require.Equal(t, 1, a.Len())
	assert.Equal(t, 0.0, f.box.Alpha, "initial applied")

	tw := a.Tracks()[0].Tween
	assert.True(t, tw.Yoyo())
	assert.Equal(t, 2, tw.Repeat())

	a.Update(0.25) // playhead 0.5
	assert.InDelta(t, 25, f.box.X, eps, "QuadIn at 0.5")
	a.Update(0.25) // playhead 1, first yoyo cycle ends
	assert.InDelta(t, 100, f.box.X, eps)
	a.Update(0.25) // playhead 1.5, half way back
	assert.InDelta(t, 25, f.box.X, eps)
}

func TestFromClipNil(t *testing.T) {
	a := FromClip(nil, nil, nil)
	assert.Equal(t, 0, a.Len())
	assert.NotPanics(t, func() { a.Update(1) })
}

func TestSpecFromDefRepeat(t *testing.T) {
	n := func(v int) *int { return &v }

	assert.Equal(t, 1, SpecFromDef(config.TrackDef{}).Repeat)
	assert.Equal(t, 3, SpecFromDef(config.TrackDef{Repeat: n(3)}).Repeat)
	assert.Equal(t, -1, SpecFromDef(config.TrackDef{Repeat: n(0)}).Repeat)
	assert.Equal(t, -1, SpecFromDef(config.TrackDef{Repeat: n(-4)}).Repeat)
}
