package track

import "github.com/gonewx/tween/pkg/config"

// SpecFromDef converts a clip document track into a Spec.
func SpecFromDef(def config.TrackDef) Spec {
	repeat := def.RepeatCount()
	if repeat <= 0 {
		repeat = -1
	}
	return Spec{
		TargetID:    def.Target,
		Delay:       def.Delay,
		Duration:    def.Duration,
		Easing:      def.Easing,
		Repeat:      repeat,
		RepeatDelay: def.RepeatDelay,
		Yoyo:        def.Yoyo,
		Initial:     def.Initial,
		From:        def.From,
		To:          def.To,
	}
}

// FromClip builds an animator for clip on owner's subtree.
func FromClip(owner Finder, emitter Emitter, clip *config.ClipDef) *Animator {
	a := New(owner, emitter)
	if clip == nil {
		return a
	}
	a.Name = clip.Name
	a.TimeScale = clip.TimeScale
	if a.TimeScale == 0 {
		a.TimeScale = 1
	}
	a.SetDuration(clip.Duration).SetRepeat(clip.RepeatCount())

	specs := make([]Spec, 0, len(clip.Tracks))
	for _, def := range clip.Tracks {
		specs = append(specs, SpecFromDef(def))
	}
	a.SetTracks(specs)
	return a
}
