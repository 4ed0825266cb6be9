package tween

import (
	"log"
	"sort"
	"strings"

	"github.com/gonewx/tween/pkg/easing"
)

// SetProperties assigns every recognised key of props, see SetProperty.
func (tw *Tween) SetProperties(props map[string]any) *Tween {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	// deterministic assignment order
	sort.Strings(keys)
	for _, k := range keys {
		tw.SetProperty(k, props[k])
	}
	return tw
}

// SetProperty assigns one field by name. Unknown keys and values of the
// wrong shape are ignored.
//
// Recognised keys (snake_case aliases accepted):
//
//	target, to, from, delay, duration, repeat, repeatDelay, yoyo,
//	ease/easing, diffMode/initType,
//	onAwake, onStart, onUpdate, onEnd, onComplete
func (tw *Tween) SetProperty(key string, value any) *Tween {
	if tw.destroyed {
		return tw
	}
	switch normalizeKey(key) {
	case "target":
		if t, ok := value.(Target); ok {
			tw.SetTarget(t)
		}
	case "to":
		if spec, ok := toSpec(value); ok {
			tw.SetTo(spec)
		}
	case "from":
		if spec, ok := toSpec(value); ok {
			tw.SetFrom(spec)
		}
	case "delay":
		if n, ok := toFloat(value); ok {
			tw.SetDelay(n)
		}
	case "duration":
		if n, ok := toFloat(value); ok {
			tw.SetDuration(n)
		}
	case "repeat":
		if n, ok := toFloat(value); ok {
			tw.SetRepeat(int(n))
		}
	case "repeatdelay":
		if n, ok := toFloat(value); ok {
			tw.SetRepeatDelay(n)
		}
	case "yoyo":
		if b, ok := value.(bool); ok {
			tw.SetYoyo(b)
		}
	case "ease", "easing":
		switch fn := value.(type) {
		case string:
			tw.SetEaseName(fn)
		case easing.Func:
			tw.SetEase(fn)
		case func(float64) float64:
			tw.SetEase(fn)
		}
	case "diffmode", "inittype":
		if mode, ok := parseDiffMode(value); ok {
			tw.SetDiffMode(mode)
		} else {
			log.Printf("[Tween] unknown diff mode %v, keeping %d", value, tw.diffMode)
		}
	case "onawake":
		tw.OnAwake = toCallback(value, tw.OnAwake)
	case "onstart":
		tw.OnStart = toCallback(value, tw.OnStart)
	case "onupdate":
		tw.OnUpdate = toCallback(value, tw.OnUpdate)
	case "onend":
		tw.OnEnd = toCallback(value, tw.OnEnd)
	case "oncomplete":
		tw.OnComplete = toCallback(value, tw.OnComplete)
	}
	return tw
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}

func toCallback(value any, old Callback) Callback {
	switch cb := value.(type) {
	case Callback:
		return cb
	case func(*Tween):
		return cb
	case func():
		return func(*Tween) { cb() }
	}
	return old
}

// parseDiffMode accepts a DiffMode, an int, or one of
// "awake"/"once" and "start"/"cycle"/"every".
func parseDiffMode(value any) (DiffMode, bool) {
	switch v := value.(type) {
	case DiffMode:
		return v, v == DiffOnAwake || v == DiffEveryCycle
	case string:
		switch strings.ToLower(v) {
		case "awake", "once", "onawake":
			return DiffOnAwake, true
		case "start", "cycle", "every", "everycycle", "onstart":
			return DiffEveryCycle, true
		}
		return 0, false
	}
	if n, ok := toFloat(value); ok {
		mode := DiffMode(n)
		return mode, mode == DiffOnAwake || mode == DiffEveryCycle
	}
	return 0, false
}
