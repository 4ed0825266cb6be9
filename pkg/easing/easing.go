// Package easing 缓动函数表
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（Back/Elastic 等会短暂越界）。
//
// 函数按名称注册在全局表中；未知名称永远回退到 Linear，不会报错。
//
// 参考：https://easings.net/
package easing

import (
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/fogleman/ease"
)

// Func maps normalized progress to eased progress.
type Func func(t float64) float64

// LinearName is the name every unknown lookup resolves to.
const LinearName = "Linear"

var (
	mu    sync.RWMutex
	table = map[string]Func{}
	// lower-case name -> canonical name
	aliases = map[string]string{}
)

func init() {
	Register(LinearName, Linear)

	// 基础曲线族：In / Out / InOut
	families := []struct {
		name          string
		in, out, both ease.Function
	}{
		{"Quad", ease.InQuad, ease.OutQuad, ease.InOutQuad},
		{"Cubic", ease.InCubic, ease.OutCubic, ease.InOutCubic},
		{"Quart", ease.InQuart, ease.OutQuart, ease.InOutQuart},
		{"Quint", ease.InQuint, ease.OutQuint, ease.InOutQuint},
		{"Sine", ease.InSine, ease.OutSine, ease.InOutSine},
		{"Expo", ease.InExpo, ease.OutExpo, ease.InOutExpo},
		{"Circ", ease.InCirc, ease.OutCirc, ease.InOutCirc},
		{"Elastic", ease.InElastic, ease.OutElastic, ease.InOutElastic},
		{"Back", ease.InBack, ease.OutBack, ease.InOutBack},
		{"Bounce", ease.InBounce, ease.OutBounce, ease.InOutBounce},
	}
	for _, f := range families {
		Register(f.name+"In", Func(f.in))
		Register(f.name+"Out", Func(f.out))
		Register(f.name+"InOut", Func(f.both))
	}

	// 组合曲线
	Register("Pulse", Pulse)
	Register("Jelly", Jelly)
	Register("Heart", Heart)
	Register("Breathe", Breathe)
	Register("Wave", Wave)
	Register("Pendulum", Pendulum)
	Register("Flash", Flash)
	Register("Shake", Shake)
}

// Linear 线性缓动（无缓动）
func Linear(t float64) float64 {
	return t
}

// Register adds or replaces a named curve. Lookups are case-insensitive, so
// "QuadOut", "quadout" and "QUADOUT" all resolve to the same entry.
func Register(name string, fn Func) {
	if name == "" || fn == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	table[name] = fn
	aliases[strings.ToLower(name)] = name
}

// Get returns the curve registered under name, or Linear.
func Get(name string) Func {
	if fn, ok := Lookup(name); ok {
		return fn
	}
	if name != "" {
		log.Printf("[Easing] unknown easing %q, falling back to %s", name, LinearName)
	}
	return Linear
}

// Lookup is Get without the fallback.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	if fn, ok := table[name]; ok {
		return fn, true
	}
	canonical, ok := aliases[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return table[canonical], true
}

// Names returns the canonical names of every registered curve, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reverse evaluates fn on the mirrored timeline: Reverse(fn)(t) == fn(1-t).
// Yoyo cycles run through this instead of negating the output.
func Reverse(fn Func) Func {
	if fn == nil {
		fn = Linear
	}
	return func(t float64) float64 {
		return fn(1 - t)
	}
}
