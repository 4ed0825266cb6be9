package easing

import (
	"github.com/fogleman/ease"
	"github.com/quasilyte/gmath"
)

// key is one segment of a piecewise curve: the curve reaches value at time
// until, travelling from the previous key with fn.
type key struct {
	until float64
	value float64
	fn    ease.Function
}

// piecewise chains keys over [0,1], starting from value 0 at t=0.
// Keys must be sorted by until and the last one must end at 1.
func piecewise(keys ...key) Func {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		from, start := 0.0, 0.0
		for _, k := range keys {
			if t <= k.until {
				span := k.until - start
				if span <= 0 {
					return k.value
				}
				u := gmath.Clamp((t-start)/span, 0, 1)
				return from + (k.value-from)*k.fn(u)
			}
			from, start = k.value, k.until
		}
		return keys[len(keys)-1].value
	}
}

// 组合曲线：全部从 0 出发、最终停在 1，中间允许越界，
// 适合缩放/透明度等"特效"型动画。
var (
	// Pulse 放大越界后回落
	Pulse = piecewise(
		key{0.4, 1.2, ease.InOutQuad},
		key{1, 1, ease.OutQuad},
	)

	// Jelly 果冻式衰减回弹
	Jelly = piecewise(
		key{0.3, 1.25, ease.OutQuad},
		key{0.55, 0.9, ease.InOutSine},
		key{0.8, 1.05, ease.InOutSine},
		key{1, 1, ease.InOutSine},
	)

	// Heart 心跳：两次搏动
	Heart = piecewise(
		key{0.15, 1.1, ease.OutQuad},
		key{0.3, 0.8, ease.InQuad},
		key{0.45, 1.15, ease.OutQuad},
		key{1, 1, ease.OutCubic},
	)

	// Breathe 呼吸：缓慢鼓起再落定
	Breathe = piecewise(
		key{0.6, 1.08, ease.InOutSine},
		key{1, 1, ease.InOutSine},
	)

	// Wave 振幅递减的正弦摆动
	Wave = piecewise(
		key{0.25, 1.15, ease.InOutSine},
		key{0.5, 0.92, ease.InOutSine},
		key{0.75, 1.04, ease.InOutSine},
		key{1, 1, ease.InOutSine},
	)

	// Pendulum 单摆：大幅越界后来回收敛
	Pendulum = piecewise(
		key{0.35, 1.3, ease.OutSine},
		key{0.6, 0.8, ease.InOutSine},
		key{0.85, 1.1, ease.InOutSine},
		key{1, 1, ease.InSine},
	)

	// Flash 闪烁：快速亮起、两次明暗交替
	Flash = piecewise(
		key{0.1, 1, ease.OutExpo},
		key{0.25, 0.3, ease.InExpo},
		key{0.4, 1, ease.OutExpo},
		key{0.6, 0.5, ease.InExpo},
		key{1, 1, ease.OutExpo},
	)

	// Shake 抖动：线性的正负交替衰减
	Shake = piecewise(
		key{0.2, 1.2, ease.Linear},
		key{0.4, 0.8, ease.Linear},
		key{0.6, 1.1, ease.Linear},
		key{0.75, 0.9, ease.Linear},
		key{0.9, 1.05, ease.Linear},
		key{1, 1, ease.Linear},
	)
)
