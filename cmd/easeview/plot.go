package main

import (
	"math"

	"github.com/quasilyte/gmath"

	"github.com/gonewx/tween/pkg/easing"
)

// 纵轴显示范围，留出 Back/Elastic 越界的空间
const (
	plotLow  = -0.25
	plotHigh = 1.25
)

const (
	curveRune    = '*'
	baselineRune = '-'
	emptyRune    = ' '
)

// Plot 把缓动曲线采样成 width x height 的字符网格
//
// 每一列采样一次，t 从 0 均匀增加到 1。
// 值为 0 和 1 的两行画成基线，越界的采样点压到网格边缘。
func Plot(fn easing.Func, width, height int) [][]rune {
	if width <= 0 || height <= 0 {
		return nil
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = emptyRune
		}
	}

	for _, v := range []float64{0, 1} {
		row := grid[rowOf(v, height)]
		for x := range row {
			row[x] = baselineRune
		}
	}

	for x := 0; x < width; x++ {
		t := 1.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		grid[rowOf(fn(t), height)][x] = curveRune
	}
	return grid
}

// rowOf 把缓动值映射到网格行号（第 0 行在顶部）
func rowOf(v float64, height int) int {
	if height == 1 {
		return 0
	}
	u := gmath.Clamp((v-plotLow)/(plotHigh-plotLow), 0, 1)
	return height - 1 - int(math.Round(u*float64(height-1)))
}
