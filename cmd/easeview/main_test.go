package main

import (
	"strings"
	"testing"

	"github.com/gonewx/tween/pkg/easing"
)

func column(grid [][]rune, x int) int {
	for y := range grid {
		if grid[y][x] == curveRune {
			return y
		}
	}
	return -1
}

func TestPlotLinear(t *testing.T) {
	grid := Plot(easing.Linear, 21, 13)
	if len(grid) != 13 || len(grid[0]) != 21 {
		t.Fatalf("网格尺寸 = %dx%d, 期望 21x13", len(grid[0]), len(grid))
	}

	start, end := column(grid, 0), column(grid, 20)
	if start != rowOf(0, 13) {
		t.Errorf("t=0 在第 %d 行, 期望 %d", start, rowOf(0, 13))
	}
	if end != rowOf(1, 13) {
		t.Errorf("t=1 在第 %d 行, 期望 %d", end, rowOf(1, 13))
	}
	// 线性曲线单调上升（行号单调不增）
	prev := start
	for x := 1; x < 21; x++ {
		y := column(grid, x)
		if y > prev {
			t.Fatalf("第 %d 列下降: %d -> %d", x, prev, y)
		}
		prev = y
	}
}

func TestPlotBaselines(t *testing.T) {
	grid := Plot(easing.Get("QuadIn"), 30, 9)
	row := string(grid[rowOf(1, 9)])
	if !strings.Contains(row, string(baselineRune)) {
		t.Errorf("值为 1 的基线缺失: %q", row)
	}
}

func TestPlotClampsOvershoot(t *testing.T) {
	grid := Plot(func(float64) float64 { return 5 }, 4, 6)
	for x := 0; x < 4; x++ {
		if column(grid, x) != 0 {
			t.Errorf("越界的采样点应压到第 0 行, 第 %d 列在 %d", x, column(grid, x))
		}
	}
}

func TestPlotDegenerate(t *testing.T) {
	if Plot(easing.Linear, 0, 5) != nil {
		t.Error("宽度为 0 应返回 nil")
	}
	grid := Plot(easing.Linear, 1, 1)
	if grid[0][0] != curveRune {
		t.Errorf("1x1 网格 = %q", grid[0][0])
	}
}

func TestViewerCycle(t *testing.T) {
	names := []string{"BackOut", easing.LinearName, "QuadIn"}

	v := newViewer(names, "backout")
	if v.name() != "BackOut" {
		t.Errorf("name() = %s, 期望 BackOut", v.name())
	}
	v.cycle(-1)
	if v.name() != "QuadIn" {
		t.Errorf("cycle(-1) 后 = %s, 期望 QuadIn", v.name())
	}

	if v := newViewer(names, "nope"); v.name() != easing.LinearName {
		t.Errorf("未知名称应选中 Linear, 得到 %s", v.name())
	}
}
