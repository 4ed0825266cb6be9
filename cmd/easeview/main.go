// cmd/easeview/main.go
// 终端缓动曲线查看器
//
// 用法：
//
//	go run ./cmd/easeview --ease=BackOut
//
// 左右方向键切换缓动函数，q 或 Esc 退出。
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/tween/pkg/easing"
)

var initial = flag.String("ease", easing.LinearName, "初始缓动函数名称")

func main() {
	flag.Parse()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("无法创建终端屏幕: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("终端初始化失败: %v", err)
	}
	defer screen.Fini()

	v := newViewer(easing.Names(), *initial)
	for {
		v.draw(screen)
		screen.Show()

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return
			case tcell.KeyRight, tcell.KeyDown:
				v.cycle(1)
			case tcell.KeyLeft, tcell.KeyUp:
				v.cycle(-1)
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return
				}
			}
		}
	}
}

// viewer 当前选中的缓动函数
type viewer struct {
	names []string
	index int
}

func newViewer(names []string, start string) *viewer {
	v := &viewer{names: names}
	match := func(want string) bool {
		for i, name := range names {
			if strings.EqualFold(name, want) {
				v.index = i
				return true
			}
		}
		return false
	}
	if !match(start) {
		match(easing.LinearName)
	}
	return v
}

func (v *viewer) name() string {
	if len(v.names) == 0 {
		return easing.LinearName
	}
	return v.names[v.index]
}

func (v *viewer) cycle(delta int) {
	n := len(v.names)
	if n == 0 {
		return
	}
	v.index = ((v.index+delta)%n + n) % n
}

func (v *viewer) draw(screen tcell.Screen) {
	screen.Clear()
	w, h := screen.Size()

	title := fmt.Sprintf(" %s (%d/%d)  <-/-> switch  q quit ", v.name(), v.index+1, len(v.names))
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for i, ch := range title {
		if i < w {
			screen.SetContent(i, 0, ch, nil, titleStyle)
		}
	}

	curveStyle := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	axisStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(8))
	for y, row := range Plot(easing.Get(v.name()), w, h-1) {
		for x, ch := range row {
			style := axisStyle
			if ch == curveRune {
				style = curveStyle
			}
			screen.SetContent(x, y+1, ch, nil, style)
		}
	}
}
