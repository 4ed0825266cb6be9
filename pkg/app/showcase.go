package app

import (
	"fmt"
	"log"

	"github.com/gonewx/tween/pkg/clipstore"
	"github.com/gonewx/tween/pkg/clock"
	"github.com/gonewx/tween/pkg/config"
	"github.com/gonewx/tween/pkg/easing"
	"github.com/gonewx/tween/pkg/scene"
	"github.com/gonewx/tween/pkg/sequence"
	"github.com/gonewx/tween/pkg/signal"
	"github.com/gonewx/tween/pkg/track"
)

// 展示场景布局
const (
	ScreenWidth  = 800
	ScreenHeight = 600

	groundY      = 480.0
	bounceHeight = 160.0
	maxEvents    = 8
)

// Showcase 展示程序的状态和操作，不依赖输入和渲染，便于测试
type Showcase struct {
	Root      *scene.Node
	Clock     *clock.FrameClock
	Sequences *sequence.Registry
	Bus       *signal.Bus

	library *config.ClipLibrary
	store   *clipstore.Store

	clipNames []string
	current   int
	animator  *track.Animator

	easeNames []string
	easeIndex int

	events []string
}

// NewShowcase 创建展示状态并选中第一个剪辑
//
// 参数：
//   - library: 剪辑库，可为 nil（只演示序列动画）
//   - store: 剪辑存储，可为 nil（禁用保存）
func NewShowcase(library *config.ClipLibrary, store *clipstore.Store) *Showcase {
	s := &Showcase{
		Root:      NewDemoScene(),
		Clock:     clock.New(),
		Bus:       signal.New(),
		library:   library,
		store:     store,
		easeNames: easing.Names(),
		current:   -1,
	}
	s.Sequences = sequence.NewRegistry(s.Clock)

	// 记录最近的信号，供 HUD 显示
	s.Bus.On("", func(name string, payload any) {
		if ev, ok := payload.(track.TrackEvent); ok {
			name = fmt.Sprintf("%s #%d %s", name, ev.Index, ev.TargetID)
		}
		s.logEvent(name)
	})

	for i, name := range s.easeNames {
		if name == "BounceOut" {
			s.easeIndex = i
		}
	}

	if library != nil {
		s.clipNames = library.Names()
	}
	if len(s.clipNames) > 0 {
		s.SelectClip(0)
	}
	return s
}

// NewDemoScene 构建展示用的场景树
//
//	root
//	├── panel
//	│   ├── box
//	│   └── label
//	├── ball
//	└── star
func NewDemoScene() *scene.Node {
	root := scene.NewNode("root")

	panel := scene.NewNode("panel")
	panel.X, panel.Y = 80, 80
	panel.Width, panel.Height = 360, 240
	panel.Color = scene.Color{R: 0.2, G: 0.25, B: 0.3, A: 1}

	box := scene.NewNode("box")
	box.X, box.Y = 40, 60
	box.Width, box.Height = 60, 60
	box.Color = scene.Color{R: 0.9, G: 0.4, B: 0.3, A: 1}

	label := scene.NewNode("label")
	label.X, label.Y = 40, 180
	label.Width, label.Height = 200, 20
	label.Color = scene.Color{R: 0.9, G: 0.9, B: 0.6, A: 1}

	ball := scene.NewNode("ball")
	ball.X, ball.Y = 600, groundY
	ball.Width, ball.Height = 40, 40
	ball.Color = scene.Color{R: 0.3, G: 0.7, B: 0.9, A: 1}

	star := scene.NewNode("star")
	star.X, star.Y = 600, 160
	star.Width, star.Height = 30, 30
	star.Color = scene.Color{R: 1, G: 0.85, B: 0.2, A: 1}
	star.SetExtra("glow", 0)

	panel.AddChild(box).AddChild(label)
	root.AddChild(panel).AddChild(ball).AddChild(star)
	return root
}

// Update 推进一帧
func (s *Showcase) Update(dt float64) {
	s.Clock.Tick(dt)
}

// ClipNames 返回可播放的剪辑名称
func (s *Showcase) ClipNames() []string { return s.clipNames }

// ClipName 返回当前剪辑名称
func (s *Showcase) ClipName() string {
	if s.current < 0 {
		return ""
	}
	return s.clipNames[s.current]
}

// Animator 返回当前剪辑的动画器
func (s *Showcase) Animator() *track.Animator { return s.animator }

// SelectClip 切换到第 i 个剪辑（循环取模）
func (s *Showcase) SelectClip(i int) {
	if len(s.clipNames) == 0 {
		return
	}
	n := len(s.clipNames)
	i = ((i % n) + n) % n

	clip, err := s.library.Clip(s.clipNames[i])
	if err != nil {
		log.Printf("[Showcase] %v", err)
		return
	}

	if s.animator != nil {
		s.Clock.Remove(s.animator)
		s.animator.Destroy()
	}
	// 新剪辑在干净的场景上播放
	s.Root = NewDemoScene()
	s.Sequences.ClearAll()

	s.current = i
	s.animator = track.FromClip(s.Root, s.Bus, clip)
	s.Clock.Add(s.animator, s.animator.Update)
	log.Printf("[Showcase] clip %q: %d track(s), duration %.2fs", clip.Name, s.animator.Len(), s.animator.Duration())
}

// NextClip 切换到下一个剪辑
func (s *Showcase) NextClip() { s.SelectClip(s.current + 1) }

// PrevClip 切换到上一个剪辑
func (s *Showcase) PrevClip() { s.SelectClip(s.current - 1) }

// TogglePause 暂停或继续当前剪辑
func (s *Showcase) TogglePause() {
	if s.animator == nil {
		return
	}
	if s.animator.Paused() {
		s.animator.Resume()
	} else {
		s.animator.Pause()
	}
}

// Scrub 把播放头移动 dt 秒，限制在 [0, duration] 内
func (s *Showcase) Scrub(dt float64) {
	if s.animator == nil {
		return
	}
	t := s.animator.CurrentTime() + dt
	if t < 0 {
		t = 0
	}
	if d := s.animator.Duration(); t > d {
		t = d
	}
	s.animator.Goto(t)
}

// Restart 从头播放当前剪辑
func (s *Showcase) Restart() {
	if s.animator != nil {
		s.animator.Restart()
	}
}

// EaseName 返回弹跳动画下落阶段使用的缓动
func (s *Showcase) EaseName() string {
	if len(s.easeNames) == 0 {
		return easing.LinearName
	}
	return s.easeNames[s.easeIndex]
}

// CycleEase 切换弹跳动画的缓动
func (s *Showcase) CycleEase(delta int) {
	n := len(s.easeNames)
	if n == 0 {
		return
	}
	s.easeIndex = ((s.easeIndex+delta)%n + n) % n
}

// PlayBounce 播放小球弹跳序列
// 使用固定标签，重复触发会取消上一次还没播完的弹跳
func (s *Showcase) PlayBounce() *sequence.Sequencer {
	ball := s.Root.FindByID("ball")
	if ball == nil {
		return nil
	}

	seq := s.Sequences.New(ball, "bounce").
		SetImmediate(nil, map[string]any{"scale": map[string]any{"x": 1, "y": 1}}).
		To(sequence.Step{
			Props:    map[string]any{"y": groundY - bounceHeight},
			Duration: 0.35,
			Ease:     "QuadOut",
		}).
		To(sequence.Step{
			Props:    map[string]any{"y": groundY},
			Duration: 0.6,
			Ease:     s.EaseName(),
		}).
		To(sequence.Step{
			Props:    map[string]any{"scale": map[string]any{"x": 1.3, "y": 0.7}},
			Duration: 0.08,
		}).
		To(sequence.Step{
			Props:    map[string]any{"scale": map[string]any{"x": 1, "y": 1}},
			Duration: 0.12,
			Ease:     "BackOut",
		}).
		OnAllComplete(func(*sequence.Sequencer) { s.logEvent("bounce complete") })
	seq.Play()
	return seq
}

// SaveCurrent 把当前剪辑保存到剪辑存储
func (s *Showcase) SaveCurrent() error {
	if s.store == nil {
		return fmt.Errorf("clip store disabled")
	}
	name := s.ClipName()
	if name == "" {
		return fmt.Errorf("no clip selected")
	}
	clip, err := s.library.Clip(name)
	if err != nil {
		return err
	}
	if err := s.store.Save(clip); err != nil {
		return err
	}
	s.logEvent("saved " + name)
	return nil
}

// Events 返回最近的信号（最新的在最后）
func (s *Showcase) Events() []string { return s.events }

func (s *Showcase) logEvent(name string) {
	s.events = append(s.events, name)
	if len(s.events) > maxEvents {
		s.events = s.events[len(s.events)-maxEvents:]
	}
}
