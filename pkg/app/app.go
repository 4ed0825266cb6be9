// Package app 提供动画展示程序的核心包装器
//
// 该包把剪辑库、剪辑存储、帧时钟和场景树组装成一个 ebiten.Game，
// 根目录的 main.go 负责解析命令行参数并调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/tween/pkg/clipstore"
	"github.com/gonewx/tween/pkg/clock"
	"github.com/gonewx/tween/pkg/config"
	"github.com/gonewx/tween/pkg/scene"
)

// scrubStep 方向键每次移动播放头的秒数
const scrubStep = 0.1

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ClipPath 嵌入资源中的剪辑目录或文件（如 "data/clips"）
	ClipPath string
	// Clip 启动时选中的剪辑名称，为空则选中第一个
	Clip string
	// Store 剪辑存储，可为 nil（禁用保存）
	Store *clipstore.Store
	// TimeScale 全局时间缩放，0 表示 1.0
	TimeScale float64
}

// App 是展示程序的核心包装器，实现 ebiten.Game 接口
type App struct {
	showcase *Showcase
	verbose  bool
	showHelp bool
	status   string

	// 1x1 白色像素，缩放后绘制节点矩形
	pixel *ebiten.Image
}

// NewApp 创建并初始化展示程序
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载剪辑库
	library, err := config.NewClipLibrary(cfg.ClipPath)
	if err != nil {
		return nil, fmt.Errorf("剪辑库加载失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个剪辑: %s", library.Len(), cfg.ClipPath)

	// 合并之前保存过的剪辑
	if cfg.Store != nil {
		names, err := cfg.Store.Names()
		if err != nil {
			log.Printf("[App] Warning: failed to list stored clips: %v", err)
		}
		for _, name := range names {
			clip, err := cfg.Store.Load(name)
			if err != nil {
				log.Printf("[App] Warning: stored clip %q skipped: %v", name, err)
				continue
			}
			library.Add(clip)
		}
	}

	showcase := NewShowcase(library, cfg.Store)
	if cfg.TimeScale > 0 {
		showcase.Clock.SetTimeScale(cfg.TimeScale)
	}
	if cfg.Clip != "" {
		found := false
		for i, name := range showcase.ClipNames() {
			if name == cfg.Clip {
				showcase.SelectClip(i)
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("剪辑 '%s' 不存在（可用: %s）", cfg.Clip, strings.Join(showcase.ClipNames(), ", "))
		}
	}

	log.Printf("[App] Showcase ready, clip = %q", showcase.ClipName())

	return &App{
		showcase: showcase,
		verbose:  cfg.Verbose,
		showHelp: true,
	}, nil
}

// Update 更新展示状态
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	s := a.showcase

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.showHelp = !a.showHelp
	}

	// 剪辑控制
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		s.NextClip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		s.PrevClip()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.Restart()
	}
	// 按住方向键连续拖动播放头
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		s.Scrub(scrubStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		s.Scrub(-scrubStep)
	}

	// 序列动画
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		s.PlayBounce()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		s.CycleEase(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		s.CycleEase(-1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := s.SaveCurrent(); err != nil {
			a.status = "save failed: " + err.Error()
			log.Printf("[App] %s", a.status)
		} else {
			a.status = "saved " + s.ClipName()
		}
	}

	s.Update(clock.TickDelta())
	return nil
}

// Draw 绘制场景树和信息栏
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 36, A: 255})

	if a.pixel == nil {
		a.pixel = ebiten.NewImage(1, 1)
		a.pixel.Fill(color.White)
	}

	a.showcase.Root.Walk(func(n *scene.Node) bool {
		a.drawNode(screen, n)
		return true
	})

	a.drawInfo(screen)
}

// drawNode 以节点中心为原点缩放、旋转后绘制矩形
func (a *App) drawNode(screen *ebiten.Image, n *scene.Node) {
	if n.Width <= 0 || n.Height <= 0 {
		return
	}
	alpha := n.WorldAlpha() * n.Color.A
	if alpha <= 0 {
		return
	}

	x, y := n.WorldPosition()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Translate(-n.Width/2, -n.Height/2)
	op.GeoM.Scale(n.Scale.X, n.Scale.Y)
	op.GeoM.Rotate(n.Rotation)
	op.GeoM.Translate(x+n.Width/2, y+n.Height/2)

	glow := 0.0
	if n.Extra != nil {
		glow = n.Extra["glow"]
	}
	op.ColorScale.Scale(
		float32(n.Color.R+glow),
		float32(n.Color.G+glow),
		float32(n.Color.B+glow),
		1,
	)
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(a.pixel, op)
}

// drawInfo 绘制顶部信息栏、最近信号和帮助
func (a *App) drawInfo(screen *ebiten.Image) {
	s := a.showcase
	info := fmt.Sprintf("TPS: %.1f | clip: %s", ebiten.ActualTPS(), s.ClipName())
	if an := s.Animator(); an != nil {
		info += fmt.Sprintf(" | t=%.2f/%.2f cycle %d", an.CurrentTime(), an.Duration(), an.RepeatTimes())
		if an.Paused() {
			info += " [paused]"
		}
	}
	info += fmt.Sprintf(" | bounce ease: %s", s.EaseName())
	ebitenutil.DebugPrintAt(screen, info, 10, 10)

	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, 10, 26)
	}

	for i, ev := range s.Events() {
		ebitenutil.DebugPrintAt(screen, ev, 10, ScreenHeight-20-16*(len(s.Events())-1-i))
	}

	if a.showHelp {
		help := strings.Join([]string{
			"Up/Down   switch clip",
			"Space     pause/resume",
			"Left/Right scrub",
			"R         restart clip",
			"B         bounce sequence",
			"E/Q       bounce easing",
			"S         save clip",
			"H         help",
		}, "\n")
		ebitenutil.DebugPrintAt(screen, help, ScreenWidth-220, 40)
	}
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Showcase 返回展示状态
func (a *App) Showcase() *Showcase {
	return a.showcase
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
