// main.go - 属性动画展示程序
//
// 用法：
//
//	go run . --clip=intro
//	go run . --clips=data/clips/ambient.yaml --timescale=0.5 --verbose
package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/tween/pkg/app"
	"github.com/gonewx/tween/pkg/clipstore"
	"github.com/gonewx/tween/pkg/embedded"
)

// appName 存档目录名称（gdata 使用）
const appName = "tween_showcase"

var (
	verbose   = flag.Bool("verbose", false, "详细日志")
	clipPath  = flag.String("clips", "data/clips", "剪辑目录或文件（嵌入资源路径）")
	clipName  = flag.String("clip", "", "启动时选中的剪辑")
	timeScale = flag.Float64("timescale", 1, "全局时间缩放")
	noStore   = flag.Bool("nostore", false, "禁用剪辑存储")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:   *verbose,
		ClipPath:  *clipPath,
		Clip:      *clipName,
		TimeScale: *timeScale,
	}
	if !*noStore {
		cfg.Store = clipstore.NewStore(openStorage())
	}

	showcase, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("展示程序初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Tween Showcase")

	if err := ebiten.RunGame(showcase); err != nil {
		log.Fatal(err)
	}
}

// openStorage 打开 gdata 存储，失败时返回 nil（剪辑只保存在内存中）
func openStorage() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Main] Warning: gdata unavailable, clips are kept in memory: %v", err)
		return nil
	}
	return m
}
