//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	cp -r ../data . && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.gonewx.tween -o build/android/tween.aar -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/gonewx/tween/pkg/app"
	"github.com/gonewx/tween/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	// 移动端不打开 gdata，剪辑保存被禁用
	cfg := app.Config{
		Verbose:  true,
		ClipPath: "data/clips",
	}

	showcase, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("展示程序初始化失败: %v", err)
	}

	mobile.SetGame(showcase)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
