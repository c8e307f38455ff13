package main

import (
	"flag"
	"log"

	"github.com/decker502/arcade/pkg/app"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose  = flag.Bool("verbose", false, "显示详细日志")
	levelID  = flag.String("level", "", "直接进入指定关卡（如 hornets），为空则进入主菜单")
	watchDir = flag.String("watch", "", "从该目录读取 levels.yaml 并在修改后热重载")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Level:    *levelID,
		WatchDir: *watchDir,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
