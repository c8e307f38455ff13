// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/embedded"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/level"
	"github.com/decker502/arcade/pkg/scenes"
	"github.com/decker502/arcade/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// DefaultAppName 是存档目录使用的应用名
const DefaultAppName = "arcade"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Level 指定直接进入的关卡ID（如 "hornets"），为空则进入主菜单
	Level string
	// WatchDir 不为空时从该目录读取 levels.yaml，并在文件变化时重新加载
	WatchDir string
	// AppName 存档使用的应用名，为空时使用 DefaultAppName
	AppName string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	stateManager *game.StateManager
	world        *scenes.Context
	clock        *game.Time
	watcher      *config.Watcher
	events       []game.StateEvent

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if !embedded.IsInitialized() {
		return nil, embedded.ErrNotInitialized
	}

	levels, err := loadLevels(cfg.WatchDir)
	if err != nil {
		return nil, fmt.Errorf("关卡配置加载失败: %w", err)
	}
	log.Printf("[Config] 加载 %d 个关卡: %v", len(levels.Levels), levels.IDs())

	appName := cfg.AppName
	if appName == "" {
		appName = DefaultAppName
	}
	highScores, err := game.NewHighScoreManager(openStorage(appName))
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	log.Printf("[App] Loaded high scores: %v", highScores.Keys())

	clock := game.NewTime()
	world := &scenes.Context{
		Entities:   ecs.NewEntityManager(),
		Markers:    level.NewMarkerRegistry(),
		Resources:  game.NewResourceManager(embedded.ReadFile),
		HighScores: highScores,
		Clock:      clock,
		Pool:       ecs.NewPool(0),
		Levels:     levels,
		Screen:     level.ScreenDimensions{Width: config.GameWindowWidth, Height: config.GameWindowHeight},
		Rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	a := &App{
		stateManager: game.NewStateManager(scenes.NewStateFactory(world)),
		world:        world,
		clock:        clock,
	}

	start := game.StateMainMenu
	if cfg.Level != "" {
		start = game.StateID(cfg.Level)
	}
	if err := a.stateManager.SwitchTo(start); err != nil {
		return nil, err
	}
	log.Printf("[App] Starting state: %s", start)

	if cfg.WatchDir != "" {
		w, err := config.NewWatcher(cfg.WatchDir)
		if err != nil {
			log.Printf("[App] Warning: cannot watch %s: %v", cfg.WatchDir, err)
		} else {
			a.watcher = w
			log.Printf("[App] Watching %s for level changes", cfg.WatchDir)
		}
	}

	return a, nil
}

// loadLevels 优先读取 watchDir 中的 levels.yaml，否则读取嵌入的配置
func loadLevels(watchDir string) (*config.LevelsConfig, error) {
	if watchDir != "" {
		return config.LoadLevelsConfig(filepath.Join(watchDir, filepath.Base(config.LevelsFile)))
	}
	data, err := embedded.ReadFile(config.LevelsFile)
	if err != nil {
		return nil, err
	}
	return config.ParseLevelsConfig(data, config.LevelsFile)
}

// openStorage 打开存档；失败时返回 nil，最高分只保存在内存中
func openStorage(appName string) *gdata.Manager {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, high scores will not persist: %v", err)
		return nil
	}
	return gm
}

// reloadChangedLevels 处理监视器报告的变化，配置非法时保留旧配置
func (a *App) reloadChangedLevels() {
	if a.watcher == nil {
		return
	}
	for _, err := range a.watcher.PollErrors() {
		log.Printf("[Config] watch error: %v", err)
	}
	for _, path := range a.watcher.Poll() {
		a.reloadLevels(path)
	}
}

func (a *App) reloadLevels(path string) {
	if filepath.Base(path) != filepath.Base(config.LevelsFile) {
		return
	}
	levels, err := config.LoadLevelsConfig(path)
	if err != nil {
		log.Printf("[Config] reload %s failed, keeping previous levels: %v", path, err)
		return
	}
	a.world.Levels = levels
	log.Printf("[Config] reloaded %s: %v", path, levels.IDs())
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	a.reloadChangedLevels()

	a.events = utils.CollectKeyEvents(a.events[:0])
	return a.step(1.0/float64(ebiten.TPS()), a.events)
}

// step 推进一帧：先推进时钟，再分发输入事件，然后更新当前状态，
// 最后清理本帧标记删除的实体（例如切换状态时旧状态留下的实体）
func (a *App) step(deltaTime float64, events []game.StateEvent) error {
	defer a.world.Entities.RemoveMarkedEntities()

	a.clock.Advance(deltaTime)
	if err := a.stateManager.HandleEvents(events); err != nil {
		return err
	}
	return a.stateManager.Update(deltaTime)
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.stateManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Close 释放监视器
func (a *App) Close() error {
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}
