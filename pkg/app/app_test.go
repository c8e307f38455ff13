package app

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/embedded"
	"github.com/decker502/arcade/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

const testLevelsYAML = `levels:
  - id: hornets
    name: Hornets
    maxTime: 1
    pointsPerSecond: 4
    drifters: 2
  - id: wildfires
    name: Wildfires
    maxTime: 3
`

// setupApp 使用内存资源创建应用，存档目录指向临时目录
func setupApp(t *testing.T, cfg Config) *App {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)

	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/levels.yaml": {Data: []byte(testLevelsYAML)},
	})
	if cfg.AppName == "" {
		cfg.AppName = "arcade_app_test"
	}
	a, err := NewApp(cfg)
	if err != nil {
		t.Fatalf("NewApp() failed: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewAppStartsAtMainMenu(t *testing.T) {
	a := setupApp(t, Config{})
	if got := a.stateManager.CurrentID(); got != game.StateMainMenu {
		t.Errorf("initial state = %q, want %q", got, game.StateMainMenu)
	}
	if w, h := a.Layout(1920, 1080); w != 800 || h != 600 {
		t.Errorf("Layout() = %dx%d, want 800x600", w, h)
	}
}

func TestNewAppStartsAtLevel(t *testing.T) {
	a := setupApp(t, Config{Level: "wildfires"})
	if got := a.stateManager.CurrentID(); got != "wildfires" {
		t.Errorf("initial state = %q, want wildfires", got)
	}
}

func TestNewAppUnknownLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/levels.yaml": {Data: []byte(testLevelsYAML)},
	})
	if _, err := NewApp(Config{Level: "nope", AppName: "arcade_app_test"}); err == nil {
		t.Error("NewApp() with an unknown level should fail")
	}
}

func TestNewAppInvalidLevels(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	embedded.Init(fstest.MapFS{}, fstest.MapFS{
		"data/levels.yaml": {Data: []byte("levels: []\n")},
	})
	if _, err := NewApp(Config{AppName: "arcade_app_test"}); err == nil {
		t.Error("NewApp() with no levels should fail")
	}
}

// TestStepPlaysLevelToExpiry 关卡超时后回到主菜单并记录最高分
func TestStepPlaysLevelToExpiry(t *testing.T) {
	a := setupApp(t, Config{Level: "hornets"})

	for i := 0; i < 10 && a.stateManager.CurrentID() != game.StateMainMenu; i++ {
		if err := a.step(0.25, nil); err != nil {
			t.Fatalf("step() failed: %v", err)
		}
	}
	if got := a.stateManager.CurrentID(); got != game.StateMainMenu {
		t.Fatalf("state after expiry = %q, want main menu", got)
	}
	if got, ok := a.world.HighScores.Get("highscore_hornets"); !ok || got == 0 {
		t.Errorf("high score = %d, %v; want a committed score", got, ok)
	}
}

func TestStepEscapeReturnsToMenu(t *testing.T) {
	a := setupApp(t, Config{Level: "hornets"})

	events := []game.StateEvent{game.KeyDown(ebiten.KeyEscape)}
	if err := a.step(1.0/60, events); err != nil {
		t.Fatalf("step() failed: %v", err)
	}
	if got := a.stateManager.CurrentID(); got != game.StateMainMenu {
		t.Errorf("state after Escape = %q, want main menu", got)
	}
	if _, ok := a.world.HighScores.Get("highscore_hornets"); ok {
		t.Error("leaving early must not record a high score")
	}
	// 旧关卡的实体在这一帧结束时被清理
	if n := len(ecs.GetEntitiesWith1[*components.DrifterComponent](a.world.Entities)); n != 0 {
		t.Errorf("%d drifters left after leaving the level", n)
	}
	if n := len(ecs.GetEntitiesWith1[*components.CameraComponent](a.world.Entities)); n != 1 {
		t.Errorf("cameras = %d, want only the menu camera", n)
	}
}

func TestReloadLevels(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "levels.yaml"), []byte(testLevelsYAML), 0644); err != nil {
		t.Fatal(err)
	}
	a := setupApp(t, Config{WatchDir: dir})
	if a.watcher == nil {
		t.Fatal("watcher should be running")
	}

	path := filepath.Join(dir, "levels.yaml")
	if err := os.WriteFile(path, []byte("levels:\n  - {id: meteors, name: Meteors}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	a.reloadLevels(path)
	if _, ok := a.world.Levels.Level("meteors"); !ok {
		t.Errorf("levels after reload = %v, want meteors", a.world.Levels.IDs())
	}

	// 非法配置不覆盖当前配置
	if err := os.WriteFile(path, []byte("levels: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	a.reloadLevels(path)
	if _, ok := a.world.Levels.Level("meteors"); !ok {
		t.Error("invalid reload replaced the previous levels")
	}

	// 其他文件被忽略
	a.reloadLevels(filepath.Join(dir, "other.yaml"))
	if _, ok := a.world.Levels.Level("meteors"); !ok {
		t.Error("unrelated file changed the levels")
	}
}

// TestReloadChangedLevelsLogsWatchErrors 监视错误被取出并记录
func TestReloadChangedLevelsLogsWatchErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "levels.yaml"), []byte(testLevelsYAML), 0644); err != nil {
		t.Fatal(err)
	}
	a := setupApp(t, Config{WatchDir: dir})
	if a.watcher == nil {
		t.Fatal("watcher should be running")
	}

	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(io.Discard) })

	a.watcher.Errors <- errors.New("queue overflow")
	a.reloadChangedLevels()
	if !strings.Contains(buf.String(), "[Config] watch error: queue overflow") {
		t.Errorf("watch error not logged, got %q", buf.String())
	}
	if errs := a.watcher.PollErrors(); len(errs) != 0 {
		t.Errorf("errors left in the watcher: %v", errs)
	}
}
