// simulate_session 在无窗口的情况下跑完一局关卡计时，打印计时器文本变化和最终提交的最高分
//
// 用法：
//
//	go run ./cmd/simulate_session -level hornets
//	go run ./cmd/simulate_session -level wildfires -dt 0.5 -rate 3
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/level"
	"github.com/decker502/arcade/pkg/systems"
)

var (
	levelsPath = flag.String("levels", config.LevelsFile, "关卡配置文件")
	levelID    = flag.String("level", "hornets", "关卡ID")
	deltaTime  = flag.Float64("dt", 1.0/60.0, "每帧时间（秒）")
	rate       = flag.Float64("rate", -1, "每秒得分，负数表示使用关卡配置")
	maxFrames  = flag.Int("max-frames", 1_000_000, "最多模拟的帧数")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	levels, err := config.LoadLevelsConfig(*levelsPath)
	if err != nil {
		fatalf("加载关卡配置失败: %v", err)
	}
	cfg, ok := levels.Level(*levelID)
	if !ok {
		fatalf("未知关卡 %q，可选: %v", *levelID, levels.IDs())
	}
	if *deltaTime <= 0 {
		fatalf("dt 必须大于 0")
	}
	pps := cfg.PointsPerSecond
	if *rate >= 0 {
		pps = *rate
	}

	highScores, _ := game.NewHighScoreManager(nil)
	clock := game.NewTime()
	ctx := level.TimerContext{
		Entities:   ecs.NewEntityManager(),
		Clock:      clock,
		HighScores: highScores,
		Markers:    level.NewMarkerRegistry(),
	}

	textID := level.InitTimerText(ctx.Entities, ctx.Markers, cfg.HighScoreKey, cfg.MaxTime)
	lastText := readoutText(ctx.Entities, textID)
	fmt.Printf("[%8.3fs] %s\n", 0.0, lastText)

	board := systems.NewScoreBoard()
	timer := level.NewTimer(cfg.MaxTime, cfg.HighScoreKey)

	for clock.FrameNumber() < uint64(*maxFrames) {
		clock.Advance(*deltaTime)
		board.Add(pps * *deltaTime)

		transition := timer.Tick(ctx, board.Score())

		if t := readoutText(ctx.Entities, textID); t != "" && t != lastText {
			lastText = t
			fmt.Printf("[%8.3fs] %s (%.2fs left)\n", timer.Elapsed, t, timer.Remaining())
		}

		if !transition.IsNone() {
			best, _ := highScores.Get(cfg.HighScoreKey)
			fmt.Printf("frame %d at %.3fs: %s\n", clock.FrameNumber(), clock.AbsoluteTime(), transition)
			fmt.Printf("%s = %d\n", cfg.HighScoreKey, best)
			return
		}
	}
	fatalf("关卡在 %d 帧内没有结束", *maxFrames)
}

// readoutText 返回计时器文本，实体已删除时返回空字符串
func readoutText(em *ecs.EntityManager, id ecs.EntityID) string {
	if txt, ok := ecs.GetComponent[*components.TextComponent](em, id); ok {
		return txt.Text
	}
	return ""
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
