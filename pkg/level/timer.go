// Package level 提供所有关卡共用的会话机制
//
// 包括关卡倒计时与最高分提交、相机/计时器文本/关卡标题的初始化、
// 每个状态的系统调度器构建，以及按 Esc 返回主菜单。
package level

import (
	"fmt"
	"log"
	"math"
	"strconv"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
)

// HighScoreStore 是最高分存储
// 同一输入重复调用必须幂等
type HighScoreStore interface {
	UpdateIfGreater(key string, score uint64)
}

// TimerContext 是计时器逻辑需要的全部外部依赖
type TimerContext struct {
	Entities   *ecs.EntityManager
	Clock      game.Clock
	HighScores HighScoreStore
	Markers    *MarkerRegistry
}

// UpdateTimerAndSetHighScore 用本帧间隔推进已用时间，时间用尽时提交最高分并返回主菜单
//
// 关卡是否结束按推进前的 elapsed 判断：到达 maxTime 的那一帧不结束，下一帧才结束。
// 计时器文本只在跨过整秒或关卡结束时重写；关卡结束时删除计时器文本实体，
// 删除失败说明注册表与实体存储不一致，直接 panic。
//
// 参数：
//   - ctx: 实体存储、时钟、最高分存储和标记注册表
//   - elapsed: 调用方持有的已用时间（秒），每次调用都会被更新
//   - maxTime: 关卡时长（秒）
//   - score: 当前得分，关卡结束时提交
//   - highScoreKey: 最高分键，同时标识计时器文本所属的会话
//
// 返回：
//   - game.Transition: 关卡结束时为 Replace(StateMainMenu)，否则为 None
func UpdateTimerAndSetHighScore(ctx TimerContext, elapsed *float64, maxTime float64, score uint64, highScoreKey string) game.Transition {
	newTime := *elapsed + ctx.Clock.DeltaSeconds()

	// 是否跨过了一个整秒
	crossedSecond := math.Floor(newTime) > math.Floor(*elapsed)

	levelIsOver := *elapsed >= maxTime

	*elapsed = newTime

	timerEntity := ecs.InvalidEntity
	if crossedSecond || levelIsOver {
		if id, ok := ctx.Markers.TimerReadout(highScoreKey); ok {
			if txt, ok := ecs.GetComponent[*components.TextComponent](ctx.Entities, id); ok {
				txt.Text = formatTimer(*elapsed, maxTime)
			}
			if levelIsOver {
				timerEntity = id
			}
		}
	}

	if !levelIsOver {
		return game.None()
	}

	ctx.HighScores.UpdateIfGreater(highScoreKey, score)
	log.Printf("[LevelTimer] %s over after %.2fs, score %d", highScoreKey, *elapsed, score)

	if timerEntity != ecs.InvalidEntity {
		if err := ctx.Entities.DeleteEntity(timerEntity); err != nil {
			panic(fmt.Sprintf("Couldn't delete timer text entity! %v", err))
		}
		ctx.Markers.clearTimerReadout(highScoreKey)
	}

	return game.Replace(game.StateMainMenu)
}

// formatTimer 生成运行中的计时器文本，如 "3s / 30s"
func formatTimer(elapsed, maxTime float64) string {
	return formatSeconds(math.Floor(elapsed)) + "s / " + formatSeconds(maxTime) + "s"
}

// formatSeconds 整数值不带小数部分（5 -> "5"），其余按最短表示（7.5 -> "7.5"）
func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Timer 是关卡状态持有的会话计时器
type Timer struct {
	Elapsed      float64
	MaxTime      float64
	HighScoreKey string
}

// NewTimer 创建从 0 开始的会话计时器
func NewTimer(maxTime float64, highScoreKey string) *Timer {
	return &Timer{MaxTime: maxTime, HighScoreKey: highScoreKey}
}

// Tick 推进一帧，见 UpdateTimerAndSetHighScore
func (t *Timer) Tick(ctx TimerContext, score uint64) game.Transition {
	return UpdateTimerAndSetHighScore(ctx, &t.Elapsed, t.MaxTime, score, t.HighScoreKey)
}

// Remaining 返回剩余秒数，不小于 0
func (t *Timer) Remaining() float64 {
	return math.Max(0, t.MaxTime-t.Elapsed)
}
