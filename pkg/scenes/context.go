package scenes

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/level"
)

// ErrUnknownState 请求的状态ID既不是主菜单也不是已配置的关卡
var ErrUnknownState = errors.New("unknown state")

// Context 是所有状态共享的世界和服务
//
// 实体存储和标记登记表在状态之间共享：关卡标题由下一个状态的
// InitLevelTitle 替换，其余实体由创建它们的状态在 OnStop 中删除。
type Context struct {
	Entities   *ecs.EntityManager
	Markers    *level.MarkerRegistry
	Resources  *game.ResourceManager
	HighScores *game.HighScoreManager
	Clock      game.Clock
	Pool       *ecs.Pool
	Levels     *config.LevelsConfig
	Screen     level.ScreenDimensions
	Rand       *rand.Rand
}

// timerContext 返回计时器需要的最小依赖集合
func (c *Context) timerContext() level.TimerContext {
	return level.TimerContext{
		Entities:   c.Entities,
		Clock:      c.Clock,
		HighScores: c.HighScores,
		Markers:    c.Markers,
	}
}

// NewStateFactory 返回按ID创建状态的工厂
// 关卡配置在调用时读取，热重载后新进入的关卡使用新配置
func NewStateFactory(ctx *Context) game.StateFactory {
	return func(id game.StateID) (game.State, error) {
		if id == game.StateMainMenu {
			return NewMainMenuScene(ctx), nil
		}
		if ctx.Levels != nil {
			if cfg, ok := ctx.Levels.Level(string(id)); ok {
				// 复制一份，避免热重载替换配置时影响运行中的关卡
				return NewLevelScene(ctx, *cfg), nil
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, id)
	}
}

// deleteOwned 标记状态自己创建的实体待删除
// 实体在本帧结束时由 RemoveMarkedEntities 统一清理，已不存在的忽略
func deleteOwned(em *ecs.EntityManager, ids []ecs.EntityID) {
	for _, id := range ids {
		em.DestroyEntity(id)
	}
}
