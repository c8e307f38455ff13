package level

import (
	"image/color"
	"log"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
)

// ScreenDimensions 是当前视口尺寸（逻辑像素）
type ScreenDimensions struct {
	Width  float64
	Height float64
}

// 计时器文本布局：顶部居中，向下 65 像素，600x50 的文本框
const (
	timerTextID       = "timer_text"
	timerTextOffsetY  = -65.0
	timerTextWidth    = 600.0
	timerTextHeight   = 50.0
	timerTextFontSize = 25.0
)

// titleHeightFactor 关卡标题中心点所在的高度比例
const titleHeightFactor = 0.93

// InitTimerText 创建计时器文本，初始内容为 "0s /{maxSeconds}s"
// 实体带 TimerComponent 标记，并登记为 key 会话的计时器文本；
// 计时结束时由 UpdateTimerAndSetHighScore 删除。
// 同一 key 已有计时器文本时先删除旧的。
func InitTimerText(em *ecs.EntityManager, markers *MarkerRegistry, key string, maxSeconds float64) ecs.EntityID {
	if old, ok := markers.TimerReadout(key); ok {
		if err := em.DeleteEntity(old); err != nil {
			log.Printf("[Level] stale timer text for %s: %v", key, err)
		}
		markers.clearTimerReadout(key)
	}

	id := em.CreateEntityWith(
		&components.TimerComponent{},
		&components.UITransformComponent{
			ID:     timerTextID,
			Anchor: components.AnchorTopMiddle,
			Pivot:  components.AnchorTopMiddle,
			X:      0,
			Y:      timerTextOffsetY,
			Z:      0,
			Width:  timerTextWidth,
			Height: timerTextHeight,
		},
		&components.TextComponent{
			// 初始文本斜杠前没有空格，与运行中的 "{t}s / {max}s" 不同
			Text:     "0s /" + formatSeconds(maxSeconds) + "s",
			Font:     game.FontMain,
			Color:    color.White,
			FontSize: timerTextFontSize,
			Align:    components.AnchorMiddle,
		},
	)
	markers.setTimerReadout(key, id)
	return id
}

// RemoveTimerText 删除 key 会话的计时器文本（如果有）
// 会话未到时就离开（例如按 Esc）时由状态的 OnStop 调用
func RemoveTimerText(em *ecs.EntityManager, markers *MarkerRegistry, key string) {
	id, ok := markers.TimerReadout(key)
	if !ok {
		return
	}
	markers.clearTimerReadout(key)
	if !ecs.HasComponent[*components.TimerComponent](em, id) {
		log.Printf("[Level] stale timer text for %s: entity %d is gone", key, id)
		return
	}
	_ = em.DeleteEntity(id)
}

// InitCamera 创建以视口中心为中心的 2D 相机
// 每次调用都会新建一个相机实体，状态进入时只应调用一次
func InitCamera(em *ecs.EntityManager, screen ScreenDimensions) ecs.EntityID {
	return em.CreateEntityWith(
		&components.CameraComponent{Width: screen.Width, Height: screen.Height},
		&components.TransformComponent{X: screen.Width * 0.5, Y: screen.Height * 0.5, Z: 1},
	)
}

// InitLevelTitle 在屏幕顶部显示关卡标题精灵
// 先删除已有的标题（包括未登记的 LevelTitleComponent 实体），因此所有关卡
// （包括主菜单）在退出时都无需手动清理标题。
func InitLevelTitle(em *ecs.EntityManager, markers *MarkerRegistry, sheet string, screen ScreenDimensions) ecs.EntityID {
	if old, ok := markers.LevelTitle(); ok {
		if err := em.DeleteEntity(old); err != nil {
			log.Printf("[Level] stale level title: %v", err)
		}
		markers.clearLevelTitle()
	}
	ecs.DeleteAllWith[*components.LevelTitleComponent](em)

	id := em.CreateEntityWith(
		&components.LevelTitleComponent{},
		&components.TransformComponent{X: screen.Width * 0.5, Y: screen.Height * titleHeightFactor, Z: 0},
		&components.SpriteComponent{Sheet: sheet, Frame: 0},
	)
	markers.setLevelTitle(id)
	return id
}
