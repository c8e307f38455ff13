package entities

import (
	"image/color"
	"strconv"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"golang.org/x/image/colornames"
)

// NewScoreText 创建关卡中的分数文本（顶部居中，在计时器文本下方）
func NewScoreText(manager *ecs.EntityManager, y, fontSize float64) ecs.EntityID {
	return manager.CreateEntityWith(
		&components.UITransformComponent{
			ID:     "score_text",
			Anchor: components.AnchorTopMiddle,
			Pivot:  components.AnchorTopMiddle,
			Y:      -y,
			Width:  600,
			Height: 40,
		},
		&components.TextComponent{
			Text:     FormatScore(0),
			Font:     game.FontMain,
			Color:    colornames.Gold,
			FontSize: fontSize,
			Align:    components.AnchorMiddle,
		},
	)
}

// NewHintText 创建底部居中的提示文本
func NewHintText(manager *ecs.EntityManager, hint string) ecs.EntityID {
	return manager.CreateEntityWith(
		&components.UITransformComponent{
			ID:     "hint_text",
			Anchor: components.AnchorBottomMiddle,
			Pivot:  components.AnchorBottomMiddle,
			Y:      10,
			Width:  600,
			Height: 30,
		},
		&components.TextComponent{
			Text:     hint,
			Font:     game.FontMain,
			Color:    color.Gray{Y: 200},
			FontSize: 14,
			Align:    components.AnchorMiddle,
		},
	)
}

// FormatScore 分数文本格式
func FormatScore(score uint64) string {
	return "Score: " + strconv.FormatUint(score, 10)
}
