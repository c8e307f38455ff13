package utils

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// AlignInBox 计算文本在盒子内的左上角偏移
// 按 align 把文本的同名锚点对齐到盒子的锚点
func AlignInBox(align components.Anchor, boxWidth, boxHeight, textWidth, textHeight float64) (float64, float64) {
	fx, fy := align.Factors()
	return (boxWidth - textWidth) * fx, (boxHeight - textHeight) * fy
}

// MeasureText 测量单行文本的宽高，face 为 nil 时返回 0
func MeasureText(s string, face *text.GoTextFace) (float64, float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}
