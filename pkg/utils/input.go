// Package utils 提供通用工具函数
package utils

import (
	"github.com/decker502/arcade/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CollectKeyEvents 收集本帧的按键边沿并转换为状态事件
// 结果追加到 dst 并返回，调用方可以复用切片
func CollectKeyEvents(dst []game.StateEvent) []game.StateEvent {
	var pressed, released []ebiten.Key
	pressed = inpututil.AppendJustPressedKeys(pressed)
	released = inpututil.AppendJustReleasedKeys(released)
	return KeyEdgesToEvents(dst, pressed, released)
}

// KeyEdgesToEvents 把按下/释放的按键列表转换为窗口事件
// 同一帧内先报告按下，再报告释放
func KeyEdgesToEvents(dst []game.StateEvent, pressed, released []ebiten.Key) []game.StateEvent {
	for _, k := range pressed {
		dst = append(dst, game.KeyDown(k))
	}
	for _, k := range released {
		dst = append(dst, game.KeyUp(k))
	}
	return dst
}
