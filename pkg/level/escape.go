package level

import (
	"github.com/decker502/arcade/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// ReturnToMainMenuOnEscape 按下 Esc 时返回主菜单
func ReturnToMainMenuOnEscape(event game.StateEvent) game.Transition {
	if event.Kind == game.EventWindow && event.Pressed && event.Key == ebiten.KeyEscape {
		return game.Replace(game.StateMainMenu)
	}
	return game.None()
}
