package config

import "testing"

func TestScreenCenter(t *testing.T) {
	x, y := ScreenCenter()
	if x != 400 || y != 300 {
		t.Errorf("ScreenCenter() = (%v, %v), want (400, 300)", x, y)
	}
}

// TestMenuFitsScreen 菜单面板不能超出屏幕
func TestMenuFitsScreen(t *testing.T) {
	if MenuPanelWidth > GameWindowWidth {
		t.Errorf("menu panel %d wider than screen %d", MenuPanelWidth, GameWindowWidth)
	}
	if MenuButtonHeight*9+MenuRowSpacing*8 > GameWindowHeight {
		t.Errorf("nine menu buttons do not fit on screen")
	}
}
