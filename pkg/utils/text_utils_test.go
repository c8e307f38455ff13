package utils

import (
	"testing"

	"github.com/decker502/arcade/pkg/components"
)

func TestAlignInBox(t *testing.T) {
	tests := []struct {
		align  components.Anchor
		wantDX float64
		wantDY float64
	}{
		{components.AnchorTopLeft, 0, 0},
		{components.AnchorMiddle, 250, 15},
		{components.AnchorBottomRight, 500, 30},
		{components.AnchorTopMiddle, 250, 0},
	}

	for _, tt := range tests {
		dx, dy := AlignInBox(tt.align, 600, 50, 100, 20)
		if dx != tt.wantDX || dy != tt.wantDY {
			t.Errorf("AlignInBox(%v) = (%v, %v), want (%v, %v)", tt.align, dx, dy, tt.wantDX, tt.wantDY)
		}
	}
}

func TestMeasureTextNilFace(t *testing.T) {
	if w, h := MeasureText("abc", nil); w != 0 || h != 0 {
		t.Errorf("MeasureText with nil face = (%v, %v)", w, h)
	}
}
