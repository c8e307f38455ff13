package components

import "image/color"

// Anchor identifies a point on a rectangle (the screen or a UI element's box).
type Anchor int

const (
	// AnchorTopLeft is the top-left corner.
	AnchorTopLeft Anchor = iota
	// AnchorTopMiddle is the middle of the top edge.
	AnchorTopMiddle
	// AnchorTopRight is the top-right corner.
	AnchorTopRight
	// AnchorMiddleLeft is the middle of the left edge.
	AnchorMiddleLeft
	// AnchorMiddle is the center.
	AnchorMiddle
	// AnchorMiddleRight is the middle of the right edge.
	AnchorMiddleRight
	// AnchorBottomLeft is the bottom-left corner.
	AnchorBottomLeft
	// AnchorBottomMiddle is the middle of the bottom edge.
	AnchorBottomMiddle
	// AnchorBottomRight is the bottom-right corner.
	AnchorBottomRight
)

// Factors returns the anchor position as fractions of a rectangle's width and height,
// where (0, 0) is the top-left corner and (1, 1) the bottom-right corner.
func (a Anchor) Factors() (fx, fy float64) {
	switch a {
	case AnchorTopLeft:
		return 0, 0
	case AnchorTopMiddle:
		return 0.5, 0
	case AnchorTopRight:
		return 1, 0
	case AnchorMiddleLeft:
		return 0, 0.5
	case AnchorMiddle:
		return 0.5, 0.5
	case AnchorMiddleRight:
		return 1, 0.5
	case AnchorBottomLeft:
		return 0, 1
	case AnchorBottomMiddle:
		return 0.5, 1
	case AnchorBottomRight:
		return 1, 1
	}
	return 0, 0
}

// UITransformComponent places a UI element in screen space, independent of the camera.
//
// The element's Pivot point is placed at the screen's Anchor point, shifted by (X, Y).
// Y grows upwards, so a negative Y moves a top-anchored element down into the screen.
type UITransformComponent struct {
	// ID is a debug name for the element, e.g. "timer_text".
	ID string
	// Anchor is the point on the screen the element is attached to.
	Anchor Anchor
	// Pivot is the point on the element's own box that sits on the anchor.
	Pivot Anchor
	// X, Y offset the element from the anchor in pixels.
	X, Y float64
	// Z orders UI elements; higher is drawn later.
	Z float64
	// Width and Height are the element's box size in pixels.
	Width, Height float64
}

// ScreenRect resolves the element's top-left corner for a screen of the given size.
func (t *UITransformComponent) ScreenRect(screenWidth, screenHeight float64) (x, y float64) {
	ax, ay := t.Anchor.Factors()
	px, py := t.Pivot.Factors()
	x = screenWidth*ax + t.X - t.Width*px
	y = screenHeight*ay - t.Y - t.Height*py
	return x, y
}

// TextComponent is a line of UI text.
type TextComponent struct {
	// Text is the string to display.
	Text string
	// Font is the font resource name resolved by the ResourceManager.
	Font string
	// Color is the text color.
	Color color.Color
	// FontSize is the font size in points.
	FontSize float64
	// Align is the alignment of the text inside its UITransformComponent box.
	Align Anchor
}
