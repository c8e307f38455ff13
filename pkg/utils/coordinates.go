package utils

// Camera 描述正交相机的可视区域
// (X, Y) 是可视区域中心的世界坐标
type Camera struct {
	X, Y          float64
	Width, Height float64
}

// WorldToScreen 世界坐标转换为屏幕坐标
//
// 世界坐标的 Y 轴向上，屏幕坐标的 Y 轴向下：
//
//	screenX = x - (cam.X - cam.Width/2)
//	screenY = cam.Height - (y - (cam.Y - cam.Height/2))
func WorldToScreen(x, y float64, cam Camera) (float64, float64) {
	left := cam.X - cam.Width/2
	bottom := cam.Y - cam.Height/2
	return x - left, cam.Height - (y - bottom)
}

// ScreenToWorld 是 WorldToScreen 的逆变换
func ScreenToWorld(sx, sy float64, cam Camera) (float64, float64) {
	left := cam.X - cam.Width/2
	bottom := cam.Y - cam.Height/2
	return sx + left, cam.Height - sy + bottom
}
