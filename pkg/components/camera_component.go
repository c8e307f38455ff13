package components

// CameraComponent 描述 2D 正交相机
// 相机实体的 TransformComponent 是可视区域的中心点
type CameraComponent struct {
	// Width 可视区域宽度（世界单位）
	Width float64

	// Height 可视区域高度（世界单位）
	Height float64
}
