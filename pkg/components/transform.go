package components

// TransformComponent 存储实体的世界坐标
// Z 越大越靠前绘制；相机实体的 Z 为 1
type TransformComponent struct {
	X, Y, Z float64
}
