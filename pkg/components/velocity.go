package components

// VelocityComponent 存储实体的移动速度（像素/秒）
type VelocityComponent struct {
	VX, VY float64
}
