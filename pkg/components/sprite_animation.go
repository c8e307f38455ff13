package components

// SpriteAnimationComponent 按固定间隔循环播放精灵图的帧
type SpriteAnimationComponent struct {
	FrameCount int     // 帧数
	FrameTime  float64 // 每帧持续时间（秒）
	Elapsed    float64 // 当前帧已播放时间
}
