package components

// SpriteComponent 存储实体的视觉表现
// Sheet 是精灵图资源名（如 "hornets_title.png"），由 ResourceManager 解析为图像
type SpriteComponent struct {
	Sheet string // 精灵图资源名
	Frame int    // 精灵图中的帧序号
}
