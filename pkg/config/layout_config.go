package config

// 布局配置常量
// 所有坐标使用屏幕像素，原点在左上角

const (
	// GameWindowWidth 逻辑屏幕宽度
	GameWindowWidth = 800

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 600

	// WindowTitle 窗口标题
	WindowTitle = "Arcade"
)

// 主菜单布局
const (
	// MenuPanelWidth 关卡按钮面板宽度
	MenuPanelWidth = 320

	// MenuRowSpacing 按钮之间的间距
	MenuRowSpacing = 12

	// MenuButtonHeight 按钮最小高度
	MenuButtonHeight = 36
)

// 关卡画面布局
const (
	// ScoreTextY 分数文本距屏幕顶部的距离
	ScoreTextY = 100.0

	// ScoreTextSize 分数文本字号
	ScoreTextSize = 20.0

	// DrifterMargin 漂浮精灵距屏幕边缘的最小距离
	DrifterMargin = 16.0
)

// ScreenCenter 返回屏幕中心点
func ScreenCenter() (float64, float64) {
	return GameWindowWidth / 2.0, GameWindowHeight / 2.0
}
