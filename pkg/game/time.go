package game

// Clock 提供每帧的时间间隔
type Clock interface {
	// DeltaSeconds 返回距上一帧经过的秒数，每帧采样一次
	DeltaSeconds() float64
}

// Time 是游戏主循环维护的帧时间资源
// 每帧开始时由 App 调用 Advance 更新
type Time struct {
	delta   float64
	elapsed float64
	frame   uint64
}

// NewTime 创建帧时间资源
func NewTime() *Time {
	return &Time{}
}

// Advance 进入新的一帧
func (t *Time) Advance(deltaSeconds float64) {
	t.delta = deltaSeconds
	t.elapsed += deltaSeconds
	t.frame++
}

// DeltaSeconds 返回本帧的时间间隔（秒）
func (t *Time) DeltaSeconds() float64 {
	return t.delta
}

// AbsoluteTime 返回游戏启动以来累计的秒数
func (t *Time) AbsoluteTime() float64 {
	return t.elapsed
}

// FrameNumber 返回当前帧序号（第一帧为 1）
func (t *Time) FrameNumber() uint64 {
	return t.frame
}

// FixedClock 是返回固定时间间隔的 Clock，用于测试和无窗口模拟
type FixedClock float64

// DeltaSeconds 实现 Clock
func (c FixedClock) DeltaSeconds() float64 {
	return float64(c)
}
