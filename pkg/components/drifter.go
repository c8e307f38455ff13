package components

// DrifterComponent 标记在屏幕内漂浮反弹的装饰精灵
type DrifterComponent struct{}
