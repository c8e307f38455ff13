package components

// TimerComponent 标记关卡计时器文本实体
// 实体同时持有 TextComponent 和 UITransformComponent，
// 文本内容为 "{已过秒数}s / {最大秒数}s"，关卡结束时由计时器逻辑删除
type TimerComponent struct{}
