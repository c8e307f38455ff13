package level

import "github.com/decker502/arcade/pkg/ecs"

// MarkerRegistry 记录"至多一个"的标记实体
//
//   - 计时器文本：每个最高分键（即每个关卡会话）至多一个
//   - 关卡标题：全局至多一个
//
// 查找走注册表而不是按标记组件扫描实体，保证零或一由结构本身维持。
type MarkerRegistry struct {
	timers map[string]ecs.EntityID
	title  ecs.EntityID
}

// NewMarkerRegistry 创建空的注册表
func NewMarkerRegistry() *MarkerRegistry {
	return &MarkerRegistry{
		timers: make(map[string]ecs.EntityID),
	}
}

// TimerReadout 返回指定会话键的计时器文本实体
func (r *MarkerRegistry) TimerReadout(key string) (ecs.EntityID, bool) {
	id, ok := r.timers[key]
	return id, ok
}

// LevelTitle 返回当前的关卡标题实体
func (r *MarkerRegistry) LevelTitle() (ecs.EntityID, bool) {
	return r.title, r.title != ecs.InvalidEntity
}

func (r *MarkerRegistry) setTimerReadout(key string, id ecs.EntityID) {
	r.timers[key] = id
}

func (r *MarkerRegistry) clearTimerReadout(key string) {
	delete(r.timers, key)
}

func (r *MarkerRegistry) setLevelTitle(id ecs.EntityID) {
	r.title = id
}

func (r *MarkerRegistry) clearLevelTitle() {
	r.title = ecs.InvalidEntity
}
