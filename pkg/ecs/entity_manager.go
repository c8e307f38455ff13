// Package ecs 提供实体组件存储与系统调度
//
// EntityManager 负责实体和组件的存储与查询；
// Dispatcher 负责按系统声明的数据访问集合并行调度每帧系统。
package ecs

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
type EntityID uint64

// InvalidEntity 是保留的无效实体ID
const InvalidEntity EntityID = 0

// ErrInvalidEntity 表示实体句柄已失效（从未创建或已被删除）
var ErrInvalidEntity = errors.New("invalid entity")

// EntityManager 管理所有实体和组件
//
// EntityManager 本身不加锁：
// 同一调度阶段内的系统只能通过组件指针修改字段，
// 创建/删除实体或增删组件的系统必须声明 Structural 访问，由 Dispatcher 单独调度。
type EntityManager struct {
	nextID uint64
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:            1, // ID从1开始,0保留为无效ID
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建新实体并返回唯一ID
func (em *EntityManager) CreateEntity() EntityID {
	id := EntityID(em.nextID)
	em.nextID++
	em.components[id] = make(map[reflect.Type]interface{})
	return id
}

// CreateEntityWith 创建新实体并一次性挂载所有组件
func (em *EntityManager) CreateEntityWith(components ...interface{}) EntityID {
	id := em.CreateEntity()
	for _, c := range components {
		em.AddComponent(id, c)
	}
	return id
}

// Alive 检查实体是否存在
func (em *EntityManager) Alive(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// Count 返回当前存活的实体数量
func (em *EntityManager) Count() int {
	return len(em.components)
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// DeleteEntity 立即删除实体
//
// 返回：
//   - error: 实体不存在（或已删除）时返回包装了 ErrInvalidEntity 的错误
func (em *EntityManager) DeleteEntity(id EntityID) error {
	if !em.Alive(id) {
		return fmt.Errorf("delete entity %d: %w", id, ErrInvalidEntity)
	}
	delete(em.components, id)
	return nil
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
// 每帧在状态更新之后调用一次；重复标记或已删除的实体直接跳过
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按ID升序（即创建顺序）
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	// map 遍历顺序不确定，排序后系统每帧的处理顺序才稳定
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
