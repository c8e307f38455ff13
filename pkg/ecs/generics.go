package ecs

import "reflect"

// typeOf 返回类型参数 T 的 reflect.Type（T 通常是组件指针类型）
func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// GetComponent 获取实体的 T 类型组件
//
// 用法：pos, ok := ecs.GetComponent[*components.TransformComponent](em, id)
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	var zero T
	comp, ok := em.GetComponent(id, typeOf[T]())
	if !ok {
		return zero, false
	}
	typed, ok := comp.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.HasComponent(id, typeOf[T]())
}

// GetEntitiesWith1 查询拥有 T1 组件的实体
func GetEntitiesWith1[T1 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1]())
}

// GetEntitiesWith2 查询同时拥有 T1、T2 组件的实体
func GetEntitiesWith2[T1, T2 any](em *EntityManager) []EntityID {
	return em.GetEntitiesWith(typeOf[T1](), typeOf[T2]())
}

// DeleteAllWith 立即删除所有拥有 T 组件的实体，返回删除数量
func DeleteAllWith[T any](em *EntityManager) int {
	ids := GetEntitiesWith1[T](em)
	for _, id := range ids {
		delete(em.components, id)
	}
	return len(ids)
}

// ComponentName 返回组件类型的名称，用于声明系统的数据访问集合
//
// 用法：ecs.ComponentName[*components.TransformComponent]()
func ComponentName[T any]() string {
	return typeOf[T]().String()
}
