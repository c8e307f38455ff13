package ecs

import (
	"errors"
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

type testTagComponent struct{}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if id2 != 2 {
		t.Errorf("Second entity ID should be 2, got %d", id2)
	}
}

func TestCreateEntityWith(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntityWith(&testPositionComponent{X: 1}, &testTagComponent{})

	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Position component should be attached")
	}
	if !em.HasComponent(id, reflect.TypeOf(&testTagComponent{})) {
		t.Error("Tag component should be attached")
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	// 添加组件
	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	// 获取组件
	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	// 标记删除
	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Alive(id) {
		t.Error("Entity should still exist before cleanup")
	}

	// 清理后实体消失
	em.RemoveMarkedEntities()
	if em.Alive(id) {
		t.Error("Entity should be removed after cleanup")
	}
}

func TestDeleteEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	if err := em.DeleteEntity(id); err != nil {
		t.Fatalf("DeleteEntity returned error: %v", err)
	}
	if em.Alive(id) {
		t.Error("Entity should be gone immediately")
	}

	// 二次删除是无效句柄
	err := em.DeleteEntity(id)
	if !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("Expected ErrInvalidEntity, got %v", err)
	}

	if err := em.DeleteEntity(InvalidEntity); !errors.Is(err, ErrInvalidEntity) {
		t.Errorf("Deleting entity 0 should fail, got %v", err)
	}
}

func TestGetEntitiesWith(t *testing.T) {
	em := NewEntityManager()

	// 创建不同组件组合的实体
	id1 := em.CreateEntity()
	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	em.AddComponent(id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	em.AddComponent(id3, &testVelocityComponent{})

	// 查询拥有 Position+Velocity 的实体
	entities := em.GetEntitiesWith(
		reflect.TypeOf(&testPositionComponent{}),
		reflect.TypeOf(&testVelocityComponent{}),
	)

	if len(entities) != 1 {
		t.Fatalf("Expected 1 entity with both components, got %d", len(entities))
	}
	if entities[0] != id1 {
		t.Error("Query should return only id1")
	}

	// 查询只拥有 Position 的实体，结果按创建顺序
	posEntities := em.GetEntitiesWith(reflect.TypeOf(&testPositionComponent{}))
	if !reflect.DeepEqual(posEntities, []EntityID{id1, id2}) {
		t.Errorf("Expected [%d %d], got %v", id1, id2, posEntities)
	}
}

func TestGetEntitiesWithIsOrdered(t *testing.T) {
	em := NewEntityManager()
	for i := 0; i < 50; i++ {
		em.CreateEntityWith(&testTagComponent{})
	}

	ids := GetEntitiesWith1[*testTagComponent](em)
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("IDs not ascending at %d: %v", i, ids)
		}
	}
}

func TestDestroyMultipleEntities(t *testing.T) {
	em := NewEntityManager()

	// 创建多个实体
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()
	id3 := em.CreateEntity()

	em.AddComponent(id1, &testPositionComponent{})
	em.AddComponent(id2, &testPositionComponent{})
	em.AddComponent(id3, &testPositionComponent{})

	// 标记两个实体删除
	em.DestroyEntity(id1)
	em.DestroyEntity(id3)

	// 清理
	em.RemoveMarkedEntities()

	// 验证只有id2存在
	if em.HasComponent(id1, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id1 should be removed")
	}
	if !em.HasComponent(id2, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id2 should still exist")
	}
	if em.HasComponent(id3, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("id3 should be removed")
	}
	if em.Count() != 1 {
		t.Errorf("Expected 1 live entity, got %d", em.Count())
	}
}
