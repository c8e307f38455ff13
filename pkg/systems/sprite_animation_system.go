package systems

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
)

// SpriteAnimationSystem 循环切换精灵图的帧
type SpriteAnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewSpriteAnimationSystem 创建帧动画系统
func NewSpriteAnimationSystem(em *ecs.EntityManager) *SpriteAnimationSystem {
	return &SpriteAnimationSystem{entityManager: em}
}

// Access 声明读写的组件
func (s *SpriteAnimationSystem) Access() ecs.Access {
	return ecs.Access{
		Writes: []string{
			ecs.ComponentName[*components.SpriteComponent](),
			ecs.ComponentName[*components.SpriteAnimationComponent](),
		},
	}
}

// Update 推进所有帧动画
func (s *SpriteAnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.SpriteAnimationComponent, *components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.SpriteAnimationComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		if anim.FrameCount <= 1 || anim.FrameTime <= 0 {
			continue
		}

		anim.Elapsed += deltaTime
		for anim.Elapsed >= anim.FrameTime {
			anim.Elapsed -= anim.FrameTime
			sprite.Frame = (sprite.Frame + 1) % anim.FrameCount
		}
	}
}
