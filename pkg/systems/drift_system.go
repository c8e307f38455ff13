package systems

import (
	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
)

// DriftSystem 按速度移动实体，碰到边界时反弹
// 边界是 [margin, width-margin] × [margin, height-margin]，世界坐标
type DriftSystem struct {
	entityManager *ecs.EntityManager
	width, height float64
	margin        float64
}

// NewDriftSystem 创建漂浮系统
func NewDriftSystem(em *ecs.EntityManager, width, height, margin float64) *DriftSystem {
	return &DriftSystem{
		entityManager: em,
		width:         width,
		height:        height,
		margin:        margin,
	}
}

// Access 声明读写的组件
func (s *DriftSystem) Access() ecs.Access {
	return ecs.Access{
		Writes: []string{
			ecs.ComponentName[*components.TransformComponent](),
			ecs.ComponentName[*components.VelocityComponent](),
		},
	}
}

// Update 移动所有拥有速度的实体
func (s *DriftSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.TransformComponent, *components.VelocityComponent](s.entityManager)

	for _, id := range entities {
		pos, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime

		pos.X, vel.VX = bounce(pos.X, vel.VX, s.margin, s.width-s.margin)
		pos.Y, vel.VY = bounce(pos.Y, vel.VY, s.margin, s.height-s.margin)
	}
}

// bounce 把越界的坐标镜像回区间内，并让速度朝向区间内部
func bounce(p, v, lo, hi float64) (float64, float64) {
	if hi <= lo {
		return lo, 0
	}
	switch {
	case p < lo:
		p = lo + (lo - p)
		if v < 0 {
			v = -v
		}
	case p > hi:
		p = hi - (p - hi)
		if v > 0 {
			v = -v
		}
	}
	// 一帧移动超过区间宽度时直接夹住
	if p < lo {
		p = lo
	}
	if p > hi {
		p = hi
	}
	return p, v
}
