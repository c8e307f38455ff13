package entities

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
)

// 漂浮精灵的精灵图都是两帧的横向条带
const (
	DrifterFrames    = 2
	DrifterFrameTime = 0.12
	drifterZ         = 0.5
)

// DrifterSpec 描述一批漂浮精灵
type DrifterSpec struct {
	Sheet  string  // 精灵图资源名
	Speed  float64 // 速度大小（像素/秒）
	Width  float64 // 活动区域宽度
	Height float64 // 活动区域高度
	Margin float64 // 距边缘的最小距离
}

// NewDrifterEntity 创建一个漂浮精灵实体
// 参数:
//   - manager: EntityManager 实例
//   - rng: 随机数源，决定初始位置和方向
//   - spec: 精灵图、速度和活动区域
//
// 返回: 创建的实体ID
func NewDrifterEntity(manager *ecs.EntityManager, rng *rand.Rand, spec DrifterSpec) ecs.EntityID {
	x := spec.Margin + rng.Float64()*math.Max(0, spec.Width-2*spec.Margin)
	y := spec.Margin + rng.Float64()*math.Max(0, spec.Height-2*spec.Margin)
	angle := rng.Float64() * 2 * math.Pi

	return manager.CreateEntityWith(
		&components.DrifterComponent{},
		&components.TransformComponent{X: x, Y: y, Z: drifterZ},
		&components.VelocityComponent{
			VX: math.Cos(angle) * spec.Speed,
			VY: math.Sin(angle) * spec.Speed,
		},
		&components.SpriteComponent{Sheet: spec.Sheet, Frame: rng.IntN(DrifterFrames)},
		&components.SpriteAnimationComponent{
			FrameCount: DrifterFrames,
			FrameTime:  DrifterFrameTime,
		},
	)
}

// SpawnDrifters 创建 count 个漂浮精灵
func SpawnDrifters(manager *ecs.EntityManager, rng *rand.Rand, spec DrifterSpec, count int) []ecs.EntityID {
	ids := make([]ecs.EntityID, 0, count)
	for i := 0; i < count; i++ {
		ids = append(ids, NewDrifterEntity(manager, rng, spec))
	}
	return ids
}
