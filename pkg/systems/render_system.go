package systems

import (
	"log"
	"sort"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// RenderSystem 绘制世界中的精灵和屏幕空间的 UI 文本
// 不参与调度器，由场景在 Draw 中调用
type RenderSystem struct {
	entityManager *ecs.EntityManager
	resources     *game.ResourceManager
	badFonts      map[string]bool // 已报告过加载失败的字体，避免每帧刷屏
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		resources:     rm,
		badFonts:      make(map[string]bool),
	}
}

// Draw 先画精灵，再画 UI 文本
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	sw, sh := float64(b.Dx()), float64(b.Dy())

	s.DrawSprites(screen, s.ActiveCamera(sw, sh))
	s.DrawTexts(screen, sw, sh)
}

// ActiveCamera 返回最后创建的相机；没有相机时使用以屏幕中心为中心的默认相机
func (s *RenderSystem) ActiveCamera(screenWidth, screenHeight float64) utils.Camera {
	cameras := ecs.GetEntitiesWith2[*components.CameraComponent, *components.TransformComponent](s.entityManager)
	if len(cameras) == 0 {
		return utils.Camera{X: screenWidth / 2, Y: screenHeight / 2, Width: screenWidth, Height: screenHeight}
	}

	id := cameras[len(cameras)-1]
	cam, _ := ecs.GetComponent[*components.CameraComponent](s.entityManager, id)
	pos, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	return utils.Camera{X: pos.X, Y: pos.Y, Width: cam.Width, Height: cam.Height}
}

// SpriteDrawOrder 返回需要绘制的精灵实体，按 Z 升序，Z 相同按实体ID
func (s *RenderSystem) SpriteDrawOrder() []ecs.EntityID {
	ids := ecs.GetEntitiesWith2[*components.SpriteComponent, *components.TransformComponent](s.entityManager)
	sort.SliceStable(ids, func(i, j int) bool {
		pi, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, ids[i])
		pj, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, ids[j])
		return pi.Z < pj.Z
	})
	return ids
}

// DrawSprites 以精灵中心为锚点绘制所有精灵
func (s *RenderSystem) DrawSprites(screen *ebiten.Image, cam utils.Camera) {
	for _, id := range s.SpriteDrawOrder() {
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		pos, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)

		img := s.resources.GetSpriteFrame(sprite.Sheet, sprite.Frame)
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		sx, sy := utils.WorldToScreen(pos.X, pos.Y, cam)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(sx-float64(w)/2, sy-float64(h)/2)
		screen.DrawImage(img, op)
	}
}

// DrawTexts 绘制所有 UI 文本，位置与相机无关
func (s *RenderSystem) DrawTexts(screen *ebiten.Image, screenWidth, screenHeight float64) {
	ids := ecs.GetEntitiesWith2[*components.UITransformComponent, *components.TextComponent](s.entityManager)
	sort.SliceStable(ids, func(i, j int) bool {
		ti, _ := ecs.GetComponent[*components.UITransformComponent](s.entityManager, ids[i])
		tj, _ := ecs.GetComponent[*components.UITransformComponent](s.entityManager, ids[j])
		return ti.Z < tj.Z
	})

	for _, id := range ids {
		tr, _ := ecs.GetComponent[*components.UITransformComponent](s.entityManager, id)
		txt, _ := ecs.GetComponent[*components.TextComponent](s.entityManager, id)

		face, err := s.resources.LoadFont(txt.Font, txt.FontSize)
		if err != nil {
			if !s.badFonts[txt.Font] {
				log.Printf("[RenderSystem] skip text %q: %v", tr.ID, err)
				s.badFonts[txt.Font] = true
			}
			continue
		}

		x, y := tr.ScreenRect(screenWidth, screenHeight)
		tw, th := utils.MeasureText(txt.Text, face)
		dx, dy := utils.AlignInBox(txt.Align, tr.Width, tr.Height, tw, th)

		op := &text.DrawOptions{}
		op.GeoM.Translate(x+dx, y+dy)
		if txt.Color != nil {
			op.ColorScale.ScaleWithColor(txt.Color)
		}
		text.Draw(screen, txt.Text, face, op)
	}
}
