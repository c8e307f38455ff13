package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/level"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// MainMenuScene 显示游戏标题和关卡列表
// 点击按钮或按数字键 1-9 进入对应关卡，按钮上显示该关卡的最高分。
type MainMenuScene struct {
	ctx *Context

	ui       *ebitenui.UI
	render   *systems.RenderSystem
	systems  *ecs.Dispatcher // 主菜单没有逐帧系统，通常为 nil
	uiEvents []game.StateEvent

	levelIDs []string
	owned    []ecs.EntityID
}

// NewMainMenuScene 创建主菜单；实体在 OnStart 中创建
func NewMainMenuScene(ctx *Context) *MainMenuScene {
	return &MainMenuScene{ctx: ctx}
}

// OnStart 显示标题、相机、提示文本和关卡菜单
func (s *MainMenuScene) OnStart() {
	em := s.ctx.Entities

	titleSprite := config.DefaultMenuTitleSprite
	if s.ctx.Levels != nil {
		titleSprite = s.ctx.Levels.MenuTitleSprite
		s.levelIDs = s.ctx.Levels.IDs()
	}

	level.InitLevelTitle(em, s.ctx.Markers, titleSprite, s.ctx.Screen)
	s.owned = append(s.owned,
		level.InitCamera(em, s.ctx.Screen),
		entities.NewHintText(em, "Click a level or press 1-9"),
	)

	d, err := level.CreateOptionalSystemsDispatcher(s.ctx.Pool, func(*ecs.DispatcherBuilder) {})
	if err != nil {
		log.Printf("[MainMenu] build systems: %v", err)
	}
	s.systems = d
	s.render = systems.NewRenderSystem(em, s.ctx.Resources)
	s.ui = s.buildUI()
}

// OnStop 删除主菜单创建的实体，标题留给下一个状态替换
func (s *MainMenuScene) OnStop() {
	deleteOwned(s.ctx.Entities, s.owned)
	s.owned = nil
}

// HandleEvent 数字键或菜单按钮选择关卡
func (s *MainMenuScene) HandleEvent(event game.StateEvent) game.Transition {
	switch event.Kind {
	case game.EventUI:
		for _, id := range s.levelIDs {
			if id == event.Target {
				return game.Replace(game.StateID(id))
			}
		}
	case game.EventWindow:
		if !event.Pressed || event.Key < ebiten.KeyDigit1 || event.Key > ebiten.KeyDigit9 {
			break
		}
		if i := int(event.Key - ebiten.KeyDigit1); i < len(s.levelIDs) {
			return game.Replace(game.StateID(s.levelIDs[i]))
		}
	}
	return game.None()
}

// Update 处理菜单点击产生的 UI 事件
func (s *MainMenuScene) Update(deltaTime float64) game.Transition {
	if s.ui != nil {
		s.ui.Update()
	}
	if err := level.RunSystems(context.Background(), s.systems, deltaTime); err != nil {
		log.Printf("[MainMenu] systems: %v", err)
	}

	events := s.uiEvents
	s.uiEvents = nil
	for _, ev := range events {
		if t := s.HandleEvent(ev); !t.IsNone() {
			return t
		}
	}
	return game.None()
}

// Draw 绘制标题、文本和菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x10, G: 0x14, B: 0x24, A: 0xff})
	if s.render != nil {
		s.render.Draw(screen)
	}
	if s.ui != nil {
		s.ui.Draw(screen)
	}
}

// queueSelect 记录一次菜单点击，下一次 Update 时处理
func (s *MainMenuScene) queueSelect(levelID string) {
	s.uiEvents = append(s.uiEvents, game.StateEvent{Kind: game.EventUI, Target: levelID})
}

// buttonLabel 菜单按钮文本
func (s *MainMenuScene) buttonLabel(index int, cfg *config.LevelConfig) string {
	best := uint64(0)
	if s.ctx.HighScores != nil {
		best, _ = s.ctx.HighScores.Get(cfg.HighScoreKey)
	}
	return fmt.Sprintf("%d. %s   best: %d", index+1, cfg.Name, best)
}

// buildUI 构建居中的关卡按钮面板
func (s *MainMenuScene) buildUI() *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnIdle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x44, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x77, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(config.MenuRowSpacing),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(config.MenuPanelWidth, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text("Select a level", &face, color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))

	for i, id := range s.levelIDs {
		cfg, ok := s.ctx.Levels.Level(id)
		if !ok {
			continue
		}
		levelID := id
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnIdle, Hover: btnHover, Pressed: btnHover}),
			widget.ButtonOpts.Text(s.buttonLabel(i, cfg), &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center, widget.WidgetOpts.MinSize(config.MenuPanelWidth-60, config.MenuButtonHeight)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.queueSelect(levelID)
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
