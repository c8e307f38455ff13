package scenes

import (
	"context"
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/config"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/entities"
	"github.com/decker502/arcade/pkg/game"
	"github.com/decker502/arcade/pkg/level"
	"github.com/decker502/arcade/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// LevelScene 是一个计时关卡
//
// 进入时显示标题、计时器文本和分数，漂浮精灵在屏幕内反弹，分数随时间增长。
// 时间到（晚一帧）时提交最高分并返回主菜单；按 Esc 立即返回主菜单，不提交分数。
type LevelScene struct {
	ctx *Context
	cfg config.LevelConfig

	timer     *level.Timer
	board     *systems.ScoreBoard
	systems   *ecs.Dispatcher
	render    *systems.RenderSystem
	scoreText ecs.EntityID
	lastScore uint64
	owned     []ecs.EntityID
}

// NewLevelScene 创建关卡；实体在 OnStart 中创建
func NewLevelScene(ctx *Context, cfg config.LevelConfig) *LevelScene {
	return &LevelScene{
		ctx:   ctx,
		cfg:   cfg,
		board: systems.NewScoreBoard(),
	}
}

// OnStart 创建关卡实体并构建系统调度器
func (s *LevelScene) OnStart() {
	em := s.ctx.Entities
	screen := s.ctx.Screen

	s.owned = append(s.owned, level.InitCamera(em, screen))
	level.InitLevelTitle(em, s.ctx.Markers, s.cfg.TitleSprite, screen)
	level.InitTimerText(em, s.ctx.Markers, s.cfg.HighScoreKey, s.cfg.MaxTime)

	s.scoreText = entities.NewScoreText(em, config.ScoreTextY, config.ScoreTextSize)
	s.owned = append(s.owned, s.scoreText, entities.NewHintText(em, "Esc: back to menu"))

	rng := s.ctx.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	s.ctx.Resources.RegisterSheet(s.cfg.DrifterSprite, entities.DrifterFrames)
	s.owned = append(s.owned, entities.SpawnDrifters(em, rng, entities.DrifterSpec{
		Sheet:  s.cfg.DrifterSprite,
		Speed:  s.cfg.DrifterSpeed,
		Width:  screen.Width,
		Height: screen.Height,
		Margin: config.DrifterMargin,
	}, s.cfg.Drifters)...)

	s.timer = level.NewTimer(s.cfg.MaxTime, s.cfg.HighScoreKey)
	s.board.Reset()
	s.lastScore = 0

	d, err := level.CreateSystemsDispatcher(s.ctx.Pool, func(b *ecs.DispatcherBuilder) {
		b.With(systems.NewDriftSystem(em, screen.Width, screen.Height, config.DrifterMargin), "drift")
		b.With(systems.NewSpriteAnimationSystem(em), "sprite_animation")
		b.With(systems.NewScoreSystem(s.board, s.cfg.PointsPerSecond), "score")
	})
	if err != nil {
		log.Printf("[Level] %s: build systems: %v", s.cfg.ID, err)
	}
	s.systems = d
	s.render = systems.NewRenderSystem(em, s.ctx.Resources)

	log.Printf("[Level] %s started: %vs, key %s, %d drifters, %d entities", s.cfg.ID, s.cfg.MaxTime, s.cfg.HighScoreKey, s.cfg.Drifters, em.Count())
}

// OnStop 删除关卡创建的实体
// 计时结束时计时器文本已被删除；提前离开时在这里删除
func (s *LevelScene) OnStop() {
	deleteOwned(s.ctx.Entities, s.owned)
	s.owned = nil
	level.RemoveTimerText(s.ctx.Entities, s.ctx.Markers, s.cfg.HighScoreKey)
}

// HandleEvent 按 Esc 返回主菜单
func (s *LevelScene) HandleEvent(event game.StateEvent) game.Transition {
	return level.ReturnToMainMenuOnEscape(event)
}

// Update 先运行系统，再推进计时器
// 计时器提交的是本帧系统更新后的分数
func (s *LevelScene) Update(deltaTime float64) game.Transition {
	if err := level.RunSystems(context.Background(), s.systems, deltaTime); err != nil {
		log.Printf("[Level] %s: systems: %v", s.cfg.ID, err)
	}

	score := s.board.Score()
	if score != s.lastScore {
		if txt, ok := ecs.GetComponent[*components.TextComponent](s.ctx.Entities, s.scoreText); ok {
			txt.Text = entities.FormatScore(score)
		}
		s.lastScore = score
	}

	return s.timer.Tick(s.ctx.timerContext(), score)
}

// Draw 绘制关卡
func (s *LevelScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x20, B: 0x18, A: 0xff})
	if s.render != nil {
		s.render.Draw(screen)
	}
}

// Score 返回当前分数
func (s *LevelScene) Score() uint64 {
	return s.board.Score()
}

// Elapsed 返回已用时间（秒）
func (s *LevelScene) Elapsed() float64 {
	if s.timer == nil {
		return 0
	}
	return s.timer.Elapsed
}
