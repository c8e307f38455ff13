package systems

import (
	"math"
	"sync"

	"github.com/decker502/arcade/pkg/ecs"
)

// ScoreBoardResource 是 ScoreBoard 在访问集合中的名字
const ScoreBoardResource = "ScoreBoard"

// ScoreBoard 保存当前会话的分数
// 由 ScoreSystem 在调度器中写入，由场景在调度结束后读取
type ScoreBoard struct {
	mu     sync.Mutex
	points float64
}

// NewScoreBoard 创建分数为 0 的计分板
func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{}
}

// Add 增加分数（可为小数，显示时向下取整）
func (b *ScoreBoard) Add(points float64) {
	if points <= 0 {
		return
	}
	b.mu.Lock()
	b.points += points
	b.mu.Unlock()
}

// Score 返回当前整数分数
func (b *ScoreBoard) Score() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(math.Floor(b.points))
}

// Reset 清零
func (b *ScoreBoard) Reset() {
	b.mu.Lock()
	b.points = 0
	b.mu.Unlock()
}

// ScoreSystem 按存活时间累积分数
type ScoreSystem struct {
	board           *ScoreBoard
	pointsPerSecond float64
}

// NewScoreSystem 创建计分系统
func NewScoreSystem(board *ScoreBoard, pointsPerSecond float64) *ScoreSystem {
	return &ScoreSystem{
		board:           board,
		pointsPerSecond: pointsPerSecond,
	}
}

// Access 声明读写的资源
func (s *ScoreSystem) Access() ecs.Access {
	return ecs.Access{Writes: []string{ScoreBoardResource}}
}

// Update 按帧间隔加分
func (s *ScoreSystem) Update(deltaTime float64) {
	s.board.Add(s.pointsPerSecond * deltaTime)
}
