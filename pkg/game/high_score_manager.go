package game

import (
	"fmt"
	"log"
	"sort"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// HighScoreTable 是持久化的最高分表
// 键为关卡/模式的最高分标识（如 "highscore_hornets"），值为该键的历史最高分
type HighScoreTable struct {
	Scores map[string]uint64 `yaml:"scores"`
}

// HighScoreManager 最高分管理器
//
// 职责：
//   - 加载和保存最高分表
//   - 提供"仅当更高时更新"的单调写入
//
// 架构说明：
//   - 数据通过 gdata 持久化（YAML 格式，与设置存储保持一致）
//   - gdataManager 为 nil 时进入降级模式，只在内存中保存
type HighScoreManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	table        *HighScoreTable
}

// 存储路径常量
const (
	highScoreObject   = "highscores"
	highScoreProperty = "table"
)

// NewHighScoreManager 创建最高分管理器并加载已保存的数据
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存）
//
// 返回：
//   - *HighScoreManager: 管理器实例（加载失败时使用空表，不返回 nil）
//   - error: 加载失败的原因（不影响使用）
func NewHighScoreManager(gdataManager *gdata.Manager) (*HighScoreManager, error) {
	hm := &HighScoreManager{
		gdataManager: gdataManager,
		table:        newHighScoreTable(),
	}

	if err := hm.Load(); err != nil {
		log.Printf("[HighScoreManager] Warning: Failed to load high scores: %v (starting empty)", err)
		return hm, err
	}
	return hm, nil
}

func newHighScoreTable() *HighScoreTable {
	return &HighScoreTable{Scores: make(map[string]uint64)}
}

// Load 从 gdata 加载最高分表
//
// 如果 gdataManager 为 nil 或数据不存在，使用空表
func (hm *HighScoreManager) Load() error {
	if hm.gdataManager == nil {
		hm.table = newHighScoreTable()
		return nil
	}

	if !hm.gdataManager.ObjectPropExists(highScoreObject, highScoreProperty) {
		hm.table = newHighScoreTable()
		return nil
	}

	data, err := hm.gdataManager.LoadObjectProp(highScoreObject, highScoreProperty)
	if err != nil {
		hm.table = newHighScoreTable()
		return fmt.Errorf("failed to load high scores: %w", err)
	}

	var loaded HighScoreTable
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		hm.table = newHighScoreTable()
		return fmt.Errorf("failed to unmarshal high scores: %w", err)
	}
	if loaded.Scores == nil {
		loaded.Scores = make(map[string]uint64)
	}

	hm.table = &loaded
	log.Printf("[HighScoreManager] Loaded %d high score entries", len(loaded.Scores))
	return nil
}

// Save 保存最高分表到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (hm *HighScoreManager) Save() error {
	if hm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(hm.table)
	if err != nil {
		return fmt.Errorf("failed to marshal high scores: %w", err)
	}

	if err := hm.gdataManager.SaveObjectProp(highScoreObject, highScoreProperty, data); err != nil {
		return fmt.Errorf("failed to save high scores: %w", err)
	}
	return nil
}

// Get 返回指定键的最高分，从未记录过时返回 (0, false)
func (hm *HighScoreManager) Get(key string) (uint64, bool) {
	score, ok := hm.table.Scores[key]
	return score, ok
}

// Keys 返回所有已记录的键（按字典序）
func (hm *HighScoreManager) Keys() []string {
	keys := make([]string, 0, len(hm.table.Scores))
	for k := range hm.table.Scores {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UpdateIfGreater 当 score 严格大于已记录的最高分时更新并立即持久化
//
// 未记录过的键视为 0 分；相同的输入重复调用不会产生任何变化。
// 持久化失败只记录日志，内存中的记录仍然更新。
func (hm *HighScoreManager) UpdateIfGreater(key string, score uint64) {
	if score <= hm.table.Scores[key] {
		return
	}

	hm.table.Scores[key] = score
	log.Printf("[HighScoreManager] New high score for %s: %d", key, score)

	if err := hm.Save(); err != nil {
		log.Printf("[HighScoreManager] Warning: %v", err)
	}
}
