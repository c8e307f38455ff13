package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// LevelsFile 嵌入资源中关卡配置文件的路径
const LevelsFile = "data/levels.yaml"

// 默认值
const (
	DefaultMenuTitleSprite = "main_menu_title.png"
	DefaultMaxTime         = 60.0
	DefaultPointsPerSecond = 1.0
	DefaultDrifterSpeed    = 80.0
	DefaultDrifterSprite   = "hornet.png"
)

// LevelsConfig 所有关卡的配置
type LevelsConfig struct {
	MenuTitleSprite string        `yaml:"menuTitleSprite"` // 主菜单标题图片
	Levels          []LevelConfig `yaml:"levels"`          // 关卡列表，按菜单显示顺序
}

// LevelConfig 单个计时关卡的配置
type LevelConfig struct {
	ID              string  `yaml:"id"`              // 关卡ID，同时作为状态ID，如 "hornets"
	Name            string  `yaml:"name"`            // 菜单上显示的名称
	TitleSprite     string  `yaml:"titleSprite"`     // 标题图片，默认 "<id>_title.png"
	MaxTime         float64 `yaml:"maxTime"`         // 关卡时长（秒）
	HighScoreKey    string  `yaml:"highScoreKey"`    // 最高分键，默认 "highscore_<id>"
	PointsPerSecond float64 `yaml:"pointsPerSecond"` // 每秒得分
	Drifters        int     `yaml:"drifters"`        // 漂浮精灵数量
	DrifterSprite   string  `yaml:"drifterSprite"`   // 漂浮精灵图片
	DrifterSpeed    float64 `yaml:"drifterSpeed"`    // 漂浮速度（像素/秒）
}

// LoadLevelsConfig 从YAML文件加载关卡配置
func LoadLevelsConfig(path string) (*LevelsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read levels config file %s: %w", path, err)
	}
	return ParseLevelsConfig(data, path)
}

// ParseLevelsConfig 解析YAML数据，source 仅用于错误信息
func ParseLevelsConfig(data []byte, source string) (*LevelsConfig, error) {
	var cfg LevelsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse levels config YAML from %s: %w", source, err)
	}

	applyDefaults(&cfg)

	if err := validateLevelsConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid levels config in %s: %w", source, err)
	}
	return &cfg, nil
}

// Level 按ID查找关卡
func (c *LevelsConfig) Level(id string) (*LevelConfig, bool) {
	for i := range c.Levels {
		if c.Levels[i].ID == id {
			return &c.Levels[i], true
		}
	}
	return nil, false
}

// IDs 返回所有关卡ID，保持配置文件中的顺序
func (c *LevelsConfig) IDs() []string {
	ids := make([]string, 0, len(c.Levels))
	for _, l := range c.Levels {
		ids = append(ids, l.ID)
	}
	return ids
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *LevelsConfig) {
	if cfg.MenuTitleSprite == "" {
		cfg.MenuTitleSprite = DefaultMenuTitleSprite
	}

	for i := range cfg.Levels {
		l := &cfg.Levels[i]
		if l.TitleSprite == "" {
			l.TitleSprite = l.ID + "_title.png"
		}
		if l.MaxTime == 0 {
			l.MaxTime = DefaultMaxTime
		}
		if l.HighScoreKey == "" {
			l.HighScoreKey = "highscore_" + l.ID
		}
		if l.PointsPerSecond == 0 {
			l.PointsPerSecond = DefaultPointsPerSecond
		}
		if l.DrifterSprite == "" {
			l.DrifterSprite = DefaultDrifterSprite
		}
		if l.DrifterSpeed == 0 {
			l.DrifterSpeed = DefaultDrifterSpeed
		}
	}
}

// validateLevelsConfig 验证关卡配置的完整性和合法性
func validateLevelsConfig(cfg *LevelsConfig) error {
	if len(cfg.Levels) == 0 {
		return fmt.Errorf("at least one level is required")
	}

	seen := make(map[string]bool, len(cfg.Levels))
	for i, l := range cfg.Levels {
		if l.ID == "" {
			return fmt.Errorf("level %d: id is required", i)
		}
		// 主菜单占用了这个状态ID
		if l.ID == "main_menu" {
			return fmt.Errorf("level %d: id %q is reserved", i, l.ID)
		}
		if seen[l.ID] {
			return fmt.Errorf("level %d: duplicate id %q", i, l.ID)
		}
		seen[l.ID] = true

		if l.Name == "" {
			return fmt.Errorf("level %q: name is required", l.ID)
		}
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"maxTime", l.MaxTime},
			{"pointsPerSecond", l.PointsPerSecond},
			{"drifterSpeed", l.DrifterSpeed},
		} {
			if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
				return fmt.Errorf("level %q: %s must be a finite number, got %v", l.ID, f.name, f.value)
			}
		}
		if l.MaxTime < 0 {
			return fmt.Errorf("level %q: maxTime cannot be negative, got %v", l.ID, l.MaxTime)
		}
		if l.PointsPerSecond < 0 {
			return fmt.Errorf("level %q: pointsPerSecond cannot be negative, got %v", l.ID, l.PointsPerSecond)
		}
		if l.Drifters < 0 {
			return fmt.Errorf("level %q: drifters cannot be negative, got %d", l.ID, l.Drifters)
		}
		if l.DrifterSpeed < 0 {
			return fmt.Errorf("level %q: drifterSpeed cannot be negative, got %v", l.ID, l.DrifterSpeed)
		}
	}
	return nil
}
