package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// StateID 标识一个游戏状态
// 主菜单使用 StateMainMenu，关卡状态使用关卡ID（如 "hornets"）
type StateID string

// StateMainMenu 是主菜单状态的ID
const StateMainMenu StateID = "main_menu"

// TransKind 是状态切换决策的类型
type TransKind int

const (
	// TransNone 保持当前状态
	TransNone TransKind = iota
	// TransReplace 用 Next 指定的新状态替换当前状态
	TransReplace
)

// Transition 是状态逻辑返回给 StateManager 的切换决策
// 状态逻辑只计算决策，真正的切换由 StateManager 执行
type Transition struct {
	Kind TransKind
	Next StateID // 仅 TransReplace 时有效
}

// None 返回"保持当前状态"的决策
func None() Transition {
	return Transition{Kind: TransNone}
}

// Replace 返回"切换到 next"的决策
func Replace(next StateID) Transition {
	return Transition{Kind: TransReplace, Next: next}
}

// IsNone 判断决策是否为保持当前状态
func (t Transition) IsNone() bool {
	return t.Kind == TransNone
}

// String 用于日志输出
func (t Transition) String() string {
	if t.Kind == TransReplace {
		return "Replace(" + string(t.Next) + ")"
	}
	return "None"
}

// EventKind 是输入事件的来源
type EventKind int

const (
	// EventWindow 窗口/键盘事件
	EventWindow EventKind = iota
	// EventUI UI 控件事件（如菜单按钮点击）
	EventUI
)

// StateEvent 是每帧分发给当前状态的输入事件
type StateEvent struct {
	Kind    EventKind
	Key     ebiten.Key // 仅键盘事件有效
	Pressed bool       // true 表示按下沿，false 表示松开沿
	Target  string     // 仅 UI 事件有效：触发事件的控件ID
}

// KeyDown 构造一个按键按下事件
func KeyDown(key ebiten.Key) StateEvent {
	return StateEvent{Kind: EventWindow, Key: key, Pressed: true}
}

// KeyUp 构造一个按键松开事件
func KeyUp(key ebiten.Key) StateEvent {
	return StateEvent{Kind: EventWindow, Key: key, Pressed: false}
}

// State represents a game state (e.g., main menu, a timed level).
// Each state has its own update and rendering logic and returns
// transition decisions instead of switching states itself.
type State interface {
	// OnStart is called once when the state becomes active.
	OnStart()

	// OnStop is called once when the state is replaced.
	OnStop()

	// HandleEvent reacts to a single input event.
	HandleEvent(event StateEvent) Transition

	// Update advances the state by one frame.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64) Transition

	// Draw renders the state to the provided screen.
	Draw(screen *ebiten.Image)
}
