package game

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// StateFactory 状态工厂函数类型
// 用于根据ID创建状态，避免 game 包依赖 scenes 包
type StateFactory func(id StateID) (State, error)

// StateManager manages the game's high-level state by controlling which state is active.
// It ensures only one state's Update and Draw methods are called at any given time,
// and applies the Transition decisions returned by the active state.
type StateManager struct {
	current      State
	currentID    StateID
	stateFactory StateFactory // 状态工厂函数，用于创建新状态
}

// NewStateManager creates and returns a new StateManager instance.
// The manager starts with no active state; use SwitchTo to set the initial state.
func NewStateManager(factory StateFactory) *StateManager {
	return &StateManager{
		stateFactory: factory,
	}
}

// SwitchTo 切换到指定ID的状态
//
// 旧状态的 OnStop 在新状态创建成功之后、OnStart 之前调用；
// 创建失败时保留旧状态并返回错误。
func (sm *StateManager) SwitchTo(id StateID) error {
	if sm.stateFactory == nil {
		return fmt.Errorf("switch to %s: state factory not set", id)
	}

	next, err := sm.stateFactory(id)
	if err != nil {
		return fmt.Errorf("switch to %s: %w", id, err)
	}

	if sm.current != nil {
		sm.current.OnStop()
	}
	log.Printf("[StateManager] %s -> %s", sm.currentID, id)
	sm.current = next
	sm.currentID = id
	next.OnStart()
	return nil
}

// Apply 执行一个切换决策
// TransNone 什么也不做
func (sm *StateManager) Apply(t Transition) error {
	if t.Kind != TransReplace {
		return nil
	}
	return sm.SwitchTo(t.Next)
}

// CurrentID 返回当前状态的ID，没有活动状态时返回空字符串
func (sm *StateManager) CurrentID() StateID {
	return sm.currentID
}

// Current 返回当前活动的状态，没有活动状态时返回 nil
func (sm *StateManager) Current() State {
	return sm.current
}

// HandleEvents 把本帧的输入事件依次分发给当前状态
// 一旦某个事件触发了状态切换，剩余事件交给新状态处理
func (sm *StateManager) HandleEvents(events []StateEvent) error {
	for _, ev := range events {
		if sm.current == nil {
			return nil
		}
		if err := sm.Apply(sm.current.HandleEvent(ev)); err != nil {
			return err
		}
	}
	return nil
}

// Update updates the currently active state and applies its transition.
// If no state is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *StateManager) Update(deltaTime float64) error {
	if sm.current == nil {
		return nil
	}
	return sm.Apply(sm.current.Update(deltaTime))
}

// Draw renders the currently active state to the provided screen.
// If no state is active, this method does nothing.
func (sm *StateManager) Draw(screen *ebiten.Image) {
	if sm.current != nil {
		sm.current.Draw(screen)
	}
}
