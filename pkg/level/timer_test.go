package level

import (
	"strings"
	"testing"

	"github.com/decker502/arcade/pkg/components"
	"github.com/decker502/arcade/pkg/ecs"
	"github.com/decker502/arcade/pkg/game"
)

// fakeHighScores 记录每次 UpdateIfGreater 调用
type fakeHighScores struct {
	calls []uint64
	keys  []string
}

func (f *fakeHighScores) UpdateIfGreater(key string, score uint64) {
	f.keys = append(f.keys, key)
	f.calls = append(f.calls, score)
}

// timerFixture 组装计时器测试需要的依赖
type timerFixture struct {
	em      *ecs.EntityManager
	clock   *game.Time
	scores  *fakeHighScores
	markers *MarkerRegistry
}

func newTimerFixture() *timerFixture {
	return &timerFixture{
		em:      ecs.NewEntityManager(),
		clock:   game.NewTime(),
		scores:  &fakeHighScores{},
		markers: NewMarkerRegistry(),
	}
}

func (f *timerFixture) ctx() TimerContext {
	return TimerContext{
		Entities:   f.em,
		Clock:      f.clock,
		HighScores: f.scores,
		Markers:    f.markers,
	}
}

// tick 以 delta 推进一帧
func (f *timerFixture) tick(elapsed *float64, maxTime float64, score uint64, delta float64) game.Transition {
	f.clock.Advance(delta)
	return UpdateTimerAndSetHighScore(f.ctx(), elapsed, maxTime, score, "highscore_test")
}

func (f *timerFixture) readoutText(t *testing.T, id ecs.EntityID) string {
	t.Helper()
	txt, ok := ecs.GetComponent[*components.TextComponent](f.em, id)
	if !ok {
		t.Fatalf("entity %d has no TextComponent", id)
	}
	return txt.Text
}

// TestElapsedIsSumOfDeltas 已用时间单调不减，且等于所有间隔之和
func TestElapsedIsSumOfDeltas(t *testing.T) {
	f := newTimerFixture()
	elapsed := 0.0
	sum := 0.0
	prev := 0.0

	for _, d := range []float64{0.016, 0.5, 0, 0.25, 1.0, 0.016} {
		f.tick(&elapsed, 100, 0, d)
		sum += d
		if elapsed < prev {
			t.Fatalf("elapsed decreased: %f -> %f", prev, elapsed)
		}
		if elapsed != sum {
			t.Fatalf("elapsed = %f, want %f", elapsed, sum)
		}
		prev = elapsed
	}
}

// TestExpiryIsOneFrameLate 到达 maxTime 的那一帧不结束，下一帧才结束
func TestExpiryIsOneFrameLate(t *testing.T) {
	tests := []struct {
		name   string
		deltas []float64
		want   []game.Transition
	}{
		{
			name:   "crossing frame stays, next frame ends",
			deltas: []float64{4.9, 0.2, 0.1},
			want:   []game.Transition{game.None(), game.None(), game.Replace(game.StateMainMenu)},
		},
		{
			name:   "still below max before third tick",
			deltas: []float64{4.9, 0.05, 0.1, 0.1},
			want:   []game.Transition{game.None(), game.None(), game.None(), game.Replace(game.StateMainMenu)},
		},
		{
			name:   "landing exactly on max ends next frame",
			deltas: []float64{5.0, 0.016},
			want:   []game.Transition{game.None(), game.Replace(game.StateMainMenu)},
		},
		{
			name:   "zero delta after reaching max still ends",
			deltas: []float64{6.0, 0},
			want:   []game.Transition{game.None(), game.Replace(game.StateMainMenu)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTimerFixture()
			elapsed := 0.0
			for i, d := range tt.deltas {
				got := f.tick(&elapsed, 5.0, 0, d)
				if got != tt.want[i] {
					t.Errorf("tick %d (delta %v): got %v, want %v", i, d, got, tt.want[i])
				}
			}
		})
	}
}

// TestHighScoreCommittedOnceWithFinalScore 会话结束时只提交一次，提交的是最后一帧传入的分数
func TestHighScoreCommittedOnceWithFinalScore(t *testing.T) {
	f := newTimerFixture()
	InitTimerText(f.em, f.markers, "highscore_test", 2)
	elapsed := 0.0

	var last game.Transition
	scores := []uint64{1, 5, 9, 12}
	for _, s := range scores {
		last = f.tick(&elapsed, 2.0, s, 1.0)
		if !last.IsNone() {
			break
		}
	}

	if last != game.Replace(game.StateMainMenu) {
		t.Fatalf("expected session to end, got %v", last)
	}
	if len(f.scores.calls) != 1 {
		t.Fatalf("UpdateIfGreater called %d times, want 1", len(f.scores.calls))
	}
	if f.scores.calls[0] != 9 || f.scores.keys[0] != "highscore_test" {
		t.Errorf("committed (%s, %d), want (highscore_test, 9)", f.scores.keys[0], f.scores.calls[0])
	}
}

// TestNoCommitWhileRunning 运行期间不提交最高分
func TestNoCommitWhileRunning(t *testing.T) {
	f := newTimerFixture()
	elapsed := 0.0
	for i := 0; i < 100; i++ {
		f.tick(&elapsed, 30, uint64(i), 1.0/60.0)
	}
	if len(f.scores.calls) != 0 {
		t.Errorf("UpdateIfGreater called %d times while running", len(f.scores.calls))
	}
}

// TestReadoutThrottling 只有跨过整秒才重写计时器文本
func TestReadoutThrottling(t *testing.T) {
	f := newTimerFixture()
	id := InitTimerText(f.em, f.markers, "highscore_test", 5)
	elapsed := 0.0

	// 同一整秒内不重写
	f.tick(&elapsed, 5, 0, 0.5)
	if got := f.readoutText(t, id); got != "0s /5s" {
		t.Errorf("text rewritten within the same second: %q", got)
	}

	elapsed = 0.95
	f.tick(&elapsed, 5, 0, 0.1)
	if got := f.readoutText(t, id); got != "1s / 5s" {
		t.Errorf("text after crossing 1s = %q, want %q", got, "1s / 5s")
	}

	// 手动改写后，同一秒内的帧不会覆盖它
	txt, _ := ecs.GetComponent[*components.TextComponent](f.em, id)
	txt.Text = "marker"
	f.tick(&elapsed, 5, 0, 0.1)
	if got := f.readoutText(t, id); got != "marker" {
		t.Errorf("text rewritten without crossing a second: %q", got)
	}
}

// TestReadoutFormatsFractionalMax 非整数时长按最短小数显示
func TestReadoutFormatsFractionalMax(t *testing.T) {
	f := newTimerFixture()
	id := InitTimerText(f.em, f.markers, "highscore_test", 7.5)
	if got := f.readoutText(t, id); got != "0s /7.5s" {
		t.Errorf("initial text = %q", got)
	}

	elapsed := 2.9
	f.tick(&elapsed, 7.5, 0, 0.2)
	if got := f.readoutText(t, id); got != "3s / 7.5s" {
		t.Errorf("text = %q, want %q", got, "3s / 7.5s")
	}
}

// TestExpiryDeletesReadout 结束时删除计时器文本并清除注册
func TestExpiryDeletesReadout(t *testing.T) {
	f := newTimerFixture()
	id := InitTimerText(f.em, f.markers, "highscore_test", 1)
	elapsed := 1.0

	if got := f.tick(&elapsed, 1, 3, 0.016); got != game.Replace(game.StateMainMenu) {
		t.Fatalf("expected Replace, got %v", got)
	}
	if f.em.Alive(id) {
		t.Error("timer text entity should be deleted")
	}
	if _, ok := f.markers.TimerReadout("highscore_test"); ok {
		t.Error("registry should no longer hold the timer text")
	}
	if n := len(ecs.GetEntitiesWith1[*components.TimerComponent](f.em)); n != 0 {
		t.Errorf("%d timer entities remain", n)
	}
}

// TestExpiryWithoutReadout 没有计时器文本时照常提交并返回主菜单
func TestExpiryWithoutReadout(t *testing.T) {
	f := newTimerFixture()
	elapsed := 10.0

	got := f.tick(&elapsed, 5, 42, 0.016)
	if got != game.Replace(game.StateMainMenu) {
		t.Fatalf("expected Replace, got %v", got)
	}
	if len(f.scores.calls) != 1 || f.scores.calls[0] != 42 {
		t.Errorf("high score commits = %v, want [42]", f.scores.calls)
	}
}

// TestReadoutOfOtherSessionUntouched 其他会话的计时器文本不受影响
func TestReadoutOfOtherSessionUntouched(t *testing.T) {
	f := newTimerFixture()
	other := InitTimerText(f.em, f.markers, "highscore_other", 5)
	elapsed := 5.0

	f.tick(&elapsed, 5, 0, 0.5)

	if !f.em.Alive(other) {
		t.Fatal("other session's timer text was deleted")
	}
	if got := f.readoutText(t, other); got != "0s /5s" {
		t.Errorf("other session's text changed to %q", got)
	}
}

// TestStaleReadoutPanics 注册的计时器文本已失效时删除失败，属于不变量破坏
func TestStaleReadoutPanics(t *testing.T) {
	f := newTimerFixture()
	id := InitTimerText(f.em, f.markers, "highscore_test", 1)
	if err := f.em.DeleteEntity(id); err != nil {
		t.Fatal(err)
	}
	elapsed := 1.0

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for a stale timer text handle")
		}
		if msg, _ := r.(string); !strings.Contains(msg, "Couldn't delete timer text entity!") {
			t.Errorf("unexpected panic: %v", r)
		}
	}()
	f.tick(&elapsed, 1, 0, 0.016)
}

// TestTimerTick Timer 封装与直接调用一致
func TestTimerTick(t *testing.T) {
	f := newTimerFixture()
	timer := NewTimer(1, "highscore_test")

	f.clock.Advance(0.6)
	if got := timer.Tick(f.ctx(), 1); !got.IsNone() {
		t.Fatalf("unexpected %v", got)
	}
	if timer.Remaining() != 0.4 {
		t.Errorf("Remaining = %f, want 0.4", timer.Remaining())
	}

	f.clock.Advance(0.6)
	timer.Tick(f.ctx(), 1)
	if timer.Remaining() != 0 {
		t.Errorf("Remaining should clamp to 0, got %f", timer.Remaining())
	}
	if got := timer.Tick(f.ctx(), 7); got != game.Replace(game.StateMainMenu) {
		t.Errorf("expected Replace, got %v", got)
	}
	if len(f.scores.calls) != 1 || f.scores.calls[0] != 7 {
		t.Errorf("commits = %v, want [7]", f.scores.calls)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{5, "5"},
		{7.5, "7.5"},
		{120, "120"},
		{1000000, "1000000"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Errorf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
