package engine

import (
	"testing"
	"time"

	"github.com/Water-Engine/cactus/internal/board"
)

func TestTimeManagerBaseBudget(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{}
	limits.Time[board.White] = 40 * time.Second

	tm.Init(limits, board.White, 0, 0)

	want := 40 * time.Second / 40
	if tm.OptimumTime() != want {
		t.Errorf("expected optimum time %v, got %v", want, tm.OptimumTime())
	}
}

func TestTimeManagerAddsIncrementWhenAmple(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{}
	limits.Time[board.White] = 40 * time.Second
	limits.Inc[board.White] = 2 * time.Second // T > 2*I

	tm.Init(limits, board.White, 0, 0)

	base := 40 * time.Second / 40
	want := base + (2*time.Second*8)/10
	if tm.OptimumTime() != want {
		t.Errorf("expected optimum time %v, got %v", want, tm.OptimumTime())
	}
}

func TestTimeManagerFloor(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{}
	limits.Time[board.White] = 100 * time.Millisecond

	tm.Init(limits, board.White, 0, 0)

	// base = 2.5ms, floor = min(50ms, 25ms) = 25ms
	want := 25 * time.Millisecond
	if tm.OptimumTime() != want {
		t.Errorf("expected floored optimum time %v, got %v", want, tm.OptimumTime())
	}
}

func TestTimeManagerMoveTimeOverride(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{MoveTime: 750 * time.Millisecond}
	limits.Time[board.White] = 40 * time.Second

	tm.Init(limits, board.White, 0, 0)

	if tm.OptimumTime() != 750*time.Millisecond || tm.MaximumTime() != 750*time.Millisecond {
		t.Errorf("expected movetime to override computed budget, got optimum=%v maximum=%v",
			tm.OptimumTime(), tm.MaximumTime())
	}
}

func TestTimeManagerMaxThinkTimeCap(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{}
	limits.Time[board.White] = 40 * time.Second

	tm.Init(limits, board.White, 0, 200)

	if tm.OptimumTime() != 200*time.Millisecond {
		t.Errorf("expected think-time cap to apply, got %v", tm.OptimumTime())
	}
}

func TestTimeManagerInfiniteDisablesBudget(t *testing.T) {
	tm := NewTimeManager()
	limits := UCILimits{Infinite: true}

	tm.Init(limits, board.White, 0, 0)

	if tm.ShouldStop() {
		t.Error("expected an infinite search to not report ShouldStop immediately")
	}
}
