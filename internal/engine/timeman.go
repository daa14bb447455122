package engine

import (
	"time"

	"github.com/Water-Engine/cactus/internal/board"
)

// UCILimits holds the UCI `go` parameters describing a search budget.
type UCILimits struct {
	Time      [2]time.Duration
	Inc       [2]time.Duration
	MovesToGo int
	MoveTime  time.Duration
	Depth     int
	Nodes     uint64
	Infinite  bool
	Ponder    bool
}

// TimeManager turns a UCILimits into a concrete optimum/maximum think time.
type TimeManager struct {
	optimumTime time.Duration
	maximumTime time.Duration
	startTime   time.Time
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init computes the think-time budget for the side to move, following
// base = T/40; + 0.8*I if T > 2*I; floor at min(50ms, 0.25*T); optionally
// capped by maxThinkTimeMs. `go movetime` overrides the computation
// entirely, and `go infinite` disables the budget until Stop is called.
func (tm *TimeManager) Init(limits UCILimits, us board.Color, ply int, maxThinkTimeMs int) {
	tm.startTime = time.Now()

	if limits.MoveTime > 0 {
		tm.optimumTime = limits.MoveTime
		tm.maximumTime = limits.MoveTime
		return
	}

	if limits.Infinite || limits.Time[us] == 0 {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	t := limits.Time[us]
	inc := limits.Inc[us]

	budget := t / 40
	if t > 2*inc {
		budget += (inc * 8) / 10
	}

	floor := t / 4
	if 50*time.Millisecond < floor {
		floor = 50 * time.Millisecond
	}
	if budget < floor {
		budget = floor
	}

	if maxThinkTimeMs > 0 {
		cap := time.Duration(maxThinkTimeMs) * time.Millisecond
		if budget > cap {
			budget = cap
		}
	}

	tm.optimumTime = budget
	tm.maximumTime = budget
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// OptimumTime returns the target time for this move.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the hard deadline for this move.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// Deadline returns the wall-clock instant the search must stop by.
func (tm *TimeManager) Deadline() time.Time {
	return tm.startTime.Add(tm.maximumTime)
}

// ShouldStop reports whether the maximum time has elapsed.
func (tm *TimeManager) ShouldStop() bool {
	return tm.Elapsed() >= tm.maximumTime
}

// PastOptimum reports whether the iteration-boundary optimum time has elapsed.
func (tm *TimeManager) PastOptimum() bool {
	return tm.Elapsed() >= tm.optimumTime
}
