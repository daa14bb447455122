package engine

import (
	"testing"

	"github.com/Water-Engine/cactus/internal/board"
)

func TestHashMoveScoresHighest(t *testing.T) {
	pos := board.NewPosition()
	mo := NewMoveOrderer()

	moves := pos.GenerateLegalMoves()
	ttMove := moves.Get(0)

	scores := mo.ScoreMoves(pos, moves, 0, ttMove)
	for i := 1; i < moves.Len(); i++ {
		if scores[0] < scores[i] {
			t.Errorf("expected hash move to score highest, got scores[0]=%d scores[%d]=%d", scores[0], i, scores[i])
		}
	}
	if scores[0] != hashMoveScore {
		t.Errorf("expected hash move score %d, got %d", hashMoveScore, scores[0])
	}
}

func TestCaptureScoresAboveQuiet(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/3p4/4P3/8/8/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	mo := NewMoveOrderer()
	moves := pos.GenerateLegalMoves()
	scores := mo.ScoreMoves(pos, moves, 0, board.NoMove)

	var captureScore, quietScore int
	foundCapture, foundQuiet := false, false
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if m.IsCapture(pos) {
			captureScore = scores[i]
			foundCapture = true
		} else {
			quietScore = scores[i]
			foundQuiet = true
		}
	}
	if !foundCapture || !foundQuiet {
		t.Fatal("expected both a capture and a quiet move in this position")
	}
	if captureScore <= quietScore {
		t.Errorf("expected capture score %d to exceed quiet score %d", captureScore, quietScore)
	}
}

func TestSortMovesDescending(t *testing.T) {
	pos := board.NewPosition()
	mo := NewMoveOrderer()
	moves := pos.GenerateLegalMoves()
	scores := mo.ScoreMoves(pos, moves, 0, board.NoMove)

	SortMoves(moves, scores)

	for i := 1; i < moves.Len(); i++ {
		if scores[i] > scores[i-1] {
			t.Errorf("scores not sorted descending at index %d: %d > %d", i, scores[i], scores[i-1])
		}
	}
}

func TestUpdateKillersShiftsSlots(t *testing.T) {
	mo := NewMoveOrderer()
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	mo.UpdateKillers(m1, 0)
	if mo.killers[0][0] != m1 {
		t.Fatalf("expected killer slot 0 to hold %s", m1.String())
	}

	mo.UpdateKillers(m2, 0)
	if mo.killers[0][0] != m2 || mo.killers[0][1] != m1 {
		t.Errorf("expected killers to shift: slot0=%s slot1=%s", mo.killers[0][0].String(), mo.killers[0][1].String())
	}

	// Re-installing the current slot-0 killer must not duplicate it into slot 1.
	mo.UpdateKillers(m2, 0)
	if mo.killers[0][1] != m1 {
		t.Errorf("expected repeated killer to leave slot 1 untouched, got %s", mo.killers[0][1].String())
	}
}

func TestUpdateHistoryAccumulatesByDepthSquared(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)

	mo.UpdateHistory(board.White, m, 3)
	if got := mo.history[board.White][board.E2][board.E4]; got != 9 {
		t.Errorf("expected history entry 9 after depth 3 cutoff, got %d", got)
	}

	mo.UpdateHistory(board.White, m, 4)
	if got := mo.history[board.White][board.E2][board.E4]; got != 25 {
		t.Errorf("expected history entry 25 after accumulating depth 4 cutoff, got %d", got)
	}
}

func TestClearHalvesHistoryAndResetsKillers(t *testing.T) {
	mo := NewMoveOrderer()
	m := board.NewMove(board.E2, board.E4)
	mo.UpdateKillers(m, 0)
	mo.UpdateHistory(board.White, m, 4)

	mo.Clear()

	if mo.killers[0][0] != board.NoMove {
		t.Errorf("expected killers cleared, got %s", mo.killers[0][0].String())
	}
	if got := mo.history[board.White][board.E2][board.E4]; got != 8 {
		t.Errorf("expected history halved to 8, got %d", got)
	}
}
