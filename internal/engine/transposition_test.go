package engine

import (
	"testing"

	"github.com/Water-Engine/cactus/internal/board"
)

func TestTranspositionStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(1)
	move := board.NewMove(board.E2, board.E4)

	tt.Store(12345, 6, 200, TTExact, move)

	entry, found := tt.Probe(12345)
	if !found {
		t.Fatal("expected a hit after store")
	}
	if entry.BestMove != move || entry.Depth != 6 || entry.Score != 200 || entry.Flag != TTExact {
		t.Errorf("unexpected entry: %+v", entry)
	}
}

func TestTranspositionAlwaysReplace(t *testing.T) {
	tt := NewTranspositionTable(1)
	m1 := board.NewMove(board.E2, board.E4)
	m2 := board.NewMove(board.D2, board.D4)

	// Two keys with the same low bits (table index) but different upper 32
	// bits (key tag) collide in a 1MB table; the later store always wins
	// regardless of the depth of the earlier one.
	idx := uint64(7)
	key1 := idx
	key2 := idx | (uint64(1) << 32)

	tt.Store(key1, 10, 500, TTExact, m1)
	tt.Store(key2, 1, -50, TTExact, m2)

	if _, found := tt.Probe(key1); found {
		t.Error("expected the first key's entry to have been replaced")
	}
	entry, found := tt.Probe(key2)
	if !found || entry.BestMove != m2 {
		t.Errorf("expected the most recent store to be retained, got found=%v entry=%+v", found, entry)
	}
}

func TestTranspositionClear(t *testing.T) {
	tt := NewTranspositionTable(1)
	tt.Store(1, 5, 100, TTExact, board.NewMove(board.E2, board.E4))
	tt.Clear()

	if _, found := tt.Probe(1); found {
		t.Error("expected table to be empty after Clear")
	}
}

func TestMateScoreDetection(t *testing.T) {
	if !IsMateScore(MateScore - 1) {
		t.Error("expected a near-mate score to be detected as a mate score")
	}
	if IsMateScore(500) {
		t.Error("did not expect an ordinary material score to be flagged as mate")
	}
}

func TestAdjustScoreToAndFromTT(t *testing.T) {
	score := MateScore - 5
	ply := 3

	stored := AdjustScoreToTT(score, ply)
	if stored != score+ply {
		t.Errorf("expected stored mate score %d, got %d", score+ply, stored)
	}

	recovered := AdjustScoreFromTT(stored, ply)
	if recovered != score {
		t.Errorf("expected round-trip to recover %d, got %d", score, recovered)
	}
}

func TestAdjustScoreLeavesNonMateScoresUnchanged(t *testing.T) {
	if AdjustScoreToTT(120, 4) != 120 {
		t.Error("expected a non-mate score to pass through unchanged")
	}
}
