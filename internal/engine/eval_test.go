package engine

import (
	"testing"

	"github.com/Water-Engine/cactus/internal/board"
)

func TestEvaluateStartingPositionIsBalanced(t *testing.T) {
	pos := board.NewPosition()
	score := Evaluate(pos)
	if score != 0 {
		t.Errorf("expected symmetric starting position to evaluate to 0, got %d", score)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	pos, err := board.ParseFEN("rnbqkb1r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	score := Evaluate(pos)
	if score <= 0 {
		t.Errorf("expected White up a knight to score positive, got %d", score)
	}
}

func TestEvaluateMaterialQuick(t *testing.T) {
	pos := board.NewPosition()
	if EvaluateMaterial(pos) != 0 {
		t.Errorf("expected balanced material to be 0, got %d", EvaluateMaterial(pos))
	}
}

func TestPassedPawnBonusIncreasesNearPromotion(t *testing.T) {
	far, err := board.ParseFEN("4k3/8/8/8/8/8/P7/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	near, err := board.ParseFEN("4k3/8/8/8/8/P7/8/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if Evaluate(near) <= Evaluate(far) {
		t.Errorf("expected a more advanced passed pawn to score higher: near=%d far=%d",
			Evaluate(near), Evaluate(far))
	}
}

func TestIsolatedPawnPenalized(t *testing.T) {
	isolated, err := board.ParseFEN("4k3/8/8/8/8/8/P1P5/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	connected, err := board.ParseFEN("4k3/8/8/8/8/8/PP6/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	if Evaluate(isolated) >= Evaluate(connected) {
		t.Errorf("expected isolated pawns to score lower than connected pawns: isolated=%d connected=%d",
			Evaluate(isolated), Evaluate(connected))
	}
}
