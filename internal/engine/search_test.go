package engine

import (
	"testing"
	"time"

	"github.com/Water-Engine/cactus/internal/board"
)

func TestSearchFindsLegalMoveFromStart(t *testing.T) {
	pos := board.NewPosition()
	searcher := NewSearcher(NewTranspositionTable(16))

	deadline := time.Now().Add(500 * time.Millisecond)
	searcher.StartSearch(pos, 4, deadline, nil)

	best := searcher.BestMove()
	if best == board.NoMove {
		t.Fatal("expected a best move from the starting position")
	}

	legal := pos.GenerateLegalMoves()
	found := false
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == best {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("search returned a move not in the legal move list: %s", best.String())
	}
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White to move: the king on f7 covers g7/g8, so a queen check down the
	// h-file (e.g. Qh1-h5#) mates the black king on h8.
	pos, err := board.ParseFEN("7k/5K2/8/8/8/8/8/7Q w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}

	searcher := NewSearcher(NewTranspositionTable(16))
	deadline := time.Now().Add(2 * time.Second)
	searcher.StartSearch(pos, 4, deadline, nil)

	if searcher.BestEval() < MateScore-1000 {
		t.Errorf("expected search to detect mate in one, got eval %d", searcher.BestEval())
	}
}

func TestSearchRespectsCancellation(t *testing.T) {
	pos := board.NewPosition()
	searcher := NewSearcher(NewTranspositionTable(16))

	deadline := time.Now().Add(10 * time.Millisecond)
	searcher.StartSearch(pos, 64, deadline, nil)

	// A cancelled search at shallow time must still publish a legal move
	// from at least the first completed iteration.
	if searcher.BestMove() == board.NoMove {
		t.Error("expected a partial result even under a tight deadline")
	}
}

func TestSearcherClearResetsState(t *testing.T) {
	pos := board.NewPosition()
	searcher := NewSearcher(NewTranspositionTable(16))

	deadline := time.Now().Add(200 * time.Millisecond)
	searcher.StartSearch(pos, 3, deadline, nil)
	if searcher.BestMove() == board.NoMove {
		t.Fatal("expected a move before Clear")
	}

	searcher.Clear()
	if searcher.BestMove() != board.NoMove {
		t.Error("expected BestMove to reset to NoMove after Clear")
	}
}

func TestGivesCheckDetectsDirectCheck(t *testing.T) {
	pos, err := board.ParseFEN("4k3/8/8/8/8/8/4R3/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	move := board.NewMove(board.E2, board.E7)
	if !givesCheck(pos, move) {
		t.Error("expected Re7 to give check to the king on e8")
	}
}

func TestIsPrePromotionPush(t *testing.T) {
	pos, err := board.ParseFEN("4k3/4P3/8/8/8/8/8/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	move := board.NewMove(board.E7, board.E8)
	if isPrePromotionPush(pos, move) {
		t.Error("did not expect a push landing on the promotion rank itself to count as pre-promotion")
	}

	pos2, err := board.ParseFEN("4k3/8/4P3/8/8/8/8/4K3 w - -")
	if err != nil {
		t.Fatalf("failed to parse FEN: %v", err)
	}
	move2 := board.NewMove(board.E6, board.E7)
	if !isPrePromotionPush(pos2, move2) {
		t.Error("expected a push to the seventh rank to count as pre-promotion")
	}
}
