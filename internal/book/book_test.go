package book

import (
	"strings"
	"testing"

	"github.com/Water-Engine/cactus/internal/board"
)

const sampleBook = `pos rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -
e2e4 10
d2d4 5

pos rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq -
e7e5 8
c7c5 2
`

func TestBookLoadAndProbe(t *testing.T) {
	book, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("failed to load book: %v", err)
	}

	if book.Size() != 2 {
		t.Errorf("expected 2 positions, got %d", book.Size())
	}

	pos := board.NewPosition()
	entries := book.ProbeAll(pos)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for start position, got %d", len(entries))
	}
	if entries[0].Move.String() != "e2e4" || entries[0].PlayCount != 10 {
		t.Errorf("expected e2e4 with count 10 first, got %s/%d", entries[0].Move.String(), entries[0].PlayCount)
	}
}

func TestBookProbeWeighting(t *testing.T) {
	book, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("failed to load book: %v", err)
	}

	pos := board.NewPosition()

	for i := 0; i < 20; i++ {
		move, found := book.Probe(pos, 1.0)
		if !found {
			t.Fatal("expected a book hit")
		}
		if move != board.NewDoublePawnPush(board.E2, board.E4) && move != board.NewDoublePawnPush(board.D2, board.D4) {
			t.Errorf("unexpected book move %s", move.String())
		}
	}
}

func TestBookMiss(t *testing.T) {
	book := New()
	pos := board.NewPosition()

	move, found := book.Probe(pos, 0.5)
	if found {
		t.Error("expected book miss on empty book")
	}
	if move != board.NoMove {
		t.Errorf("expected NoMove on miss, got %s", move.String())
	}
}

func TestBookPlyGate(t *testing.T) {
	book, err := LoadReader(strings.NewReader(sampleBook))
	if err != nil {
		t.Fatalf("failed to load book: %v", err)
	}

	pos := board.NewPosition()
	for i := 0; i < MaxBookPly+4; i++ {
		moves := pos.GenerateLegalMoves()
		if moves.Len() == 0 {
			break
		}
		pos.MakeMove(moves.Get(0))
	}

	if _, found := book.Probe(pos, 0.5); found {
		t.Error("expected book to be skipped once ply_count exceeds the gate")
	}
}

func TestBookNilSafety(t *testing.T) {
	var book *Book
	pos := board.NewPosition()

	if _, found := book.Probe(pos, 0.5); found {
		t.Error("expected nil book to report a miss")
	}
	if book.ProbeAll(pos) != nil {
		t.Error("expected nil book to return no entries")
	}
	if book.Size() != 0 {
		t.Error("expected nil book size to be 0")
	}
}
