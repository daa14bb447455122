package board

import "testing"

func TestMoveEncodingRoundTrip(t *testing.T) {
	m := NewMove(E2, E4)
	if m.From() != E2 {
		t.Errorf("From() = %v, want E2", m.From())
	}
	if m.To() != E4 {
		t.Errorf("To() = %v, want E4", m.To())
	}

	promo := NewPromotion(A7, A8, Queen)
	if promo.From() != A7 || promo.To() != A8 {
		t.Errorf("promotion move encoded wrong squares: from=%v to=%v", promo.From(), promo.To())
	}
	if !promo.IsPromotion() || promo.Promotion() != Queen {
		t.Error("expected a queen promotion")
	}
}

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	pos := NewPosition()
	before := pos.FEN()
	beforeHash := pos.Hash()

	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		pos.MakeMove(m)
		pos.UnmakeMove(m)

		if got := pos.FEN(); got != before {
			t.Fatalf("move %v: FEN after make/unmake = %q, want %q", m, got, before)
		}
		if pos.Hash() != beforeHash {
			t.Fatalf("move %v: hash after make/unmake = %x, want %x", m, pos.Hash(), beforeHash)
		}
	}
}

func TestIncrementalHashMatchesRecompute(t *testing.T) {
	pos := NewPosition()

	var walk func(depth int)
	walk = func(depth int) {
		if depth == 0 {
			return
		}
		moves := pos.GenerateLegalMoves()
		for i := 0; i < moves.Len() && i < 6; i++ {
			m := moves.Get(i)
			pos.MakeMove(m)
			if pos.Hash() != pos.computeHash() {
				t.Errorf("move %v: incremental hash %x != recomputed hash %x", m, pos.Hash(), pos.computeHash())
			}
			walk(depth - 1)
			pos.UnmakeMove(m)
		}
	}
	walk(3)
}

func TestCastlingRightsClearedOnlyForMovingSide(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}

	pos.MakeMove(NewMove(E1, E2)) // white king steps, forfeiting both white rights
	if pos.CastlingRights()&(WhiteKingSide|WhiteQueenSide) != 0 {
		t.Error("expected white castling rights cleared")
	}
	if pos.CastlingRights()&(BlackKingSide|BlackQueenSide) != BlackKingSide|BlackQueenSide {
		t.Error("expected black castling rights untouched")
	}
}

func TestEnPassantFENRoundTrip(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	if got := pos.FEN(); got != "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3" {
		t.Errorf("FEN() = %q, want the en-passant square preserved", got)
	}
}

func TestEnPassantOmittedWhenNoCaptureExists(t *testing.T) {
	// Black just pushed h7-h5, but no white pawn stands on g5 to capture it.
	pos, err := ParseFEN("rnbqkbnr/ppppppp1/8/7p/8/8/PPPPPPPP/RNBQKBNR w KQkq h6 0 2")
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	want := "rnbqkbnr/ppppppp1/8/7p/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2"
	if got := pos.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q (en-passant square omitted)", got, want)
	}
}

func TestZobristTableIsDeterministic(t *testing.T) {
	a := NewPosition()
	b := NewPosition()
	if a.Hash() != b.Hash() {
		t.Error("two freshly parsed starting positions must hash identically")
	}
}
