package board

import "testing"

func TestCheckmate(t *testing.T) {
	// White: Ka1, Ra8. Black: Kh8 boxed in by its own pawns on g7, h7.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("error parsing FEN: %v", err)
	}

	if !pos.InCheck() {
		t.Fatal("expected black king to be in check")
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate but got false")
	}
	if moves := pos.GenerateLegalMoves(); moves.Len() != 0 {
		t.Errorf("expected no legal moves, got %d", moves.Len())
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can capture the checking rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("error parsing FEN: %v", err)
	}

	if pos.IsCheckmate() {
		t.Error("expected not checkmate but got true")
	}

	moves := pos.GenerateLegalMoves()
	found := false
	for i := 0; i < moves.Len(); i++ {
		if m := moves.Get(i); m.From() == H8 && m.To() == G8 {
			found = true
		}
	}
	if !found {
		t.Error("expected Kxg8 among legal moves")
	}
}

func TestStalemate(t *testing.T) {
	// Classic stalemate: black king boxed in on a8, not in check, no moves.
	pos, err := ParseFEN("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatalf("error parsing FEN: %v", err)
	}

	if pos.InCheck() {
		t.Fatal("expected black king not in check")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate but got false")
	}
	if !pos.IsDraw() {
		t.Error("expected stalemate position to be a draw")
	}
}
