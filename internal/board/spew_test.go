package board

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestPieceListsMatchBitboards cross-checks the piece lists against the
// piece bitboards after a short sequence of moves; on mismatch it dumps
// the whole position for debugging rather than a bare diff.
func TestPieceListsMatchBitboards(t *testing.T) {
	pos := NewPosition()
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len() && i < 10; i++ {
		m := moves.Get(i)
		pos.MakeMove(m)

		for pt := Pawn; pt <= King; pt++ {
			for c := White; c <= Black; c++ {
				bb := pos.PieceBB(pt, c)
				list := pos.PieceListOf(pt, c)
				if bb.PopCount() != list.Count() {
					t.Fatalf("after %v: piece bitboard/list count mismatch for %v %v\n%s",
						m, c, pt, spew.Sdump(pos))
				}
				for _, sq := range list.Squares() {
					if !bb.IsSet(sq) {
						t.Fatalf("after %v: piece list has %v on %v not present in bitboard\n%s",
							m, c, sq, spew.Sdump(pos))
					}
				}
			}
		}

		pos.UnmakeMove(m)
	}
}
