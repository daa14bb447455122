package board

import "fmt"

// Perft counts the leaf nodes of the legal move tree to the given depth,
// the standard cross-check for move generator correctness.
func Perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GenerateLegalMoves()
	if depth == 1 {
		return int64(moves.Len())
	}

	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		nodes += Perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}

// PerftDivide runs Perft one ply at a time under each root move, returning
// the per-move leaf counts in move-list order. Used by the UCI "perft divide"
// debug command to localize a move-generator discrepancy to a single root move.
func PerftDivide(p *Position, depth int) []PerftDivideEntry {
	moves := p.GenerateLegalMoves()
	entries := make([]PerftDivideEntry, 0, moves.Len())
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		p.MakeMove(m)
		var nodes int64
		if depth > 1 {
			nodes = Perft(p, depth-1)
		} else {
			nodes = 1
		}
		p.UnmakeMove(m)
		entries = append(entries, PerftDivideEntry{Move: m, Nodes: nodes})
	}
	return entries
}

// PerftDivideEntry is one root move's leaf count from PerftDivide.
type PerftDivideEntry struct {
	Move  Move
	Nodes int64
}

// String renders a PerftDivideEntry the way the "perft divide" command prints it.
func (e PerftDivideEntry) String() string {
	return fmt.Sprintf("%s: %d", e.Move, e.Nodes)
}
