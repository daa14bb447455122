package engine

import (
	"golang.org/x/exp/slices"

	"github.com/Water-Engine/cactus/internal/board"
)

// Move ordering priorities, matched to the exact point values of the
// engine's move-ordering formula.
const (
	hashMoveScore        = 100000000
	captureBaseGood      = 8000000
	captureBaseBad       = 2000000
	queenPromotionScore  = 6000000
	killerBias           = 4000000
	pawnAttackedPenalty  = 50
	pieceAttackedPenalty = 25
)

// MoveOrderer tracks the per-search killer slots and the color/from/to
// history table used to rank quiet moves.
type MoveOrderer struct {
	killers [MaxPly][2]board.Move
	history [2][64][64]int
}

// NewMoveOrderer creates a new move orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{}
}

// Clear resets killers and ages the history table for a new search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = board.NoMove
		mo.killers[i][1] = board.NoMove
	}
	for c := range mo.history {
		for f := range mo.history[c] {
			for t := range mo.history[c][f] {
				mo.history[c][f][t] /= 2
			}
		}
	}
}

// ScoreMoves assigns an ordering score to every move in the list.
func (mo *MoveOrderer) ScoreMoves(pos *board.Position, moves *board.MoveList, ply int, ttMove board.Move) []int {
	scores := make([]int, moves.Len())
	pawnAttacks := pos.OpponentPawnAttackMap()
	pieceAttacks := pos.OpponentAttackMap()

	for i := 0; i < moves.Len(); i++ {
		scores[i] = mo.scoreMove(pos, moves.Get(i), ply, ttMove, pawnAttacks, pieceAttacks)
	}
	return scores
}

func (mo *MoveOrderer) scoreMove(pos *board.Position, m board.Move, ply int, ttMove board.Move, pawnAttacks, pieceAttacks board.Bitboard) int {
	if m == ttMove {
		return hashMoveScore
	}

	from, to := m.From(), m.To()

	if m.IsCapture(pos) {
		attacker := pos.PieceAt(from).Type()
		var victim board.PieceType
		if m.IsEnPassant() {
			victim = board.Pawn
		} else {
			victim = pos.PieceAt(to).Type()
		}

		vc, va := pieceValues[victim], pieceValues[attacker]
		base := captureBaseBad
		if !pawnAttacks.IsSet(to) && !pieceAttacks.IsSet(to) || vc >= va {
			base = captureBaseGood
		}
		return base + vc - va
	}

	if m.IsPromotion() && m.Promotion() == board.Queen {
		return queenPromotionScore
	}

	score := 0
	if m == mo.killers[ply][0] || m == mo.killers[ply][1] {
		score += killerBias
	}

	movedType := pos.PieceAt(from).Type()
	score += pieceSquareDelta(movedType, from, to, pos.SideToMove())
	score += mo.history[pos.SideToMove()][from][to]

	if pawnAttacks.IsSet(to) {
		score -= pawnAttackedPenalty
	} else if pieceAttacks.IsSet(to) {
		score -= pieceAttackedPenalty
	}
	return score
}

// pieceSquareDelta is the change in a piece's own piece-square value when it
// moves from from to to, used to nudge quiet-move ordering toward squares
// the evaluator already favors.
func pieceSquareDelta(pt board.PieceType, from, to board.Square, c board.Color) int {
	fromSq, toSq := pstSquare(from, c), pstSquare(to, c)
	if pt == board.Pawn {
		return pawnPST[toSq] - pawnPST[fromSq]
	}
	if pt == board.King {
		return kingMidgamePST[toSq] - kingMidgamePST[fromSq]
	}
	table := psts[pt]
	return table[toSq] - table[fromSq]
}

type scoredMove struct {
	move  board.Move
	score int
}

// SortMoves reorders moves (and the parallel scores slice) descending by
// score.
func SortMoves(moves *board.MoveList, scores []int) {
	order := make([]scoredMove, moves.Len())
	for i := range order {
		order[i] = scoredMove{move: moves.Get(i), score: scores[i]}
	}
	slices.SortFunc(order, func(a, b scoredMove) int { return b.score - a.score })

	moves.Clear()
	for i, o := range order {
		moves.Add(o.move)
		scores[i] = o.score
	}
}

// PickMove selects the best remaining move (by score) and moves it to
// position index, enabling lazy incremental sorting.
func PickMove(moves *board.MoveList, scores []int, index int) {
	best := index
	for j := index + 1; j < moves.Len(); j++ {
		if scores[j] > scores[best] {
			best = j
		}
	}
	if best != index {
		moves.Swap(index, best)
		scores[index], scores[best] = scores[best], scores[index]
	}
}

// UpdateKillers records a quiet move that caused a beta cutoff at ply.
func (mo *MoveOrderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly {
		return
	}
	if mo.killers[ply][0] == m {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	mo.killers[ply][0] = m
}

// UpdateHistory adds depth-squared to the history score for a quiet move
// that caused a beta cutoff.
func (mo *MoveOrderer) UpdateHistory(c board.Color, m board.Move, depth int) {
	from, to := m.From(), m.To()
	mo.history[c][from][to] += depth * depth
	if mo.history[c][from][to] > 1<<20 {
		for f := range mo.history[c] {
			for t := range mo.history[c][f] {
				mo.history[c][f][t] /= 2
			}
		}
	}
}
