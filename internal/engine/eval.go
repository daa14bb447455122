// Package engine implements the chess AI search engine.
package engine

import (
	"github.com/Water-Engine/cactus/internal/board"
)

// Material values.
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 320
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

var pieceValues = [7]int{
	board.Pawn:   PawnValue,
	board.Knight: KnightValue,
	board.Bishop: BishopValue,
	board.Rook:   RookValue,
	board.Queen:  QueenValue,
	board.King:   KingValue,
}

// Phase weights used to derive endgame_t from the enemy's remaining material.
const (
	queenPhaseWeight  = 45
	rookPhaseWeight   = 20
	bishopPhaseWeight = 10
	knightPhaseWeight = 10
)

var openingPhaseWeightSum = queenPhaseWeight + 2*rookPhaseWeight + 2*bishopPhaseWeight + 2*knightPhaseWeight

// ISOLATED_PAWN_PENALTY_BY_COUNT penalizes having 0..8 isolated pawns.
var isolatedPawnPenaltyByCount = [9]int{0, -10, -25, -50, -75, -75, -75, -75, -75}

// passedPawnBonusByRank is indexed by the pawn's distance from the
// promotion rank: 1 = one step from promoting; index 0 is never reached.
var passedPawnBonusByRank = [7]int{0, 120, 80, 50, 30, 15, 15}

const (
	kingShieldMissingPenalty = -18
	kingUncastledPenalty     = -40
	kingOpenFilePenalty      = -25
	kingSemiOpenFilePenalty  = -12
	mopUpMaterialThreshold   = PawnValue * 2
)

// Pawn PST, laid out as seen from White with a8 first; White's squares are
// mirrored via Square.Mirror to index it, Black's index it directly.
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var pawnEndgamePST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	20, 20, 20, 20, 20, 20, 20, 20,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}

// psts holds the flat (non-phase-blended) tables, indexed directly by
// board.PieceType (index 0 and King are unused; pawn and king are
// phase-blended separately in pieceSquareScore).
var psts = [7][64]int{
	board.Pawn:   pawnPST,
	board.Knight: knightPST,
	board.Bishop: bishopPST,
	board.Rook:   rookPST,
	board.Queen:  queenPST,
}

func pstSquare(sq board.Square, c board.Color) board.Square {
	if c == board.White {
		return sq.Mirror()
	}
	return sq
}

// materialInfo mirrors one side's material census, used both for scoring
// and to derive the opponent's endgame_t phase weight.
type materialInfo struct {
	materialScore int
	numPawns      int
	numKnights    int
	numBishops    int
	numRooks      int
	numQueens     int
	endgameT      float64
}

func computeMaterialInfo(pos *board.Position, c board.Color) materialInfo {
	numPawns := pos.PieceBB(board.Pawn, c).PopCount()
	numKnights := pos.PieceBB(board.Knight, c).PopCount()
	numBishops := pos.PieceBB(board.Bishop, c).PopCount()
	numRooks := pos.PieceBB(board.Rook, c).PopCount()
	numQueens := pos.PieceBB(board.Queen, c).PopCount()

	material := numPawns*PawnValue + numKnights*KnightValue + numBishops*BishopValue +
		numRooks*RookValue + numQueens*QueenValue

	weightSum := numQueens*queenPhaseWeight + numRooks*rookPhaseWeight +
		numBishops*bishopPhaseWeight + numKnights*knightPhaseWeight
	endgameT := 1.0 - minFloat(1.0, float64(weightSum)/float64(openingPhaseWeightSum))

	return materialInfo{
		materialScore: material,
		numPawns:      numPawns,
		numKnights:    numKnights,
		numBishops:    numBishops,
		numRooks:      numRooks,
		numQueens:     numQueens,
		endgameT:      endgameT,
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Evaluate returns a centipawn score from the perspective of the side to move.
func Evaluate(pos *board.Position) int {
	whiteMaterial := computeMaterialInfo(pos, board.White)
	blackMaterial := computeMaterialInfo(pos, board.Black)

	// Each side's endgame_t is derived from the OPPONENT's remaining material.
	whiteEndgameT := blackMaterial.endgameT
	blackEndgameT := whiteMaterial.endgameT

	whiteSum := whiteMaterial.materialScore +
		pieceSquareScore(pos, board.White, whiteEndgameT) +
		pawnStructureScore(pos, board.White) +
		kingPawnShieldScore(pos, board.White, blackMaterial, whiteEndgameT) +
		mopUpScore(pos, board.White, whiteMaterial, blackMaterial)

	blackSum := blackMaterial.materialScore +
		pieceSquareScore(pos, board.Black, blackEndgameT) +
		pawnStructureScore(pos, board.Black) +
		kingPawnShieldScore(pos, board.Black, whiteMaterial, blackEndgameT) +
		mopUpScore(pos, board.Black, blackMaterial, whiteMaterial)

	score := whiteSum - blackSum
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}

// pieceSquareScore sums the piece-square contribution for one side, blending
// the pawn and king tables between opening and endgame by endgameT.
func pieceSquareScore(pos *board.Position, c board.Color, endgameT float64) int {
	score := 0

	for pt := board.Knight; pt <= board.Queen; pt++ {
		table := psts[pt]
		for _, sq := range pos.PieceListOf(pt, c).Squares() {
			score += table[pstSquare(sq, c)]
		}
	}

	for _, sq := range pos.PieceListOf(board.Pawn, c).Squares() {
		psq := pstSquare(sq, c)
		early := float64(pawnPST[psq]) * (1 - endgameT)
		late := float64(pawnEndgamePST[psq]) * endgameT
		score += int(early + late)
	}

	ksq := pstSquare(pos.KingSquare(c), c)
	kingEarly := float64(kingMidgamePST[ksq]) * (1 - endgameT)
	kingLate := float64(kingEndgamePST[ksq]) * endgameT
	score += int(kingEarly + kingLate)

	return score
}

// pawnStructureScore applies passed-pawn bonuses and the isolated-pawn
// penalty table over one side's pawns.
func pawnStructureScore(pos *board.Position, c board.Color) int {
	us := pos.PieceBB(board.Pawn, c)
	them := pos.PieceBB(board.Pawn, c.Other())
	score := 0
	isolatedCount := 0

	for _, sq := range pos.PieceListOf(board.Pawn, c).Squares() {
		file := sq.File()

		var neighborFiles board.Bitboard
		if file > 0 {
			neighborFiles |= board.FileMask[file-1]
		}
		if file < 7 {
			neighborFiles |= board.FileMask[file+1]
		}
		if us&neighborFiles == 0 {
			isolatedCount++
		}

		if isPassedPawn(sq, c, them) {
			rank := sq.Rank()
			distanceFromPromotion := 7 - rank
			if c == board.Black {
				distanceFromPromotion = rank
			}
			if distanceFromPromotion >= 0 && distanceFromPromotion < len(passedPawnBonusByRank) {
				score += passedPawnBonusByRank[distanceFromPromotion]
			}
		}
	}

	if isolatedCount < len(isolatedPawnPenaltyByCount) {
		score += isolatedPawnPenaltyByCount[isolatedCount]
	} else {
		score += isolatedPawnPenaltyByCount[len(isolatedPawnPenaltyByCount)-1]
	}

	return score
}

// isPassedPawn reports whether no enemy pawn occupies the same or an
// adjacent file ahead of sq (in c's direction of travel).
func isPassedPawn(sq board.Square, c board.Color, enemyPawns board.Bitboard) bool {
	file := sq.File()
	rank := sq.Rank()

	files := board.FileMask[file]
	if file > 0 {
		files |= board.FileMask[file - 1]
	}
	if file < 7 {
		files |= board.FileMask[file + 1]
	}

	var ahead board.Bitboard
	if c == board.White {
		for r := rank + 1; r <= 7; r++ {
			ahead |= board.RankMask[r]
		}
	} else {
		for r := rank - 1; r >= 0; r-- {
			ahead |= board.RankMask[r]
		}
	}

	return enemyPawns&files&ahead == 0
}

// kingPawnShieldScore implements the flank/center shield logic, scaled by
// (1 - endgameT) and halved once the enemy queen is off the board.
func kingPawnShieldScore(pos *board.Position, c board.Color, enemyMaterial materialInfo, endgameT float64) int {
	ksq := pos.KingSquare(c)
	file := ksq.File()

	var score int
	const fileC, fileF = 2, 5

	if file <= fileC || file >= fileF {
		missing := countMissingShieldPawns(pos, c, ksq)
		score += kingShieldMissingPenalty * missing * missing

		for _, adjFile := range shieldAdjacentFiles(file) {
			fileMask := board.FileMask[adjFile]
			ownPawns := pos.PieceBB(board.Pawn, c) & fileMask
			enemyPawns := pos.PieceBB(board.Pawn, c.Other()) & fileMask
			switch {
			case ownPawns == 0 && enemyPawns == 0:
				if enemyMaterial.numRooks+enemyMaterial.numQueens >= 2 {
					score += kingOpenFilePenalty
				}
			case ownPawns == 0:
				if enemyMaterial.numRooks+enemyMaterial.numQueens >= 2 {
					score += kingSemiOpenFilePenalty
				}
			}
		}
	} else if enemyMaterial.numKnights+enemyMaterial.numBishops+enemyMaterial.numRooks+enemyMaterial.numQueens >= 2 {
		score += kingUncastledPenalty
	}

	scaled := float64(score) * (1 - endgameT)
	if enemyMaterial.numQueens == 0 {
		scaled /= 2
	}
	return int(scaled)
}

func shieldAdjacentFiles(kingFile int) []int {
	files := []int{kingFile}
	if kingFile > 0 {
		files = append(files, kingFile-1)
	}
	if kingFile < 7 {
		files = append(files, kingFile+1)
	}
	return files
}

func countMissingShieldPawns(pos *board.Position, c board.Color, ksq board.Square) int {
	shieldRank := ksq.Rank() + 1
	if c == board.Black {
		shieldRank = ksq.Rank() - 1
	}
	if shieldRank < 0 || shieldRank > 7 {
		return 3
	}

	missing := 0
	for _, f := range shieldAdjacentFiles(ksq.File()) {
		sq := board.NewSquare(f, shieldRank)
		if pos.PieceAt(sq) != board.NewPiece(board.Pawn, c) {
			missing++
		}
	}
	return missing
}

// mopUpScore rewards herding the enemy king to the edge once the position is
// a won endgame: ahead by 2+ pawns with the opponent already in the endgame.
func mopUpScore(pos *board.Position, c board.Color, mine, enemy materialInfo) int {
	if mine.materialScore < enemy.materialScore+mopUpMaterialThreshold || enemy.endgameT <= 0 {
		return 0
	}

	friendlyKing := pos.KingSquare(c)
	enemyKing := pos.KingSquare(c.Other())

	score := (14 - board.KingDistance(friendlyKing, enemyKing)) * 4
	score += board.CenterManhattanDistance(enemyKing) * 6

	return int(float64(score) * enemy.endgameT)
}

// EvaluateMaterial returns just the material balance, used by quick
// evaluation paths that do not need the full term set.
func EvaluateMaterial(pos *board.Position) int {
	score := 0
	for pt := board.Pawn; pt <= board.Queen; pt++ {
		score += pos.PieceBB(pt, board.White).PopCount() * pieceValues[pt]
		score -= pos.PieceBB(pt, board.Black).PopCount() * pieceValues[pt]
	}
	if pos.SideToMove() == board.Black {
		return -score
	}
	return score
}
