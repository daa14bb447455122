package engine

import (
	"sync/atomic"
	"time"

	"github.com/Water-Engine/cactus/internal/board"
)

// Search constants.
const (
	Infinity  = 1 << 20
	MateScore = 100000
	MaxPly    = 256
	maxExtensionsPerPath = 16
)

// PVTable stores the principal variation discovered at each ply.
type PVTable struct {
	length [MaxPly]int
	moves  [MaxPly][MaxPly]board.Move
}

// Searcher drives iterative-deepening alpha-beta search over a single
// position, single-threaded, with cooperative cancellation.
type Searcher struct {
	pos     *board.Position
	tt      *TranspositionTable
	orderer *MoveOrderer

	nodes    uint64
	stopFlag atomic.Bool
	deadline time.Time

	pv         PVTable
	extensions [MaxPly]int

	bestMove board.Move
	bestEval int
}

// NewSearcher creates a new searcher sharing the given transposition table.
func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// Stop signals the search to stop at its next cancellation check (end_search).
func (s *Searcher) Stop() {
	s.stopFlag.Store(true)
}

// Clear resets the transposition table, killers, and history for a new
// game, matching the ucinewgame UCI command.
func (s *Searcher) Clear() {
	s.tt.Clear()
	s.orderer = NewMoveOrderer()
	s.bestMove = board.NoMove
	s.bestEval = 0
}

// Nodes returns the number of nodes searched in the most recent call.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// BestMove returns the most recently completed (or promoted partial) best move.
func (s *Searcher) BestMove() board.Move {
	return s.bestMove
}

// BestEval returns the score associated with BestMove.
func (s *Searcher) BestEval() int {
	return s.bestEval
}

// GetPV returns the principal variation from the last completed iteration.
func (s *Searcher) GetPV() []board.Move {
	pv := make([]board.Move, s.pv.length[0])
	copy(pv, s.pv.moves[0][:s.pv.length[0]])
	return pv
}

// StartSearch launches iterative deepening from position up to maxDepth
// (capped at MaxPly), stopping when deadline passes or Stop is called. It
// blocks until the search concludes; callers that want a background search
// should invoke it from their own goroutine and call Stop from the outside.
// onIteration, if non-nil, is invoked after every completed depth with the
// current best move/eval/nodes, mirroring a UCI `info` line.
func (s *Searcher) StartSearch(pos *board.Position, maxDepth int, deadline time.Time, onIteration func(depth, eval int, pv []board.Move, nodes uint64)) {
	s.pos = pos
	s.deadline = deadline
	s.stopFlag.Store(false)
	s.nodes = 0
	s.orderer.Clear()
	s.bestMove = board.NoMove
	s.bestEval = 0

	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}

	for depth := 1; depth <= maxDepth; depth++ {
		eval, move, completed := s.searchRoot(depth)
		if !completed {
			break
		}
		s.bestEval = eval
		s.bestMove = move
		if onIteration != nil {
			onIteration(depth, eval, s.GetPV(), s.nodes)
		}
		if s.cancelled() {
			break
		}
	}
}

// EndSearch signals cancellation; BestMove/BestEval retain the last
// fully-searched result, or the best partial result from the in-flight
// iteration if at least one root move finished there.
func (s *Searcher) EndSearch() {
	s.Stop()
}

func (s *Searcher) cancelled() bool {
	if s.stopFlag.Load() {
		return true
	}
	return !s.deadline.IsZero() && time.Now().After(s.deadline)
}

// searchRoot runs one iterative-deepening depth over the root move list,
// returning whether its result is usable: true when at least one root move
// was fully evaluated before cancellation (or when there are no legal moves).
func (s *Searcher) searchRoot(depth int) (eval int, best board.Move, completed bool) {
	alpha, beta := -Infinity, Infinity

	var ttMove board.Move
	if entry, found := s.tt.Probe(s.pos.Hash()); found {
		ttMove = entry.BestMove
	}

	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		return 0, board.NoMove, true
	}

	scores := s.orderer.ScoreMoves(s.pos, moves, 0, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	anyCompleted := false

	for i := 0; i < moves.Len(); i++ {
		if s.cancelled() {
			return bestScore, bestMove, anyCompleted
		}

		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.pos.MakeMove(move)
		score := -s.negamax(depth-1, 1, -beta, -alpha, move, move.IsCapture(s.pos))
		s.pos.UnmakeMove(move)

		if s.cancelled() {
			return bestScore, bestMove, anyCompleted
		}
		anyCompleted = true

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				s.recordPV(0, move)
			}
		}
	}

	s.tt.Store(s.pos.Hash(), depth, AdjustScoreToTT(bestScore, 0), TTExact, bestMove)
	return bestScore, bestMove, anyCompleted
}

func (s *Searcher) recordPV(ply int, move board.Move) {
	s.pv.moves[ply][ply] = move
	for j := ply + 1; j < s.pv.length[ply+1]; j++ {
		s.pv.moves[ply][j] = s.pv.moves[ply+1][j]
	}
	s.pv.length[ply] = s.pv.length[ply+1]
}

// negamax implements alpha-beta search with the extensions, reductions, and
// transposition-table interaction described for the search routine.
func (s *Searcher) negamax(depth, ply int, alpha, beta int, prevMove board.Move, prevWasCapture bool) int {
	if s.nodes&2047 == 0 && s.cancelled() {
		return 0
	}
	s.nodes++
	s.pv.length[ply] = ply

	if ply > 0 {
		if s.pos.HalfMoveClock() >= 100 || s.pos.IsRepetition() {
			return 0
		}
	}

	// Mate-distance pruning.
	if matedAlpha := -MateScore + ply; alpha < matedAlpha {
		alpha = matedAlpha
	}
	if mateBeta := MateScore - ply; beta > mateBeta {
		beta = mateBeta
	}
	if alpha >= beta {
		return alpha
	}

	var ttMove board.Move
	if entry, found := s.tt.Probe(s.pos.Hash()); found {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := AdjustScoreFromTT(int(entry.Score), ply)
			switch entry.Flag {
			case TTExact:
				return score
			case TTUpperBound:
				if score <= alpha {
					return score
				}
			case TTLowerBound:
				if score >= beta {
					return score
				}
			}
		}
	}

	if depth <= 0 {
		return s.quiescence(ply, alpha, beta)
	}

	inCheck := s.pos.InCheck()
	moves := s.pos.GenerateLegalMoves()
	if moves.Len() == 0 {
		if inCheck {
			return -(MateScore - ply)
		}
		return 0
	}

	scores := s.orderer.ScoreMoves(s.pos, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NoMove
	flag := TTUpperBound

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)
		isCapture := move.IsCapture(s.pos)

		extension := 0
		if s.extensions[ply] < maxExtensionsPerPath {
			if givesCheck(s.pos, move) || isPrePromotionPush(s.pos, move) {
				extension = 1
			}
		}
		s.extensions[ply+1] = s.extensions[ply] + extension

		s.pos.MakeMove(move)

		var score int
		childDepth := depth - 1 + extension
		if i >= 2 && depth >= 3 && extension == 0 && !isCapture && !inCheck {
			reduced := -s.negamax(childDepth-2, ply+1, -alpha-1, -alpha, move, isCapture)
			if reduced > alpha {
				score = -s.negamax(childDepth, ply+1, -beta, -alpha, move, isCapture)
			} else {
				score = reduced
			}
		} else {
			score = -s.negamax(childDepth, ply+1, -beta, -alpha, move, isCapture)
		}

		s.pos.UnmakeMove(move)

		if s.cancelled() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
			flag = TTExact
			s.recordPV(ply, move)
		}

		if score >= beta {
			s.tt.Store(s.pos.Hash(), depth, AdjustScoreToTT(score, ply), TTLowerBound, move)
			if !isCapture {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(s.pos.SideToMove(), move, depth)
			}
			return beta
		}
	}

	s.tt.Store(s.pos.Hash(), depth, AdjustScoreToTT(bestScore, ply), flag, bestMove)
	return bestScore
}

// quiescence stabilizes tactical sequences at the search horizon.
func (s *Searcher) quiescence(ply int, alpha, beta int) int {
	if s.nodes&2047 == 0 && s.cancelled() {
		return 0
	}
	s.nodes++

	standPat := Evaluate(s.pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}
	if ply >= MaxPly {
		return alpha
	}

	moves := s.pos.GenerateCaptures()
	scores := s.orderer.ScoreMoves(s.pos, moves, ply, board.NoMove)

	for i := 0; i < moves.Len(); i++ {
		PickMove(moves, scores, i)
		move := moves.Get(i)

		s.pos.MakeMove(move)
		score := -s.quiescence(ply+1, -beta, -alpha)
		s.pos.UnmakeMove(move)

		if s.cancelled() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}

// givesCheck reports whether making move leaves the opponent's king attacked.
func givesCheck(pos *board.Position, move board.Move) bool {
	pos.MakeMove(move)
	check := pos.InCheck()
	pos.UnmakeMove(move)
	return check
}

// isPrePromotionPush reports a pawn push to the rank just before promotion.
func isPrePromotionPush(pos *board.Position, move board.Move) bool {
	moved := pos.PieceAt(move.From())
	if moved.Type() != board.Pawn {
		return false
	}
	destRank := move.To().Rank()
	if moved.Color() == board.White {
		return destRank == 6
	}
	return destRank == 1
}
