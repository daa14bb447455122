package board

import "fmt"

// CastlingRights is a 4-bit set of remaining castling privileges.
type CastlingRights uint8

const (
	WhiteKingSide  CastlingRights = 1 << iota // K
	WhiteQueenSide                            // Q
	BlackKingSide                             // k
	BlackQueenSide                            // q
	NoCastling     CastlingRights = 0
	AllCastling    CastlingRights = WhiteKingSide | WhiteQueenSide | BlackKingSide | BlackQueenSide
)

// whiteRightsMask / blackRightsMask isolate one side's two rights bits so
// that clearing side S's rights zeroes only S's bits — resolving the §9
// open question about the clearing-mask constants being consistent.
const whiteRightsMask = WhiteKingSide | WhiteQueenSide
const blackRightsMask = BlackKingSide | BlackQueenSide

func rightsMaskFor(c Color) CastlingRights {
	if c == White {
		return whiteRightsMask
	}
	return blackRightsMask
}

// String returns the FEN castling-rights string, letters ordered K, Q, k, q.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSide != 0 {
		s += "K"
	}
	if cr&WhiteQueenSide != 0 {
		s += "Q"
	}
	if cr&BlackKingSide != 0 {
		s += "k"
	}
	if cr&BlackQueenSide != 0 {
		s += "q"
	}
	return s
}

// CanCastle reports whether the given side retains the named castling right.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	var bit CastlingRights
	switch {
	case c == White && kingSide:
		bit = WhiteKingSide
	case c == White && !kingSide:
		bit = WhiteQueenSide
	case c == Black && kingSide:
		bit = BlackKingSide
	default:
		bit = BlackQueenSide
	}
	return cr&bit != 0
}

// irreversibleState bundles the four facts that make/unmake cannot recover
// from the board alone: captured piece type, en-passant file, castling
// rights, the 50-move clock, and the Zobrist key they all feed into.
type irreversibleState struct {
	capturedPieceType PieceType
	enPassantFile     int // 1-8 = file a-h, 0 = none
	castlingRights    CastlingRights
	halfMoveClock     int
	zobristKey        uint64
}

// PieceList is an ordered, compact array of the squares occupied by one of
// the twelve colored piece types, with a square→index reverse map
// supporting O(1) add/remove/move.
type PieceList struct {
	squares [16]Square
	index   [64]int8 // index[sq] valid only while sq is in this list
	count   int
}

func (pl *PieceList) add(sq Square) {
	pl.index[sq] = int8(pl.count)
	pl.squares[pl.count] = sq
	pl.count++
}

func (pl *PieceList) remove(sq Square) {
	idx := pl.index[sq]
	last := pl.count - 1
	lastSq := pl.squares[last]
	pl.squares[idx] = lastSq
	pl.index[lastSq] = idx
	pl.count--
}

func (pl *PieceList) move(from, to Square) {
	idx := pl.index[from]
	pl.squares[idx] = to
	pl.index[to] = idx
}

// Count returns the number of occupied squares in the list.
func (pl *PieceList) Count() int { return pl.count }

// Squares returns the occupied squares, in list order (not rank/file order).
func (pl *PieceList) Squares() []Square { return pl.squares[:pl.count] }

// Position is the authoritative runtime chess position: squares, bitboards,
// and piece lists kept in sync (invariants in §8), plus the irreversible
// state stack that make/unmake push and pop.
type Position struct {
	squares    [64]Piece
	kingSquare [2]Square

	pieceBB [12]Bitboard // indexed by Piece.ColoredIndex()
	colorBB [2]Bitboard
	allBB   Bitboard

	orthoSliderBB [2]Bitboard // rook+queen per side
	diagSliderBB  [2]Bitboard // bishop+queen per side

	pieceLists [12]PieceList

	sideToMove     Color
	plyCount       int
	fullMoveNumber int

	enPassantRank int // rank index (0-7) paired with state.enPassantFile; 0 if none

	repetitionHistory     []uint64 // Zobrist keys for every ply since the loaded start position
	repetitionWindowStart int      // index into repetitionHistory where the current irreversible-move window begins
	windowStartHistory    []int    // per-ply stack of repetitionWindowStart, for UnmakeMove
	state                 irreversibleState
	stateHistory          []irreversibleState

	startFEN    string
	moveHistory []Move

	checkCacheValid bool
	checkCacheValue bool
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: starting FEN must always parse: " + err.Error())
	}
	return pos
}

// Clone returns a deep copy of the position, suitable for handing to a
// search worker without aliasing the controller's copy.
func (p *Position) Clone() *Position {
	np := *p
	np.repetitionHistory = append([]uint64(nil), p.repetitionHistory...)
	np.windowStartHistory = append([]int(nil), p.windowStartHistory...)
	np.stateHistory = append([]irreversibleState(nil), p.stateHistory...)
	np.moveHistory = append([]Move(nil), p.moveHistory...)
	return &np
}

// SideToMove returns the color to move.
func (p *Position) SideToMove() Color { return p.sideToMove }

// PlyCount returns the total half-moves played since the loaded start position.
func (p *Position) PlyCount() int { return p.plyCount }

// FullMoveNumber returns the current FEN full-move counter.
func (p *Position) FullMoveNumber() int { return p.fullMoveNumber }

// Hash returns the current Zobrist key.
func (p *Position) Hash() uint64 { return p.state.zobristKey }

// HalfMoveClock returns the 50-move-rule counter.
func (p *Position) HalfMoveClock() int { return p.state.halfMoveClock }

// CastlingRights returns the current castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.state.castlingRights }

// EnPassant returns the current en-passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	if p.state.enPassantFile == 0 {
		return NoSquare
	}
	return NewSquare(p.state.enPassantFile-1, p.enPassantRank)
}

// KingSquare returns the square of the given color's king.
func (p *Position) KingSquare(c Color) Square { return p.kingSquare[c] }

// AllOccupied returns the bitboard of every occupied square.
func (p *Position) AllOccupied() Bitboard { return p.allBB }

// Occupied returns the occupancy bitboard for one color.
func (p *Position) Occupied(c Color) Bitboard { return p.colorBB[c] }

// PieceBB returns the bitboard for one PieceType/Color combination.
func (p *Position) PieceBB(pt PieceType, c Color) Bitboard {
	return p.pieceBB[NewPiece(pt, c).ColoredIndex()]
}

// OrthoSliders returns the rook+queen bitboard for one color.
func (p *Position) OrthoSliders(c Color) Bitboard { return p.orthoSliderBB[c] }

// DiagSliders returns the bishop+queen bitboard for one color.
func (p *Position) DiagSliders(c Color) Bitboard { return p.diagSliderBB[c] }

// PieceListOf returns the piece list for one PieceType/Color combination.
func (p *Position) PieceListOf(pt PieceType, c Color) *PieceList {
	return &p.pieceLists[NewPiece(pt, c).ColoredIndex()]
}

// PieceAt returns the piece occupying a square, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece { return p.squares[sq] }

// IsEmpty returns true if the square holds no piece.
func (p *Position) IsEmpty(sq Square) bool { return p.squares[sq] == NoPiece }

// MoveHistory returns the moves played since the loaded start position, in order.
func (p *Position) MoveHistory() []Move { return p.moveHistory }

// StartFEN returns the FEN the position was loaded from.
func (p *Position) StartFEN() string { return p.startFEN }

// IsRepetition reports whether the current Zobrist key has already occurred
// since the last irreversible move (pawn move or capture), i.e. whether the current position is a repeat within the window
// the halfmove clock tracks. repetitionHistory itself is never truncated by
// MakeMove/UnmakeMove so that unmaking restores it bit-for-bit; instead each
// irreversible move advances repetitionWindowStart, and the search only
// scans from there.
func (p *Position) IsRepetition() bool {
	n := len(p.repetitionHistory)
	if n == 0 {
		return false
	}
	key := p.repetitionHistory[n-1]
	start := p.repetitionWindowStart
	if start < 0 {
		start = 0
	}
	for i := start; i < n-1; i++ {
		if p.repetitionHistory[i] == key {
			return true
		}
	}
	return false
}

func (p *Position) clearSquare(sq Square) {
	piece := p.squares[sq]
	if piece == NoPiece {
		return
	}
	idx := piece.ColoredIndex()
	c := piece.Color()
	bb := SquareBB(sq)
	p.pieceBB[idx] &^= bb
	p.colorBB[c] &^= bb
	p.allBB &^= bb
	p.squares[sq] = NoPiece
	p.pieceLists[idx].remove(sq)
}

func (p *Position) placePiece(piece Piece, sq Square) {
	idx := piece.ColoredIndex()
	c := piece.Color()
	bb := SquareBB(sq)
	p.pieceBB[idx] |= bb
	p.colorBB[c] |= bb
	p.allBB |= bb
	p.squares[sq] = piece
	p.pieceLists[idx].add(sq)
	if piece.Type() == King {
		p.kingSquare[c] = sq
	}
}

// updateSliderUnion refreshes ortho/diag slider bitboards from the current
// piece bitboards (step 11 of make_move).
func (p *Position) updateSliderUnion() {
	for c := White; c <= Black; c++ {
		p.orthoSliderBB[c] = p.PieceBB(Rook, c) | p.PieceBB(Queen, c)
		p.diagSliderBB[c] = p.PieceBB(Bishop, c) | p.PieceBB(Queen, c)
	}
}

// computeHash recomputes the Zobrist key from scratch; used by FEN import
// and as a correctness oracle in tests (incremental update must match it).
func (p *Position) computeHash() uint64 {
	var h uint64
	for sq := A1; sq <= H8; sq++ {
		piece := p.squares[sq]
		if piece.Type() != NoPieceType {
			h ^= ZobristPiece(piece.Color(), piece.Type(), sq)
		}
	}
	if p.sideToMove == Black {
		h ^= ZobristSideToMove()
	}
	h ^= ZobristCastling(p.state.castlingRights)
	h ^= ZobristEnPassantFile(p.state.enPassantFile)
	return h
}

// String renders a board diagram plus FEN and Zobrist key, as used by the
// UCI "d" debug command.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece.Type() == NoPieceType {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.sideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.state.castlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant())
	s += fmt.Sprintf("Halfmove clock: %d\n", p.state.halfMoveClock)
	s += fmt.Sprintf("Fullmove number: %d\n", p.fullMoveNumber)
	s += fmt.Sprintf("Zobrist: %016x\n", p.state.zobristKey)
	s += fmt.Sprintf("FEN: %s\n", p.FEN())
	return s
}
