package board

import "fmt"

// Move packs a chess move into 16 bits:
//
//	bits 0-5:   origin square (0-63)
//	bits 6-11:  destination square (0-63)
//	bits 12-15: flag (see the Flag* constants)
//
// The all-zero word (origin a1, destination a1, FlagQuiet) is the sentinel
// null move: a1-a1 is never a legal move, so it is safe to reuse as NoMove.
type Move uint16

// Move flags, packed into bits 12-15.
const (
	FlagQuiet          uint16 = 0
	FlagEnPassant      uint16 = 1
	FlagCastle         uint16 = 2
	FlagDoublePawnPush uint16 = 3
	FlagPromoteQueen   uint16 = 4
	FlagPromoteKnight  uint16 = 5
	FlagPromoteRook    uint16 = 6
	FlagPromoteBishop  uint16 = 7
)

// NoMove is the null-move sentinel.
const NoMove Move = 0

func newMove(from, to Square, flag uint16) Move {
	return Move(from) | Move(to)<<6 | Move(flag)<<12
}

// NewMove creates a quiet (or non-special-cased capture) move.
func NewMove(from, to Square) Move {
	return newMove(from, to, FlagQuiet)
}

// NewDoublePawnPush creates a two-square pawn push, recording the file for
// en-passant purposes.
func NewDoublePawnPush(from, to Square) Move {
	return newMove(from, to, FlagDoublePawnPush)
}

// NewEnPassant creates an en-passant capture move.
func NewEnPassant(from, to Square) Move {
	return newMove(from, to, FlagEnPassant)
}

// NewCastle creates a castling move (encoded as the king's own travel).
func NewCastle(from, to Square) Move {
	return newMove(from, to, FlagCastle)
}

// promotionFlag maps a promotion PieceType to its move flag.
func promotionFlag(promo PieceType) uint16 {
	switch promo {
	case Knight:
		return FlagPromoteKnight
	case Rook:
		return FlagPromoteRook
	case Bishop:
		return FlagPromoteBishop
	default:
		return FlagPromoteQueen
	}
}

// NewPromotion creates a promotion move for the given promotion piece type.
func NewPromotion(from, to Square, promo PieceType) Move {
	return newMove(from, to, promotionFlag(promo))
}

// From returns the origin square: bits 0-5.
func (m Move) From() Square {
	return Square(m & 0x003F)
}

// To returns the destination square: bits 6-11.
//
// Resolves the ambiguity in §9: the correct extraction shifts by 6 bits,
// i.e. (value & 0x0FC0) >> 6, required for UCI round-tripping.
func (m Move) To() Square {
	return Square((m & 0x0FC0) >> 6)
}

// Flag returns the move's flag (bits 12-15).
func (m Move) Flag() uint16 {
	return uint16(m>>12) & 0xF
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() >= FlagPromoteQueen
}

// IsDoublePawnPush returns true if this is a two-square pawn push.
func (m Move) IsDoublePawnPush() bool {
	return m.Flag() == FlagDoublePawnPush
}

// IsCastle returns true if this is a castling move.
func (m Move) IsCastle() bool {
	return m.Flag() == FlagCastle
}

// IsEnPassant returns true if this is an en-passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// Promotion returns the promotion piece type; only valid when IsPromotion().
func (m Move) Promotion() PieceType {
	switch m.Flag() {
	case FlagPromoteKnight:
		return Knight
	case FlagPromoteRook:
		return Rook
	case FlagPromoteBishop:
		return Bishop
	default:
		return Queen
	}
}

// IsCapture returns true if this move captures a piece, given the position
// it is about to be played from.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	return pos.squares[m.To()] != NoPiece
}

// IsQuiet returns true if this move is neither a capture nor a promotion.
func (m Move) IsQuiet(pos *Position) bool {
	return !m.IsCapture(pos) && !m.IsPromotion()
}

// String returns the UCI encoding of the move (e.g. "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		promoChars := map[PieceType]byte{Knight: 'n', Bishop: 'b', Rook: 'r', Queen: 'q'}
		s += string(promoChars[m.Promotion()])
	}
	return s
}

// ParseMove parses a UCI move string against the given position, inferring
// FlagCastle / FlagEnPassant / FlagDoublePawnPush from context, and
// returns its fully-flagged Move. The null move is rejected on the wire
// per §6.
func ParseMove(s string, pos *Position) (Move, error) {
	if len(s) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %q", s)
	}
	if s == "0000" {
		return NoMove, fmt.Errorf("null move not allowed on the wire")
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}

	if len(s) == 5 {
		var promo PieceType
		switch s[4] {
		case 'n':
			promo = Knight
		case 'b':
			promo = Bishop
		case 'r':
			promo = Rook
		case 'q':
			promo = Queen
		default:
			return NoMove, fmt.Errorf("invalid promotion piece: %c", s[4])
		}
		return NewPromotion(from, to, promo), nil
	}

	piece := pos.squares[from]
	if piece == NoPiece {
		return NoMove, fmt.Errorf("no piece at %s", from)
	}
	pt := piece.Type()

	if pt == King && abs(int(to)-int(from)) == 2 {
		return NewCastle(from, to), nil
	}
	if pt == Pawn && to == pos.EnPassant() {
		return NewEnPassant(from, to), nil
	}
	if pt == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		return NewDoublePawnPush(from, to), nil
	}
	return NewMove(from, to), nil
}

// maxMoves bounds MoveList storage. The data model's testable ceiling is
// 218 legal moves; this buffer carries headroom for pseudo-legal
// generation before the legality filter runs.
const maxMoves = 256

// MoveList is a fixed-size list of moves, avoiding per-position allocation.
type MoveList struct {
	moves [maxMoves]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear empties the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice sharing the list's backing array.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}

// Swap exchanges the moves at indices i and j, used by move-ordering sorts.
func (ml *MoveList) Swap(i, j int) {
	ml.moves[i], ml.moves[j] = ml.moves[j], ml.moves[i]
}
