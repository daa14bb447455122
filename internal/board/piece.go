// Package board implements chess board representation using bitboards,
// piece lists, and incremental Zobrist hashing.
package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType is the type of a chess piece: the low 3 bits of a Piece.
type PieceType uint8

const (
	NoPieceType PieceType = 0
	Pawn        PieceType = 1
	Knight      PieceType = 2
	Bishop      PieceType = 3
	Rook        PieceType = 4
	Queen       PieceType = 5
	King        PieceType = 6
)

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the FEN character for the piece type (lowercase), ' ' for none.
func (pt PieceType) Char() byte {
	chars := [7]byte{' ', 'p', 'n', 'b', 'r', 'q', 'k'}
	if pt > King {
		return ' '
	}
	return chars[pt]
}

// PieceValue is the material value of each piece type in centipawns,
// indexed by PieceType (index 0, NoPieceType, is unused).
var PieceValue = [7]int{0, 100, 300, 320, 500, 900, 0}

// colorBit is bit 3 of a Piece: 0 = White, set = Black.
const colorBit Piece = 8

// Piece is a 4-bit value: the low 3 bits are the PieceType, bit 3 is the
// color (0 = White, 8 = Black). The zero value is Empty (no piece).
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = Piece(Pawn)
	WhiteKnight Piece = Piece(Knight)
	WhiteBishop Piece = Piece(Bishop)
	WhiteRook   Piece = Piece(Rook)
	WhiteQueen  Piece = Piece(Queen)
	WhiteKing   Piece = Piece(King)
	BlackPawn   Piece = Piece(Pawn) | colorBit
	BlackKnight Piece = Piece(Knight) | colorBit
	BlackBishop Piece = Piece(Bishop) | colorBit
	BlackRook   Piece = Piece(Rook) | colorBit
	BlackQueen  Piece = Piece(Queen) | colorBit
	BlackKing   Piece = Piece(King) | colorBit
)

// NewPiece creates a Piece from a PieceType and Color. Returns NoPiece if
// pt is NoPieceType.
func NewPiece(pt PieceType, c Color) Piece {
	if pt == NoPieceType {
		return NoPiece
	}
	if c == Black {
		return Piece(pt) | colorBit
	}
	return Piece(pt)
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	return PieceType(p & 0x7)
}

// Color returns the Color of the piece. Only meaningful when
// Type() != NoPieceType.
func (p Piece) Color() Color {
	if p&colorBit != 0 {
		return Black
	}
	return White
}

// ColoredIndex maps a colored piece to 0-11: (type-1)*2+color. Used to
// index the twelve colored piece lists and piece bitboards.
func (p Piece) ColoredIndex() int {
	return (int(p.Type())-1)*2 + int(p.Color())
}

// PieceFromColoredIndex is the inverse of Piece.ColoredIndex.
func PieceFromColoredIndex(idx int) Piece {
	return NewPiece(PieceType(idx/2+1), Color(idx%2))
}

// String returns the FEN character for the piece: uppercase for White,
// lowercase for Black, " " for NoPiece.
func (p Piece) String() string {
	if p.Type() == NoPieceType {
		return " "
	}
	c := p.Type().Char()
	if p.Color() == White {
		c -= 'a' - 'A'
	}
	return string(c)
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}

// Value returns the material value of the piece in centipawns.
func (p Piece) Value() int {
	return PieceValue[p.Type()]
}
