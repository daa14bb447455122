package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a fresh Position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN: need at least 4 fields, got %d", len(parts))
	}

	pos := &Position{fullMoveNumber: 1}
	for i := range pos.kingSquare {
		pos.kingSquare[i] = NoSquare
	}

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid side to move: %s", parts[1])
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square: %s", parts[3])
		}
		pos.state.enPassantFile = sq.File() + 1
		pos.enPassantRank = sq.Rank()
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil {
			return nil, fmt.Errorf("invalid half-move clock: %s", parts[4])
		}
		pos.state.halfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil {
			return nil, fmt.Errorf("invalid full-move number: %s", parts[5])
		}
		pos.fullMoveNumber = fmn
	}

	pos.updateSliderUnion()
	pos.state.zobristKey = pos.computeHash()
	pos.repetitionHistory = []uint64{pos.state.zobristKey}
	pos.startFEN = fen

	return pos, nil
}

func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("invalid piece placement: need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			if file > 7 {
				return fmt.Errorf("too many squares in rank %d", rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			piece := PieceFromChar(byte(c))
			if piece == NoPiece {
				return fmt.Errorf("invalid piece character: %c", c)
			}
			pos.placePiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fmt.Errorf("invalid number of squares in rank %d: got %d", rank+1, file)
		}
	}

	return nil
}

func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		pos.state.castlingRights = NoCastling
		return nil
	}
	for _, c := range castling {
		switch c {
		case 'K':
			pos.state.castlingRights |= WhiteKingSide
		case 'Q':
			pos.state.castlingRights |= WhiteQueenSide
		case 'k':
			pos.state.castlingRights |= BlackKingSide
		case 'q':
			pos.state.castlingRights |= BlackQueenSide
		default:
			return fmt.Errorf("invalid castling character: %c", c)
		}
	}
	return nil
}

// hasLegalEnPassantCapture reports whether the side to move has at least
// one legal en-passant capture available right now.
func (p *Position) hasLegalEnPassantCapture() bool {
	if p.EnPassant() == NoSquare {
		return false
	}
	ml := p.GenerateLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if ml.Get(i).IsEnPassant() {
			return true
		}
	}
	return false
}

// FEN returns the Forsyth-Edwards representation of the position. The
// en-passant field is "-" unless a legal capture onto that square exists
// right now, matching how engines round-trip FEN for repetition keys.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.squares[NewSquare(file, rank)]
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.state.castlingRights.String())

	sb.WriteByte(' ')
	if p.hasLegalEnPassantCapture() {
		sb.WriteString(p.EnPassant().String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.state.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMoveNumber))

	return sb.String()
}

// FENNoCounters returns the FEN with the halfmove and fullmove fields
// stripped, as used for opening-book lookup keys.
func (p *Position) FENNoCounters() string {
	full := p.FEN()
	fields := strings.Fields(full)
	return strings.Join(fields[:4], " ")
}
