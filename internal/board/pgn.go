package board

import (
	"fmt"
	"strings"
)

// PGN renders the game played from the position's start FEN through its
// move history as a PGN string: the seven-tag roster followed by numbered
// movetext.
func (p *Position) PGN() string {
	var sb strings.Builder

	start, err := ParseFEN(p.startFEN)
	if err != nil {
		start = NewPosition()
	}

	fmt.Fprintf(&sb, "[Event \"?\"]\n")
	fmt.Fprintf(&sb, "[Site \"?\"]\n")
	fmt.Fprintf(&sb, "[Date \"????.??.??\"]\n")
	fmt.Fprintf(&sb, "[Round \"?\"]\n")
	fmt.Fprintf(&sb, "[White \"?\"]\n")
	fmt.Fprintf(&sb, "[Black \"?\"]\n")
	fmt.Fprintf(&sb, "[Result \"%s\"]\n", p.pgnResult())
	if p.startFEN != StartFEN {
		fmt.Fprintf(&sb, "[SetUp \"1\"]\n")
		fmt.Fprintf(&sb, "[FEN \"%s\"]\n", p.startFEN)
	}
	sb.WriteByte('\n')

	sanMoves := MovesToSAN(start, p.moveHistory)
	startPly := start.plyCount
	for i, san := range sanMoves {
		ply := startPly + i
		if ply%2 == 0 {
			fmt.Fprintf(&sb, "%d. ", ply/2+1)
		}
		sb.WriteString(san)
		sb.WriteByte(' ')
	}
	sb.WriteString(p.pgnResult())

	return sb.String()
}

// pgnResult reports the PGN result tag for the current position: an
// in-progress game is "*", otherwise the terminal outcome.
func (p *Position) pgnResult() string {
	if p.IsCheckmate() {
		if p.sideToMove == White {
			return "0-1"
		}
		return "1-0"
	}
	if p.IsStalemate() || p.state.halfMoveClock >= 100 || p.IsRepetition() {
		return "1/2-1/2"
	}
	return "*"
}
