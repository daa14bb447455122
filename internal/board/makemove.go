package board

// castleRookMove returns the rook's origin/destination for a castling move,
// given the king's own destination square.
func castleRookMove(kingTo Square) (rookFrom, rookTo Square) {
	switch kingTo {
	case G1:
		return H1, F1
	case C1:
		return A1, D1
	case G8:
		return H8, F8
	case C8:
		return A8, D8
	default:
		return NoSquare, NoSquare
	}
}

// rookSquareRights maps a rook's home square to the castling right it
// guards, so that a rook being captured or moving off its home square
// clears the matching right (step 8 of make_move).
func rookSquareRights(sq Square) CastlingRights {
	switch sq {
	case A1:
		return WhiteQueenSide
	case H1:
		return WhiteKingSide
	case A8:
		return BlackQueenSide
	case H8:
		return BlackKingSide
	default:
		return NoCastling
	}
}

// MakeMove performs an incremental update of the position for move m.
// Failure is a programmer error (illegal/malformed m), not a runtime
// condition: callers must only pass moves produced by the move generator.
func (p *Position) MakeMove(m Move) {
	from, to, flag := m.From(), m.To(), m.Flag()
	us := p.sideToMove
	them := us.Other()

	movedPiece := p.squares[from]
	movedType := movedPiece.Type()

	next := p.state
	next.capturedPieceType = NoPieceType

	capturedSq := to
	if flag == FlagEnPassant {
		if us == White {
			capturedSq = NewSquare(to.File(), to.Rank()-1)
		} else {
			capturedSq = NewSquare(to.File(), to.Rank()+1)
		}
	}

	isCapture := flag == FlagEnPassant || p.squares[to] != NoPiece
	if isCapture {
		captured := p.squares[capturedSq]
		next.capturedPieceType = captured.Type()
		next.zobristKey ^= ZobristPiece(them, captured.Type(), capturedSq)
		p.clearSquare(capturedSq)
		if captured.Type() == Rook {
			next.castlingRights &^= rookSquareRights(capturedSq)
		}
	}

	// Move the piece on squares/bitboards/piece list, and Zobrist.
	next.zobristKey ^= ZobristPiece(us, movedType, from)
	p.clearSquare(from)

	placedType := movedType
	if flag >= FlagPromoteQueen {
		placedType = m.Promotion()
	}
	p.placePiece(NewPiece(placedType, us), to)
	next.zobristKey ^= ZobristPiece(us, placedType, to)

	if movedType == King {
		next.castlingRights &^= rightsMaskFor(us)
		if flag == FlagCastle {
			rookFrom, rookTo := castleRookMove(to)
			next.zobristKey ^= ZobristPiece(us, Rook, rookFrom)
			p.clearSquare(rookFrom)
			p.placePiece(NewPiece(Rook, us), rookTo)
			next.zobristKey ^= ZobristPiece(us, Rook, rookTo)
		}
	}
	if movedType == Rook {
		next.castlingRights &^= rookSquareRights(from)
	}

	// En-passant file bookkeeping.
	next.zobristKey ^= ZobristEnPassantFile(next.enPassantFile)
	next.enPassantFile = 0
	if flag == FlagDoublePawnPush {
		next.enPassantFile = from.File() + 1
		p.enPassantRank = (from.Rank() + to.Rank()) / 2
	}
	next.zobristKey ^= ZobristEnPassantFile(next.enPassantFile)

	if next.castlingRights != p.state.castlingRights {
		next.zobristKey ^= ZobristCastling(p.state.castlingRights)
		next.zobristKey ^= ZobristCastling(next.castlingRights)
	}

	p.stateHistory = append(p.stateHistory, p.state)
	p.plyCount++
	if us == Black {
		p.fullMoveNumber++
	}
	p.sideToMove = them
	next.zobristKey ^= ZobristSideToMove()

	p.windowStartHistory = append(p.windowStartHistory, p.repetitionWindowStart)
	reset := movedType == Pawn || isCapture
	if reset {
		next.halfMoveClock = 0
		p.repetitionWindowStart = len(p.repetitionHistory)
	} else {
		next.halfMoveClock++
	}
	p.repetitionHistory = append(p.repetitionHistory, next.zobristKey)

	p.state = next
	p.updateSliderUnion()
	p.checkCacheValid = false
	p.moveHistory = append(p.moveHistory, m)
}

// UnmakeMove reverses MakeMove(m), restoring bitboards, piece lists,
// squares, and the Zobrist key bit-for-bit (a testable property).
func (p *Position) UnmakeMove(m Move) {
	from, to, flag := m.From(), m.To(), m.Flag()
	them := p.sideToMove
	us := them.Other()

	p.moveHistory = p.moveHistory[:len(p.moveHistory)-1]
	if len(p.repetitionHistory) > 0 {
		p.repetitionHistory = p.repetitionHistory[:len(p.repetitionHistory)-1]
	}
	if len(p.windowStartHistory) > 0 {
		p.repetitionWindowStart = p.windowStartHistory[len(p.windowStartHistory)-1]
		p.windowStartHistory = p.windowStartHistory[:len(p.windowStartHistory)-1]
	}

	prev := p.stateHistory[len(p.stateHistory)-1]
	p.stateHistory = p.stateHistory[:len(p.stateHistory)-1]

	p.sideToMove = us
	p.plyCount--
	if us == Black {
		p.fullMoveNumber--
	}

	placedType := p.squares[to].Type()
	p.clearSquare(to)

	originalType := placedType
	if flag >= FlagPromoteQueen {
		originalType = Pawn
	}
	p.placePiece(NewPiece(originalType, us), from)

	if flag == FlagCastle {
		rookFrom, rookTo := castleRookMove(to)
		p.clearSquare(rookTo)
		p.placePiece(NewPiece(Rook, us), rookFrom)
	}

	if captured := p.state.capturedPieceType; captured != NoPieceType {
		capturedSq := to
		if flag == FlagEnPassant {
			if us == White {
				capturedSq = NewSquare(to.File(), to.Rank()-1)
			} else {
				capturedSq = NewSquare(to.File(), to.Rank()+1)
			}
		}
		p.placePiece(NewPiece(captured, them), capturedSq)
	}

	p.state = prev
	if prev.enPassantFile != 0 {
		// Recompute the paired rank: it is always one behind the last
		// double push, which for the restored state belongs to the side
		// now to move (us).
		if us == White {
			p.enPassantRank = 5
		} else {
			p.enPassantRank = 2
		}
	}
	p.updateSliderUnion()
	p.checkCacheValid = false
}

// NullMoveUndo captures the state MakeNullMove mutates, for UnmakeNullMove.
type NullMoveUndo struct {
	enPassantFile int
	enPassantRank int
	zobristKey    uint64
}

// MakeNullMove passes the turn without moving a piece: flips side to move
// and updates only the Zobrist side bit and the cleared en-passant file.
func (p *Position) MakeNullMove() NullMoveUndo {
	undo := NullMoveUndo{
		enPassantFile: p.state.enPassantFile,
		enPassantRank: p.enPassantRank,
		zobristKey:    p.state.zobristKey,
	}
	p.state.zobristKey ^= ZobristEnPassantFile(p.state.enPassantFile)
	p.state.enPassantFile = 0
	p.state.zobristKey ^= ZobristSideToMove()
	p.sideToMove = p.sideToMove.Other()
	// The side not to move is never in check in a legal position, so the
	// new side to move's check status is false without recomputing it.
	p.checkCacheValid = true
	p.checkCacheValue = false
	return undo
}

// UnmakeNullMove undoes MakeNullMove.
func (p *Position) UnmakeNullMove(undo NullMoveUndo) {
	p.sideToMove = p.sideToMove.Other()
	p.state.enPassantFile = undo.enPassantFile
	p.enPassantRank = undo.enPassantRank
	p.state.zobristKey = undo.zobristKey
	p.checkCacheValid = false
}
