package board

// NewMoveList returns an empty MoveList.
func NewMoveList() *MoveList { return &MoveList{} }

var allDirections = [8]Direction{
	DirNorth, DirSouth, DirEast, DirWest,
	DirNorthEast, DirNorthWest, DirSouthEast, DirSouthWest,
}

func isDiagonal(d Direction) bool {
	return d == DirNorthEast || d == DirNorthWest || d == DirSouthEast || d == DirSouthWest
}

// towardsPositive is true for directions whose ray walks toward higher
// square indices, so the nearest blocker along the ray is its LSB.
func towardsPositive(d Direction) bool {
	return d == DirNorth || d == DirEast || d == DirNorthEast || d == DirNorthWest
}

func nearestBlocker(d Direction, blockers Bitboard) Square {
	if towardsPositive(d) {
		return blockers.LSB()
	}
	return blockers.MSB()
}

// attackersTo returns the bitboard of all `by`-colored pieces that attack
// sq, given the occupancy occ (which callers may hollow out, e.g. to let
// sliding attacks see through a king that is about to move).
func (p *Position) attackersTo(sq Square, by Color, occ Bitboard) Bitboard {
	var attackers Bitboard
	attackers |= PawnAttacks(sq, by.Other()) & p.PieceBB(Pawn, by)
	attackers |= KnightAttacks(sq) & p.PieceBB(Knight, by)
	attackers |= KingMoves(sq) & p.PieceBB(King, by)
	attackers |= BishopAttacks(sq, occ) & p.DiagSliders(by)
	attackers |= RookAttacks(sq, occ) & p.OrthoSliders(by)
	return attackers
}

// IsSquareAttacked reports whether sq is attacked by any piece of color by,
// on the current board.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return p.attackersTo(sq, by, p.allBB) != 0
}

// InCheck reports whether the side to move's king is currently attacked.
func (p *Position) InCheck() bool {
	if p.checkCacheValid {
		return p.checkCacheValue
	}
	v := p.IsSquareAttacked(p.kingSquare[p.sideToMove], p.sideToMove.Other())
	p.checkCacheValid = true
	p.checkCacheValue = v
	return v
}

// InDoubleCheck reports whether the side to move's king is attacked by two
// pieces at once, in which case only king moves are legal.
func (p *Position) InDoubleCheck() bool {
	_, _, doubleCheck := p.computePinsAndChecks(p.sideToMove)
	return doubleCheck
}

// OpponentAttackMap returns every square attacked by the side not to move,
// including pawn attacks, with the side-to-move's king removed from the
// blocking occupancy.
func (p *Position) OpponentAttackMap() Bitboard {
	return p.enemyAttackMap(p.sideToMove)
}

// OpponentPawnAttackMap returns every square attacked by an enemy pawn.
func (p *Position) OpponentPawnAttackMap() Bitboard {
	them := p.sideToMove.Other()
	var m Bitboard
	p.PieceBB(Pawn, them).ForEach(func(sq Square) { m |= PawnAttacks(sq, them) })
	return m
}

// enemyAttackMap returns every square attacked by the side not to move,
// with us's king removed from the occupancy so that a king fleeing along
// a checking ray is not mistaken for a blocker.
func (p *Position) enemyAttackMap(us Color) Bitboard {
	them := us.Other()
	occ := p.allBB &^ SquareBB(p.kingSquare[us])

	var m Bitboard
	p.PieceBB(Pawn, them).ForEach(func(sq Square) { m |= PawnAttacks(sq, them) })
	p.PieceBB(Knight, them).ForEach(func(sq Square) { m |= KnightAttacks(sq) })
	p.PieceBB(King, them).ForEach(func(sq Square) { m |= KingMoves(sq) })
	p.diagSliderBB[them].ForEach(func(sq Square) { m |= BishopAttacks(sq, occ) })
	p.orthoSliderBB[them].ForEach(func(sq Square) { m |= RookAttacks(sq, occ) })
	return m
}

// computePinsAndChecks walks the eight rays from us's king to find checking
// pieces and absolute pins in one pass (§4.3). pins[sq] is the non-zero
// mask a piece on sq must stay within if it is pinned; checkRay is the set
// of squares (interposition squares plus the checker itself) that resolve
// a single check, or Universe if the king is not in check. doubleCheck
// means only king moves may be generated.
func (p *Position) computePinsAndChecks(us Color) (pins [64]Bitboard, checkRay Bitboard, doubleCheck bool) {
	them := us.Other()
	ksq := p.kingSquare[us]
	occ := p.allBB

	var checkers Bitboard

	nonSliderCheckers := (PawnAttacks(ksq, us) & p.PieceBB(Pawn, them)) | (KnightAttacks(ksq) & p.PieceBB(Knight, them))
	checkers |= nonSliderCheckers
	checkRay |= nonSliderCheckers

	for _, d := range allDirections {
		var sliderBB Bitboard
		if isDiagonal(d) {
			sliderBB = p.diagSliderBB[them]
		} else {
			sliderBB = p.orthoSliderBB[them]
		}

		ray := DirRayMask(d, ksq)
		blockers := ray & occ
		if blockers == 0 {
			continue
		}
		nearest := nearestBlocker(d, blockers)

		if p.squares[nearest].Color() == us {
			beyond := DirRayMask(d, nearest) & occ
			if beyond == 0 {
				continue
			}
			pinner := nearestBlocker(d, beyond)
			if p.squares[pinner].Color() == them && sliderBB.IsSet(pinner) {
				pins[nearest] = Between(ksq, pinner) | SquareBB(pinner)
			}
			continue
		}

		if sliderBB.IsSet(nearest) {
			checkers |= SquareBB(nearest)
			checkRay |= Between(ksq, nearest) | SquareBB(nearest)
		}
	}

	if checkers == 0 {
		checkRay = Universe
	}
	doubleCheck = checkers.PopCount() >= 2
	return pins, checkRay, doubleCheck
}

func destMask(from Square, pins [64]Bitboard, checkRay Bitboard) Bitboard {
	mask := checkRay
	if pin := pins[from]; pin != 0 {
		mask &= pin
	}
	return mask
}

// GenerateLegalMoves returns every legal move in the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generateMoves(ml, false)
	return ml
}

// GenerateCaptures returns legal captures and promotions only, for
// quiescence search.
func (p *Position) GenerateCaptures() *MoveList {
	ml := NewMoveList()
	p.generateMoves(ml, true)
	return ml
}

func (p *Position) generateMoves(ml *MoveList, capturesOnly bool) {
	us := p.sideToMove
	them := us.Other()

	pins, checkRay, doubleCheck := p.computePinsAndChecks(us)
	attackMap := p.enemyAttackMap(us)

	p.generateKingMoves(ml, us, them, attackMap, capturesOnly)
	if doubleCheck {
		return
	}

	if checkRay == Universe {
		p.generateCastlingMoves(ml, us, attackMap)
	}
	p.generatePawnMoves(ml, us, them, pins, checkRay, capturesOnly)
	p.generateKnightMoves(ml, us, them, pins, checkRay, capturesOnly)
	p.generateSliderMoves(ml, us, them, Bishop, pins, checkRay, capturesOnly)
	p.generateSliderMoves(ml, us, them, Rook, pins, checkRay, capturesOnly)
	p.generateSliderMoves(ml, us, them, Queen, pins, checkRay, capturesOnly)
}

func (p *Position) generateKingMoves(ml *MoveList, us, them Color, attackMap Bitboard, capturesOnly bool) {
	from := p.kingSquare[us]
	attacks := KingMoves(from) &^ p.colorBB[us] &^ attackMap
	if capturesOnly {
		attacks &= p.colorBB[them]
	}
	attacks.ForEach(func(to Square) { ml.Add(NewMove(from, to)) })
}

func (p *Position) generateCastlingMoves(ml *MoveList, us Color, attackMap Bitboard) {
	cr := p.state.castlingRights

	if us == White {
		if cr&WhiteKingSide != 0 &&
			p.allBB&(SquareBB(F1)|SquareBB(G1)) == 0 &&
			attackMap&(SquareBB(E1)|SquareBB(F1)|SquareBB(G1)) == 0 {
			ml.Add(NewCastle(E1, G1))
		}
		if cr&WhiteQueenSide != 0 &&
			p.allBB&(SquareBB(B1)|SquareBB(C1)|SquareBB(D1)) == 0 &&
			attackMap&(SquareBB(E1)|SquareBB(D1)|SquareBB(C1)) == 0 {
			ml.Add(NewCastle(E1, C1))
		}
		return
	}
	if cr&BlackKingSide != 0 &&
		p.allBB&(SquareBB(F8)|SquareBB(G8)) == 0 &&
		attackMap&(SquareBB(E8)|SquareBB(F8)|SquareBB(G8)) == 0 {
		ml.Add(NewCastle(E8, G8))
	}
	if cr&BlackQueenSide != 0 &&
		p.allBB&(SquareBB(B8)|SquareBB(C8)|SquareBB(D8)) == 0 &&
		attackMap&(SquareBB(E8)|SquareBB(D8)|SquareBB(C8)) == 0 {
		ml.Add(NewCastle(E8, C8))
	}
}

func (p *Position) generateKnightMoves(ml *MoveList, us, them Color, pins [64]Bitboard, checkRay Bitboard, capturesOnly bool) {
	p.PieceBB(Knight, us).ForEach(func(from Square) {
		if pins[from] != 0 {
			return // an absolutely pinned knight never has a legal move
		}
		attacks := KnightAttacks(from) &^ p.colorBB[us] & checkRay
		if capturesOnly {
			attacks &= p.colorBB[them]
		}
		attacks.ForEach(func(to Square) { ml.Add(NewMove(from, to)) })
	})
}

func (p *Position) generateSliderMoves(ml *MoveList, us, them Color, pt PieceType, pins [64]Bitboard, checkRay Bitboard, capturesOnly bool) {
	occ := p.allBB
	p.PieceBB(pt, us).ForEach(func(from Square) {
		var attacks Bitboard
		switch pt {
		case Bishop:
			attacks = BishopAttacks(from, occ)
		case Rook:
			attacks = RookAttacks(from, occ)
		default:
			attacks = QueenAttacks(from, occ)
		}
		attacks &^= p.colorBB[us]
		attacks &= destMask(from, pins, checkRay)
		if capturesOnly {
			attacks &= p.colorBB[them]
		}
		attacks.ForEach(func(to Square) { ml.Add(NewMove(from, to)) })
	})
}

func addPromotions(ml *MoveList, from, to Square) {
	ml.Add(NewPromotion(from, to, Queen))
	ml.Add(NewPromotion(from, to, Rook))
	ml.Add(NewPromotion(from, to, Bishop))
	ml.Add(NewPromotion(from, to, Knight))
}

func (p *Position) generatePawnMoves(ml *MoveList, us, them Color, pins [64]Bitboard, checkRay Bitboard, capturesOnly bool) {
	promotionRank := Rank8
	startRank := 1
	dir := 8
	if us == Black {
		promotionRank = Rank1
		startRank = 6
		dir = -8
	}

	empty := ^p.allBB
	p.PieceBB(Pawn, us).ForEach(func(from Square) {
		mask := destMask(from, pins, checkRay)

		push1 := Square(int(from) + dir)
		canPush1 := push1.IsValid() && empty.IsSet(push1)

		if canPush1 && mask.IsSet(push1) {
			if SquareBB(push1)&promotionRank != 0 {
				if !capturesOnly {
					addPromotions(ml, from, push1)
				} else {
					ml.Add(NewPromotion(from, push1, Queen))
				}
			} else if !capturesOnly {
				ml.Add(NewMove(from, push1))
			}
		}
		if canPush1 && from.Rank() == startRank {
			push2 := Square(int(from) + 2*dir)
			if empty.IsSet(push2) && mask.IsSet(push2) && !capturesOnly {
				ml.Add(NewDoublePawnPush(from, push2))
			}
		}

		captures := PawnAttacks(from, us) & p.colorBB[them] & mask
		captures.ForEach(func(to Square) {
			if SquareBB(to)&promotionRank != 0 {
				addPromotions(ml, from, to)
			} else {
				ml.Add(NewMove(from, to))
			}
		})
	})

	ep := p.EnPassant()
	if ep == NoSquare {
		return
	}
	capturedSq := Square(int(ep) - dir)
	attackers := PawnAttacks(ep, them) & p.PieceBB(Pawn, us)
	attackers.ForEach(func(from Square) {
		if pins[from] != 0 && !pins[from].IsSet(ep) {
			return
		}
		if checkRay != Universe && !checkRay.IsSet(ep) && !checkRay.IsSet(capturedSq) {
			return
		}
		if p.enPassantDiscoversCheck(us, them, from, ep, capturedSq) {
			return
		}
		ml.Add(NewEnPassant(from, ep))
	})
}

// enPassantDiscoversCheck handles the classic horizontal-pin edge case: the
// en-passant capture vacates two squares on the king's rank in the same
// move, which per-piece pin detection cannot see.
func (p *Position) enPassantDiscoversCheck(us, them Color, from, to, capturedSq Square) bool {
	ksq := p.kingSquare[us]
	occ := (p.allBB &^ SquareBB(from) &^ SquareBB(capturedSq)) | SquareBB(to)
	return RookAttacks(ksq, occ)&p.orthoSliderBB[them] != 0
}

// HasLegalMoves reports whether the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return p.GenerateLegalMoves().Len() > 0
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate reports whether the side to move is stalemated.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsDraw reports whether the position is drawn by stalemate, the 50-move
// rule, or insufficient mating material. Threefold repetition is tracked
// by the caller via repetitionHistory, not here.
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.state.halfMoveClock >= 100 {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial reports whether neither side has enough material
// to force checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	if p.PieceBB(Pawn, White)|p.PieceBB(Pawn, Black) != 0 ||
		p.PieceBB(Rook, White)|p.PieceBB(Rook, Black) != 0 ||
		p.PieceBB(Queen, White)|p.PieceBB(Queen, Black) != 0 {
		return false
	}

	wMinors := p.PieceBB(Knight, White).PopCount() + p.PieceBB(Bishop, White).PopCount()
	bMinors := p.PieceBB(Knight, Black).PopCount() + p.PieceBB(Bishop, Black).PopCount()

	if wMinors+bMinors == 0 {
		return true
	}
	if wMinors <= 1 && bMinors == 0 {
		return true
	}
	if bMinors <= 1 && wMinors == 0 {
		return true
	}
	return false
}
