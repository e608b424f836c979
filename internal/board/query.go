package board

// AttackedBy reports whether any piece of color c attacks sq. Blockers are
// honored exactly as piece geometry defines: sliding pieces stop at the
// first occupant.
func (p *Position) AttackedBy(sq Square, c Color) bool {
	for _, from := range p.grid.Squares(c, NoPieceType) {
		if containsSquare(p.attackSquares(from), sq) {
			return true
		}
	}
	return false
}

// InCheck reports whether the given color's king is attacked. Pass NoColor
// for the side to move.
func (p *Position) InCheck(c Color) bool {
	if c == NoColor {
		c = p.sideToMove
	}
	king := p.KingSquare(c)
	if king == NoSquare {
		return false
	}
	return p.AttackedBy(king, c.Other())
}

// IsCheckmate reports whether the side to move is in check with no legal
// response.
func (p *Position) IsCheckmate() bool {
	return p.InCheck(p.sideToMove) && !p.HasLegalMove()
}

// IsStalemate reports whether the side to move is not in check and has no
// legal move.
func (p *Position) IsStalemate() bool {
	return !p.InCheck(p.sideToMove) && !p.HasLegalMove()
}

// InsufficientMaterial reports whether neither side can possibly deliver
// mate: king vs king, king and one minor piece vs king, or king and bishop
// vs king and bishop with both bishops on same-colored squares. Any pawn,
// rook, or queen on the board rules it out.
func (p *Position) InsufficientMaterial() bool {
	var minors []Square
	for _, sq := range p.grid.Squares(NoColor, NoPieceType) {
		switch p.PieceAt(sq).Type() {
		case King:
		case Knight, Bishop:
			minors = append(minors, sq)
		default:
			return false
		}
	}

	switch len(minors) {
	case 0, 1:
		return true
	case 2:
		a, b := p.PieceAt(minors[0]), p.PieceAt(minors[1])
		if a.Type() != Bishop || b.Type() != Bishop || a.Color() == b.Color() {
			return false
		}
		return squareShade(minors[0]) == squareShade(minors[1])
	default:
		return false
	}
}

// squareShade returns 0 for dark squares and 1 for light squares.
func squareShade(sq Square) int {
	return (sq.File() + sq.Rank()) & 1
}

// FiftyMoveRule reports whether fifty full moves have passed without a pawn
// move or capture, making a draw claimable.
func (p *Position) FiftyMoveRule() bool {
	return p.halfMoveClock >= 100
}
