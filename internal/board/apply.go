package board

import "fmt"

// Apply advances the position by one fully resolved event and returns the
// resulting position. The receiver is left untouched.
//
// Apply performs no rule validation: events must come out of Resolve (or
// LegalMoves). Feeding it an unresolved or inconsistent event is a defect
// and fails with the invariant-violation taxonomy, as do any board
// manipulation errors that would follow from one.
func (p *Position) Apply(ev Event) (*Position, error) {
	switch e := ev.(type) {
	case MoveEvent:
		return p.applyMove(e)
	case EnPassantEvent:
		return p.applyEnPassant(e)
	case CastleEvent:
		return p.applyCastle(e)
	default:
		return nil, fmt.Errorf("%w: unknown event %T", ErrUnresolvedEvent, ev)
	}
}

func (p *Position) applyMove(e MoveEvent) (*Position, error) {
	if !e.isResolved() {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedEvent, e)
	}
	from, _ := e.From.Square()

	grid := p.grid
	if e.Capture != nil {
		next, removed, err := grid.Remove(e.Capture.Square)
		if err != nil {
			return nil, err
		}
		if removed != e.Capture.Piece {
			return nil, fmt.Errorf("%w: capture mismatch on %v: %v != %v",
				ErrUnresolvedEvent, e.Capture.Square, removed, e.Capture.Piece)
		}
		grid = next
	}

	grid, err := grid.Move(from, e.To)
	if err != nil {
		return nil, err
	}

	if e.Promotion != NoPieceType {
		next, _, err := grid.Remove(e.To)
		if err != nil {
			return nil, err
		}
		grid, err = next.Put(NewPiece(e.Promotion, e.Color), e.To)
		if err != nil {
			return nil, err
		}
	}

	next := *p
	next.grid = grid
	next.castling = revokedRights(p.castling, e.Color, e.Piece, from, e.Capture)
	next.enPassant = NoSquare
	if e.Piece == Pawn && abs(int(e.To)-int(from)) == 16 {
		next.enPassant = NewSquare(from.File(), (from.Rank()+e.To.Rank())/2)
	}
	if e.Piece == Pawn || e.Capture != nil {
		next.halfMoveClock = 0
	} else {
		next.halfMoveClock = p.halfMoveClock + 1
	}
	next.advanceTurn(e.Color)
	return &next, nil
}

func (p *Position) applyEnPassant(e EnPassantEvent) (*Position, error) {
	if !e.isResolved() || e.Capture == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedEvent, e)
	}
	from, _ := e.From.Square()

	grid, removed, err := p.grid.Remove(e.Capture.Square)
	if err != nil {
		return nil, err
	}
	if removed != e.Capture.Piece {
		return nil, fmt.Errorf("%w: capture mismatch on %v: %v != %v",
			ErrUnresolvedEvent, e.Capture.Square, removed, e.Capture.Piece)
	}

	grid, err = grid.Move(from, e.To)
	if err != nil {
		return nil, err
	}

	next := *p
	next.grid = grid
	next.enPassant = NoSquare
	next.halfMoveClock = 0
	next.advanceTurn(e.Color)
	return &next, nil
}

func (p *Position) applyCastle(e CastleEvent) (*Position, error) {
	if !e.isResolved() {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedEvent, e)
	}

	kingFrom, kingTo, rookFrom, rookTo := castleSquares(e.Color, e.Side)

	grid, err := p.grid.Move(kingFrom, kingTo)
	if err != nil {
		return nil, err
	}
	grid, err = grid.Move(rookFrom, rookTo)
	if err != nil {
		return nil, err
	}

	next := *p
	next.grid = grid
	next.castling = p.castling.without(e.Color, KingSide).without(e.Color, QueenSide)
	next.enPassant = NoSquare
	next.halfMoveClock = p.halfMoveClock + 1
	next.advanceTurn(e.Color)
	return &next, nil
}

// advanceTurn flips the side to move and bumps the full-move number after
// Black's turn.
func (p *Position) advanceTurn(mover Color) {
	p.sideToMove = mover.Other()
	if mover == Black {
		p.fullMoveNumber++
	}
}

// castleSquares returns the king and rook origin/destination squares for a
// castle.
func castleSquares(c Color, side CastleSide) (kingFrom, kingTo, rookFrom, rookTo Square) {
	rank := 0
	if c == Black {
		rank = 7
	}
	kingFrom = NewSquare(4, rank)
	if side == KingSide {
		kingTo = NewSquare(6, rank)
		rookFrom = NewSquare(7, rank)
		rookTo = NewSquare(5, rank)
	} else {
		kingTo = NewSquare(2, rank)
		rookFrom = NewSquare(0, rank)
		rookTo = NewSquare(3, rank)
	}
	return
}

// rookHome returns the origin square of a color's rook on a side.
func rookHome(c Color, side CastleSide) Square {
	_, _, rookFrom, _ := castleSquares(c, side)
	return rookFrom
}

// revokedRights computes the castling rights left after a move: moving the
// king forfeits both sides, moving a rook off its origin forfeits that
// side, and capturing a rook on its origin forfeits it for the victim.
func revokedRights(rights CastlingRights, mover Color, pt PieceType, from Square, cap *Capture) CastlingRights {
	switch pt {
	case King:
		rights = rights.without(mover, KingSide).without(mover, QueenSide)
	case Rook:
		for _, side := range []CastleSide{KingSide, QueenSide} {
			if from == rookHome(mover, side) {
				rights = rights.without(mover, side)
			}
		}
	}

	if cap != nil && cap.Piece.Type() == Rook {
		victim := mover.Other()
		for _, side := range []CastleSide{KingSide, QueenSide} {
			if cap.Square == rookHome(victim, side) {
				rights = rights.without(victim, side)
			}
		}
	}
	return rights
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
