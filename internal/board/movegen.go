package board

import "iter"

var promotables = []PieceType{Knight, Bishop, Rook, Queen}

// pseudoLegal generates every candidate event for the side to move under
// piece geometry and occupancy, ignoring whether the mover's king ends up
// in check: quiet moves, captures with their metadata attached, pawn moves
// to the far rank expanded into one event per promotable type, en passant
// per capable origin, and castling per held right. Legality filtering is
// the caller's job.
func (p *Position) pseudoLegal() []Event {
	us := p.sideToMove
	var out []Event

	for _, from := range p.Squares(us, NoPieceType) {
		piece := p.PieceAt(from)
		for _, to := range p.moveTargets(from) {
			ev := MoveEvent{
				Color:     us,
				Piece:     piece.Type(),
				From:      HintAt(from),
				To:        to,
				Promotion: NoPieceType,
			}
			if target := p.PieceAt(to); target != NoPiece {
				ev.Capture = &Capture{Square: to, Piece: target}
			}

			if piece.Type() == Pawn && to.RelativeRank(us) == 7 {
				for _, promo := range promotables {
					variant := ev
					variant.Promotion = promo
					out = append(out, variant)
				}
			} else {
				out = append(out, ev)
			}
		}
	}

	if p.enPassant != NoSquare {
		dir := pawnDir(us)
		for _, df := range []int{-1, 1} {
			from, ok := step(p.enPassant, delta{df, -dir})
			if ok && p.PieceAt(from) == NewPiece(Pawn, us) {
				out = append(out, EnPassantEvent{Color: us, From: HintAt(from), To: p.enPassant})
			}
		}
	}

	for _, side := range []CastleSide{KingSide, QueenSide} {
		if p.castling.CanCastle(us, side) {
			out = append(out, CastleEvent{Color: us, Side: side})
		}
	}

	return out
}

// LegalMoves returns a lazy, restartable sequence of every fully resolved
// legal event for the side to move. Candidates come from pseudo-legal
// generation and pass through Resolve, so each yielded event carries its
// complete origin and capture metadata and has survived the self-check
// simulation. A candidate that fails to resolve for any reason is simply
// not a legal move.
func (p *Position) LegalMoves() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, candidate := range p.pseudoLegal() {
			resolved, err := Resolve(p, candidate)
			if err != nil {
				continue
			}
			if !yield(resolved) {
				return
			}
		}
	}
}

// HasLegalMove reports whether the side to move has any legal move. It
// stops at the first one found.
func (p *Position) HasLegalMove() bool {
	for range p.LegalMoves() {
		return true
	}
	return false
}
