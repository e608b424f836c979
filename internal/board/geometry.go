package board

// Piece geometry: which squares a piece reaches from a square, honoring
// blockers but nothing else. Sliding walks stop at (and include) the first
// occupant; whether that occupant may actually be captured is the caller's
// concern.

type delta struct {
	df, dr int
}

var (
	orthogonalDirs = []delta{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalDirs   = []delta{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	royalDirs      = append(append([]delta{}, orthogonalDirs...), diagonalDirs...)
	knightSteps    = []delta{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// step returns the square one delta away from sq, if it is on the board.
func step(sq Square, d delta) (Square, bool) {
	file := sq.File() + d.df
	rank := sq.Rank() + d.dr
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, false
	}
	return NewSquare(file, rank), true
}

// pawnDir is the forward rank delta for a color.
func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// slide walks each direction from sq until leaving the board or hitting an
// occupant, which is included in the result.
func (p *Position) slide(sq Square, dirs []delta) []Square {
	var out []Square
	for _, d := range dirs {
		cur := sq
		for {
			next, ok := step(cur, d)
			if !ok {
				break
			}
			out = append(out, next)
			if p.PieceAt(next) != NoPiece {
				break
			}
			cur = next
		}
	}
	return out
}

// leaps collects the on-board squares one step away in each direction.
func leaps(sq Square, dirs []delta) []Square {
	var out []Square
	for _, d := range dirs {
		if next, ok := step(sq, d); ok {
			out = append(out, next)
		}
	}
	return out
}

// attackSquares returns the squares the occupant of from attacks (or
// defends); empty if from is empty. Pawn forward pushes are not attacks and
// are excluded here.
func (p *Position) attackSquares(from Square) []Square {
	piece := p.PieceAt(from)
	switch piece.Type() {
	case Pawn:
		dir := pawnDir(piece.Color())
		return leaps(from, []delta{{-1, dir}, {1, dir}})
	case Knight:
		return leaps(from, knightSteps)
	case Bishop:
		return p.slide(from, diagonalDirs)
	case Rook:
		return p.slide(from, orthogonalDirs)
	case Queen:
		return p.slide(from, royalDirs)
	case King:
		return leaps(from, royalDirs)
	default:
		return nil
	}
}

// pawnPushSquares returns the legal forward pushes for the pawn on from:
// one square when empty, two from the pawn's start rank when both are
// empty.
func (p *Position) pawnPushSquares(from Square) []Square {
	piece := p.PieceAt(from)
	if piece.Type() != Pawn {
		return nil
	}
	dir := pawnDir(piece.Color())

	one, ok := step(from, delta{0, dir})
	if !ok || p.PieceAt(one) != NoPiece {
		return nil
	}
	out := []Square{one}

	if from.RelativeRank(piece.Color()) == 1 {
		if two, ok := step(one, delta{0, dir}); ok && p.PieceAt(two) == NoPiece {
			out = append(out, two)
		}
	}
	return out
}

// moveTargets returns every square the occupant of from may move to under
// piece geometry and occupancy: quiet destinations plus enemy-occupied
// attack destinations. En passant and castling are separate events and not
// included.
func (p *Position) moveTargets(from Square) []Square {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return nil
	}

	if piece.Type() == Pawn {
		out := p.pawnPushSquares(from)
		for _, sq := range p.attackSquares(from) {
			target := p.PieceAt(sq)
			if target != NoPiece && target.Color() == piece.Color().Other() {
				out = append(out, sq)
			}
		}
		return out
	}

	var out []Square
	for _, sq := range p.attackSquares(from) {
		if target := p.PieceAt(sq); target == NoPiece || target.Color() != piece.Color() {
			out = append(out, sq)
		}
	}
	return out
}

func containsSquare(squares []Square, sq Square) bool {
	for _, s := range squares {
		if s == sq {
			return true
		}
	}
	return false
}
