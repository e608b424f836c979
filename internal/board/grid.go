package board

import "fmt"

// gridRank is one rank of eight cells. Ranks are the unit of sharing: a
// mutation copies the one rank it touches and the root's rank-pointer
// array, leaving the other seven ranks shared with the prior Grid.
type gridRank struct {
	cells [8]Piece
}

var emptyRank = func() *gridRank {
	r := &gridRank{}
	for i := range r.cells {
		r.cells[i] = NoPiece
	}
	return r
}()

// Grid is a persistent mapping from the 64 squares to occupying pieces.
// The zero value is an empty board. Mutators never modify the receiver;
// they return a new Grid that shares every untouched rank with it, so old
// versions stay valid and cheap to keep. This is what lets legality checks
// simulate a move on a throwaway copy without disturbing the game line.
type Grid struct {
	ranks [8]*gridRank
}

// NewGrid returns an empty grid.
func NewGrid() Grid {
	return Grid{}
}

// PieceAt returns the piece on sq, or NoPiece if the square is empty or
// out of range.
func (g Grid) PieceAt(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	r := g.ranks[sq.Rank()]
	if r == nil {
		return NoPiece
	}
	return r.cells[sq.File()]
}

// withCell returns a copy of g with sq set to p, copying only the affected
// rank.
func (g Grid) withCell(sq Square, p Piece) Grid {
	rank := sq.Rank()
	var node gridRank
	if g.ranks[rank] != nil {
		node = *g.ranks[rank]
	} else {
		node = *emptyRank
	}
	node.cells[sq.File()] = p
	out := g
	out.ranks[rank] = &node
	return out
}

// Put places a piece on an empty square and returns the new grid.
// Placing onto an occupied square or an invalid square is an invariant
// violation.
func (g Grid) Put(p Piece, sq Square) (Grid, error) {
	if !sq.IsValid() {
		return Grid{}, fmt.Errorf("%w: put %v on %d", ErrSquareOutOfRange, p, sq)
	}
	if p >= NoPiece {
		return Grid{}, fmt.Errorf("%w: put %d on %v", ErrInvalidPiece, p, sq)
	}
	if g.PieceAt(sq) != NoPiece {
		return Grid{}, fmt.Errorf("%w: put %v on %v", ErrSquareOccupied, p, sq)
	}
	return g.withCell(sq, p), nil
}

// Remove takes the piece off an occupied square, returning the new grid and
// the removed piece. Removing from an empty or invalid square is an
// invariant violation.
func (g Grid) Remove(sq Square) (Grid, Piece, error) {
	if !sq.IsValid() {
		return Grid{}, NoPiece, fmt.Errorf("%w: remove from %d", ErrSquareOutOfRange, sq)
	}
	p := g.PieceAt(sq)
	if p == NoPiece {
		return Grid{}, NoPiece, fmt.Errorf("%w: remove from %v", ErrSquareEmpty, sq)
	}
	return g.withCell(sq, NoPiece), p, nil
}

// Move relocates the piece on from to the empty square to and returns the
// new grid. Moving from an empty square, onto an occupied square, or onto
// the origin itself is an invariant violation; captures must be expressed
// as an explicit Remove before the Move.
func (g Grid) Move(from, to Square) (Grid, error) {
	if !from.IsValid() || !to.IsValid() {
		return Grid{}, fmt.Errorf("%w: move %d to %d", ErrSquareOutOfRange, from, to)
	}
	if from == to {
		return Grid{}, fmt.Errorf("%w: move %v onto itself", ErrSameSquare, from)
	}
	p := g.PieceAt(from)
	if p == NoPiece {
		return Grid{}, fmt.Errorf("%w: move from %v", ErrSquareEmpty, from)
	}
	if g.PieceAt(to) != NoPiece {
		return Grid{}, fmt.Errorf("%w: move %v to %v", ErrSquareOccupied, from, to)
	}
	return g.withCell(from, NoPiece).withCell(to, p), nil
}

// Squares returns every square whose occupant matches the given color and
// type filters, in a single pass. NoColor and NoPieceType match everything.
func (g Grid) Squares(c Color, pt PieceType) []Square {
	var out []Square
	for rank := 0; rank < 8; rank++ {
		node := g.ranks[rank]
		if node == nil {
			continue
		}
		for file := 0; file < 8; file++ {
			p := node.cells[file]
			if p == NoPiece {
				continue
			}
			if c != NoColor && p.Color() != c {
				continue
			}
			if pt != NoPieceType && p.Type() != pt {
				continue
			}
			out = append(out, NewSquare(file, rank))
		}
	}
	return out
}

// Count returns the number of occupied squares matching the filters.
func (g Grid) Count(c Color, pt PieceType) int {
	return len(g.Squares(c, pt))
}
