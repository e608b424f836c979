package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// rightFor returns the bit for one side of one color.
func rightFor(c Color, side CastleSide) CastlingRights {
	if c == White {
		if side == KingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if side == KingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// CanCastle returns true if the given color still holds the right for the
// given side.
func (cr CastlingRights) CanCastle(c Color, side CastleSide) bool {
	return cr&rightFor(c, side) != 0
}

// without returns the rights with the given color/side revoked.
func (cr CastlingRights) without(c Color, side CastleSide) CastlingRights {
	return cr &^ rightFor(c, side)
}

// Position is an immutable snapshot of a game: the board plus the side to
// move, en-passant target, castling rights, and the two move clocks.
// Methods never mutate a Position; state transitions return a new one.
type Position struct {
	grid           Grid
	sideToMove     Color
	castling       CastlingRights
	enPassant      Square // target square for en passant, NoSquare if none
	halfMoveClock  int    // plies since last pawn move or capture
	fullMoveNumber int    // starts at 1, increments after Black moves
}

// StartPosition returns the standard initial position.
func StartPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err) // the start FEN is a constant
	}
	return pos
}

// PieceAt returns the piece on sq, or NoPiece.
func (p *Position) PieceAt(sq Square) Piece {
	return p.grid.PieceAt(sq)
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.grid.PieceAt(sq) == NoPiece
}

// SideToMove returns the color whose turn it is.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// Castling returns the current castling rights.
func (p *Position) Castling() CastlingRights {
	return p.castling
}

// EnPassant returns the en-passant target square, or NoSquare.
func (p *Position) EnPassant() Square {
	return p.enPassant
}

// HalfMoveClock returns the number of plies since the last pawn move or
// capture.
func (p *Position) HalfMoveClock() int {
	return p.halfMoveClock
}

// FullMoveNumber returns the full move counter.
func (p *Position) FullMoveNumber() int {
	return p.fullMoveNumber
}

// Squares returns every square matching the color/type filters.
func (p *Position) Squares(c Color, pt PieceType) []Square {
	return p.grid.Squares(c, pt)
}

// KingSquare returns the square of the given color's king, or NoSquare if
// the king is absent (only possible on hand-built positions).
func (p *Position) KingSquare(c Color) Square {
	kings := p.grid.Squares(c, King)
	if len(kings) == 0 {
		return NoSquare
	}
	return kings[0]
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.sideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.castling)
	s += fmt.Sprintf("En passant: %s\n", p.enPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.halfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.fullMoveNumber)
	return s
}
