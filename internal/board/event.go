package board

import (
	"fmt"
	"strings"
)

// CastleSide selects the king-side or queen-side castle.
type CastleSide uint8

const (
	KingSide CastleSide = iota
	QueenSide
)

// String returns the conventional notation for the side.
func (s CastleSide) String() string {
	if s == QueenSide {
		return "O-O-O"
	}
	return "O-O"
}

// Capture records what a capturing event takes off the board. It is only
// ever attached by resolution or move generation, never by a parser.
type Capture struct {
	Square Square
	Piece  Piece
}

// Event is a single turn's action. The set of variants is closed:
// MoveEvent, EnPassantEvent, and CastleEvent. An event starts out partially
// specified (unknown color, partial origin) and is completed by resolution
// against a position; only a resolved event may be applied.
//
// Assertions carried on an event are free-text notation annotations (check
// markers and the like). They never influence legality.
type Event interface {
	// EventColor returns the acting color, or NoColor if not yet resolved.
	EventColor() Color
	// String renders the event in long algebraic form for logs and records.
	String() string

	sealedEvent()
}

// MoveEvent is an ordinary piece move, including captures and promotions.
type MoveEvent struct {
	Color      Color
	Piece      PieceType
	From       SquareHint
	To         Square
	Capture    *Capture  // set by resolution iff the destination is enemy-occupied
	Promotion  PieceType // NoPieceType when the move is not a promotion
	Assertions []string
}

// NewMove returns a minimally specified move of a piece type to a square:
// unknown color, unconstrained origin, no promotion.
func NewMove(pt PieceType, to Square) MoveEvent {
	return MoveEvent{
		Color:     NoColor,
		Piece:     pt,
		From:      AnySquare,
		To:        to,
		Promotion: NoPieceType,
	}
}

func (e MoveEvent) EventColor() Color { return e.Color }
func (e MoveEvent) sealedEvent()      {}

func (e MoveEvent) String() string {
	var sb strings.Builder
	if e.Piece != Pawn && e.Piece != NoPieceType {
		sb.WriteString(NewPiece(e.Piece, White).String())
	}
	sb.WriteString(e.From.String())
	if e.Capture != nil {
		sb.WriteByte('x')
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(e.To.String())
	if e.Promotion != NoPieceType {
		sb.WriteByte('=')
		sb.WriteString(NewPiece(e.Promotion, White).String())
	}
	return sb.String()
}

// isResolved reports whether every field an application needs is known.
func (e MoveEvent) isResolved() bool {
	return e.Color != NoColor && e.From.IsComplete() && e.To.IsValid()
}

// EnPassantEvent is an en-passant capture. To is the en-passant target
// square, NoSquare until resolved.
type EnPassantEvent struct {
	Color      Color
	From       SquareHint
	To         Square
	Capture    *Capture // the bypassed pawn, set by resolution
	Assertions []string
}

// NewEnPassant returns a minimally specified en-passant capture: unknown
// color, unconstrained origin, destination left to the position's target.
func NewEnPassant() EnPassantEvent {
	return EnPassantEvent{Color: NoColor, From: AnySquare, To: NoSquare}
}

func (e EnPassantEvent) EventColor() Color { return e.Color }
func (e EnPassantEvent) sealedEvent()      {}

func (e EnPassantEvent) String() string {
	return fmt.Sprintf("%sx%s e.p.", e.From, e.To)
}

func (e EnPassantEvent) isResolved() bool {
	return e.Color != NoColor && e.From.IsComplete() && e.To.IsValid()
}

// CastleEvent castles the acting color's king to the given side.
type CastleEvent struct {
	Color      Color
	Side       CastleSide
	Assertions []string
}

// NewCastle returns a castle event for the side to move.
func NewCastle(side CastleSide) CastleEvent {
	return CastleEvent{Color: NoColor, Side: side}
}

func (e CastleEvent) EventColor() Color { return e.Color }
func (e CastleEvent) sealedEvent()      {}

func (e CastleEvent) String() string {
	return e.Side.String()
}

func (e CastleEvent) isResolved() bool {
	return e.Color != NoColor
}
