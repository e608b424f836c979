package board

import "fmt"

// Resolve validates an event against a position and completes its unknown
// fields (acting color, disambiguated origin, capture metadata). On success
// the returned event is fully specified, chess-legal, and safe to Apply.
// On failure the error belongs to the rule-failure taxonomy and carries a
// diagnostic reason.
//
// Each variant runs a fixed ordered pipeline of steps; the first failing
// step stops the pipeline. A step that narrows a partial origin to more
// than one candidate fails rather than guessing. Every pipeline ends with
// the same test: the tentatively resolved event is applied to a throwaway
// position, and the event is rejected if the mover's own king would be
// attacked afterwards. That single test covers self-check, pins, and
// castling through or into check uniformly.
func Resolve(pos *Position, ev Event) (Event, error) {
	switch e := ev.(type) {
	case MoveEvent:
		return resolveMove(pos, e)
	case EnPassantEvent:
		return resolveEnPassant(pos, e)
	case CastleEvent:
		return resolveCastle(pos, e)
	default:
		return nil, fmt.Errorf("%w: unknown event %T", ErrUnresolvedEvent, ev)
	}
}

// resolveColor completes an unknown acting color to the side to move and
// rejects an explicit color that is not on turn.
func resolveColor(pos *Position, c Color) (Color, error) {
	if c == NoColor {
		return pos.sideToMove, nil
	}
	if c != pos.sideToMove {
		return NoColor, ruleErr(ErrWrongColor, "it is %s's turn", pos.sideToMove)
	}
	return c, nil
}

// kingSafe applies a tentatively resolved event to a throwaway position and
// reports whether the mover's king survives unattacked.
func kingSafe(pos *Position, ev Event, mover Color) error {
	next, err := pos.Apply(ev)
	if err != nil {
		return err
	}
	if next.InCheck(mover) {
		return ruleErr(ErrIllegalMove, "%s leaves own king in check", ev)
	}
	return nil
}

type moveResolution struct {
	pos *Position
	ev  MoveEvent
}

var moveSteps = []func(*moveResolution) error{
	(*moveResolution).color,
	(*moveResolution).origin,
	(*moveResolution).capture,
	(*moveResolution).promotion,
	(*moveResolution).safety,
}

func resolveMove(pos *Position, ev MoveEvent) (Event, error) {
	r := &moveResolution{pos: pos, ev: ev}
	for _, step := range moveSteps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r.ev, nil
}

func (r *moveResolution) color() error {
	c, err := resolveColor(r.pos, r.ev.Color)
	if err != nil {
		return err
	}
	r.ev.Color = c
	return nil
}

// origin narrows the origin hint to the single square holding the acting
// side's piece that can reach the destination.
func (r *moveResolution) origin() error {
	e := &r.ev
	if e.Piece == NoPieceType || !e.To.IsValid() {
		return ruleErr(ErrIllegalMove, "underspecified move %s", e)
	}

	if from, ok := e.From.Square(); ok {
		occupant := r.pos.PieceAt(from)
		switch {
		case occupant == NoPiece:
			return ruleErr(ErrIllegalMove, "no piece on %v", from)
		case occupant.Color() != e.Color:
			return ruleErr(ErrWrongColor, "piece on %v belongs to %s", from, occupant.Color())
		case occupant.Type() != e.Piece:
			return ruleErr(ErrIllegalMove, "piece on %v is a %s, not a %s", from, occupant.Type(), e.Piece)
		case !containsSquare(r.pos.moveTargets(from), e.To):
			return ruleErr(ErrIllegalMove, "%s on %v cannot reach %v", e.Piece, from, e.To)
		}
		return nil
	}

	var candidates []Square
	for _, from := range r.pos.Squares(e.Color, e.Piece) {
		if !e.From.Matches(from) {
			continue
		}
		if containsSquare(r.pos.moveTargets(from), e.To) {
			candidates = append(candidates, from)
		}
	}

	// Several pieces reaching the destination is only ambiguous when more
	// than one of them could legally move there. A geometric candidate
	// whose departure would expose its own king is no candidate at all,
	// which keeps origin narrowing consistent with the legal move set that
	// minimal notation is written against.
	if len(candidates) > 1 {
		legal := r.safeOrigins(candidates)
		if len(legal) == 0 {
			return ruleErr(ErrIllegalMove, "every %s reaching %v exposes the king", e.Piece, e.To)
		}
		candidates = legal
	}

	switch len(candidates) {
	case 0:
		return ruleErr(ErrIllegalMove, "no %s %s can reach %v", e.Color, e.Piece, e.To)
	case 1:
		e.From = HintAt(candidates[0])
		return nil
	default:
		return ruleErr(ErrAmbiguousMove, "%d %ss can reach %v", len(candidates), e.Piece, e.To)
	}
}

// safeOrigins keeps the origins from which the move would leave the mover's
// king unattacked. Each trial event gets the board's actual capture and a
// stand-in promotion so it can be applied; the later pipeline steps still
// validate the event's own metadata.
func (r *moveResolution) safeOrigins(candidates []Square) []Square {
	var legal []Square
	for _, from := range candidates {
		trial := r.ev
		trial.From = HintAt(from)
		if target := r.pos.PieceAt(trial.To); target != NoPiece {
			trial.Capture = &Capture{Square: trial.To, Piece: target}
		} else {
			trial.Capture = nil
		}
		if trial.Piece == Pawn && trial.To.RelativeRank(trial.Color) == 7 && !trial.Promotion.IsPromotable() {
			trial.Promotion = Queen
		}
		if kingSafe(r.pos, trial, trial.Color) == nil {
			legal = append(legal, from)
		}
	}
	return legal
}

// capture attaches metadata when the destination holds an enemy piece and
// rejects declared captures that do not match the board.
func (r *moveResolution) capture() error {
	e := &r.ev
	target := r.pos.PieceAt(e.To)

	if target == NoPiece {
		if e.Capture != nil {
			return ruleErr(ErrBadCapture, "nothing to capture on %v", e.To)
		}
		return nil
	}

	// The origin step already excluded friendly-occupied destinations.
	if e.Capture == nil {
		e.Capture = &Capture{Square: e.To, Piece: target}
		return nil
	}
	if e.Capture.Square != e.To || e.Capture.Piece != target {
		return ruleErr(ErrBadCapture, "declared capture %v on %v, board has %v on %v",
			e.Capture.Piece, e.Capture.Square, target, e.To)
	}
	return nil
}

// promotion requires a promotable target exactly when a pawn reaches its
// far rank.
func (r *moveResolution) promotion() error {
	e := &r.ev
	promoting := e.Piece == Pawn && e.To.RelativeRank(e.Color) == 7

	if !promoting {
		if e.Promotion != NoPieceType {
			return ruleErr(ErrBadPromotion, "%s to %v is not a promotion", e.Piece, e.To)
		}
		return nil
	}
	if e.Promotion == NoPieceType {
		return ruleErr(ErrBadPromotion, "pawn reaching %v must declare a promotion", e.To)
	}
	if !e.Promotion.IsPromotable() {
		return ruleErr(ErrBadPromotion, "cannot promote to %s", e.Promotion)
	}
	return nil
}

func (r *moveResolution) safety() error {
	return kingSafe(r.pos, r.ev, r.ev.Color)
}

type enPassantResolution struct {
	pos *Position
	ev  EnPassantEvent
}

var enPassantSteps = []func(*enPassantResolution) error{
	(*enPassantResolution).available,
	(*enPassantResolution).color,
	(*enPassantResolution).destination,
	(*enPassantResolution).origin,
	(*enPassantResolution).capture,
	(*enPassantResolution).safety,
}

func resolveEnPassant(pos *Position, ev EnPassantEvent) (Event, error) {
	r := &enPassantResolution{pos: pos, ev: ev}
	for _, step := range enPassantSteps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r.ev, nil
}

func (r *enPassantResolution) available() error {
	if r.pos.enPassant == NoSquare {
		return ruleErr(ErrEnPassantUnavailable, "no en passant target")
	}
	return nil
}

func (r *enPassantResolution) color() error {
	c, err := resolveColor(r.pos, r.ev.Color)
	if err != nil {
		return err
	}
	r.ev.Color = c
	return nil
}

// destination pins the destination to the position's en passant target; any
// other destination is rejected even if geometrically plausible.
func (r *enPassantResolution) destination() error {
	target := r.pos.enPassant
	if r.ev.To == NoSquare {
		r.ev.To = target
		return nil
	}
	if r.ev.To != target {
		return ruleErr(ErrIllegalMove, "%v is not the en passant target %v", r.ev.To, target)
	}
	return nil
}

// origin intersects the two diagonal-back squares from the target with the
// squares actually holding the acting side's pawns, then filters by the
// supplied hint. Anything but exactly one candidate fails.
func (r *enPassantResolution) origin() error {
	e := &r.ev
	dir := pawnDir(e.Color)
	pawn := NewPiece(Pawn, e.Color)

	var candidates []Square
	for _, df := range []int{-1, 1} {
		from, ok := step(e.To, delta{df, -dir})
		if !ok {
			continue
		}
		if r.pos.PieceAt(from) != pawn {
			continue
		}
		if !e.From.Matches(from) {
			continue
		}
		candidates = append(candidates, from)
	}

	switch len(candidates) {
	case 0:
		return ruleErr(ErrIllegalMove, "no %s pawn can capture en passant on %v", e.Color, e.To)
	case 1:
		e.From = HintAt(candidates[0])
		return nil
	default:
		return ruleErr(ErrAmbiguousMove, "%d pawns can capture en passant on %v", len(candidates), e.To)
	}
}

// capture attaches the bypassed pawn, which sits behind the target square
// on the origin's rank.
func (r *enPassantResolution) capture() error {
	e := &r.ev
	from, _ := e.From.Square()
	capSq := NewSquare(e.To.File(), from.Rank())

	victim := r.pos.PieceAt(capSq)
	if victim != NewPiece(Pawn, e.Color.Other()) {
		return ruleErr(ErrEnPassantUnavailable, "no %s pawn on %v", e.Color.Other(), capSq)
	}
	e.Capture = &Capture{Square: capSq, Piece: victim}
	return nil
}

func (r *enPassantResolution) safety() error {
	return kingSafe(r.pos, r.ev, r.ev.Color)
}

type castleResolution struct {
	pos *Position
	ev  CastleEvent
}

var castleSteps = []func(*castleResolution) error{
	(*castleResolution).color,
	(*castleResolution).right,
	(*castleResolution).clearPath,
	(*castleResolution).safeTransit,
	(*castleResolution).safety,
}

func resolveCastle(pos *Position, ev CastleEvent) (Event, error) {
	r := &castleResolution{pos: pos, ev: ev}
	for _, step := range castleSteps {
		if err := step(r); err != nil {
			return nil, err
		}
	}
	return r.ev, nil
}

func (r *castleResolution) color() error {
	c, err := resolveColor(r.pos, r.ev.Color)
	if err != nil {
		return err
	}
	r.ev.Color = c
	return nil
}

func (r *castleResolution) right() error {
	e := r.ev
	if !r.pos.castling.CanCastle(e.Color, e.Side) {
		return ruleErr(ErrCastlingUnavailable, "%s has no %s right", e.Color, e.Side)
	}

	kingFrom, _, rookFrom, _ := castleSquares(e.Color, e.Side)
	if r.pos.PieceAt(kingFrom) != NewPiece(King, e.Color) {
		return ruleErr(ErrCastlingUnavailable, "%s king is not on %v", e.Color, kingFrom)
	}
	if r.pos.PieceAt(rookFrom) != NewPiece(Rook, e.Color) {
		return ruleErr(ErrCastlingUnavailable, "%s rook is not on %v", e.Color, rookFrom)
	}
	return nil
}

// clearPath requires every square between king and rook to be empty.
func (r *castleResolution) clearPath() error {
	kingFrom, _, rookFrom, _ := castleSquares(r.ev.Color, r.ev.Side)

	lo, hi := kingFrom, rookFrom
	if rookFrom < kingFrom {
		lo, hi = rookFrom, kingFrom
	}
	for sq := lo + 1; sq < hi; sq++ {
		if r.pos.PieceAt(sq) != NoPiece {
			return ruleErr(ErrCastlingUnavailable, "path blocked on %v", sq)
		}
	}
	return nil
}

// safeTransit requires every square on the king's path, its own square
// included, to be unattacked. That subsumes "currently in check".
func (r *castleResolution) safeTransit() error {
	e := r.ev
	kingFrom, kingTo, _, _ := castleSquares(e.Color, e.Side)

	stepDir := 1
	if kingTo < kingFrom {
		stepDir = -1
	}
	for sq := kingFrom; ; sq = Square(int(sq) + stepDir) {
		if r.pos.AttackedBy(sq, e.Color.Other()) {
			return ruleErr(ErrCastlingUnavailable, "king transit square %v is attacked", sq)
		}
		if sq == kingTo {
			break
		}
	}
	return nil
}

func (r *castleResolution) safety() error {
	return kingSafe(r.pos, r.ev, r.ev.Color)
}
