// Package session orchestrates a single game: it accepts moves as
// algebraic notation text, runs them through the rules core, tracks the
// game's outcome, and notifies listeners. It owns the boundary between
// rule failures, which are reported to the caller, and internal errors,
// whose detail is logged but never exposed.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nadi726/chesscore/internal/board"
	"github.com/nadi726/chesscore/internal/notation"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNoDraw       = errors.New("no draw claim available")
	ErrInternal     = errors.New("internal error")
	ErrInvalidInput = errors.New("invalid move text")
)

// Outcome is the final result of a finished game.
type Outcome int

const (
	OutcomeNone Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Reason explains how a game ended.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCheckmate
	ReasonStalemate
	ReasonInsufficientMaterial
	ReasonFivefoldRepetition
	ReasonFiftyMoveClaim
	ReasonThreefoldClaim
	ReasonResignation
)

func (r Reason) String() string {
	switch r {
	case ReasonCheckmate:
		return "checkmate"
	case ReasonStalemate:
		return "stalemate"
	case ReasonInsufficientMaterial:
		return "insufficient material"
	case ReasonFivefoldRepetition:
		return "fivefold repetition"
	case ReasonFiftyMoveClaim:
		return "fifty-move rule"
	case ReasonThreefoldClaim:
		return "threefold repetition"
	case ReasonResignation:
		return "resignation"
	default:
		return "none"
	}
}

// Listener receives game progress notifications.
type Listener interface {
	MovePlayed(san string, pos *board.Position)
	GameEnded(outcome Outcome, reason Reason)
}

// Session runs one game from a starting position to its end.
type Session struct {
	id        string
	startFEN  string
	game      *board.Game
	moves     []string
	outcome   Outcome
	reason    Reason
	listeners []Listener
	logger    *zap.Logger
}

// New starts a session from the standard starting position.
func New(logger *zap.Logger) *Session {
	s, err := NewFromFEN(logger, board.StartFEN)
	if err != nil {
		panic(err)
	}
	return s
}

// NewFromFEN starts a session from an arbitrary position.
func NewFromFEN(logger *zap.Logger, fen string) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	id := uuid.NewString()
	return &Session{
		id:       id,
		startFEN: fen,
		game:     board.GameFrom(pos),
		logger:   logger.With(zap.String("session", id)),
	}, nil
}

// Resume rebuilds a session by replaying recorded moves.
func Resume(logger *zap.Logger, fen string, moves []string) (*Session, error) {
	s, err := NewFromFEN(logger, fen)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		if _, err := s.Play(m); err != nil {
			return nil, fmt.Errorf("replaying %q: %w", m, err)
		}
	}
	return s, nil
}

func (s *Session) ID() string                 { return s.id }
func (s *Session) StartFEN() string           { return s.startFEN }
func (s *Session) Position() *board.Position  { return s.game.Position() }
func (s *Session) Moves() []string            { return append([]string(nil), s.moves...) }
func (s *Session) Outcome() (Outcome, Reason) { return s.outcome, s.reason }
func (s *Session) Over() bool                 { return s.outcome != OutcomeNone }

// Subscribe registers a listener for move and game-end notifications.
func (s *Session) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Play accepts one move as algebraic notation, validates it against the
// current position, and advances the game. It returns the canonical
// notation of the move as played. En passant need not be marked in the
// input: a pawn capture onto the en passant target is retried as an en
// passant capture before being rejected.
func (s *Session) Play(text string) (string, error) {
	if s.Over() {
		return "", ErrGameOver
	}

	ev, err := notation.Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resolved, err := board.Resolve(s.game.Position(), ev)
	if err != nil {
		if retry, ok := s.enPassantFallback(ev); ok {
			resolved, err = board.Resolve(s.game.Position(), retry)
		}
		if err != nil {
			s.logger.Debug("move rejected", zap.String("input", text), zap.Error(err))
			return "", err
		}
	}

	san, err := notation.Format(s.game.Position(), resolved)
	if err != nil {
		return "", s.internal("formatting move", err)
	}

	next, _, err := s.game.Play(resolved)
	if err != nil {
		return "", s.internal("advancing game", err)
	}

	s.game = next
	s.moves = append(s.moves, san)
	s.logger.Info("move played",
		zap.String("san", san),
		zap.String("fen", s.game.Position().ToFEN()))
	for _, l := range s.listeners {
		l.MovePlayed(san, s.game.Position())
	}

	s.checkAutomaticEnd(resolved.EventColor())
	return san, nil
}

// enPassantFallback converts a failed pawn capture into an en passant
// attempt when the destination is the current en passant target.
func (s *Session) enPassantFallback(ev board.Event) (board.Event, bool) {
	me, ok := ev.(board.MoveEvent)
	if !ok || me.Piece != board.Pawn {
		return nil, false
	}
	if me.To != s.game.Position().EnPassant() {
		return nil, false
	}
	ep := board.NewEnPassant()
	ep.Color = me.Color
	ep.To = me.To
	ep.From = me.From
	ep.Assertions = me.Assertions
	return ep, true
}

// checkAutomaticEnd ends the game for terminal conditions that require no
// claim: checkmate, stalemate, insufficient material, and fivefold
// repetition.
func (s *Session) checkAutomaticEnd(mover board.Color) {
	pos := s.game.Position()
	switch {
	case pos.IsCheckmate():
		if mover == board.White {
			s.end(WhiteWins, ReasonCheckmate)
		} else {
			s.end(BlackWins, ReasonCheckmate)
		}
	case pos.IsStalemate():
		s.end(Draw, ReasonStalemate)
	case pos.InsufficientMaterial():
		s.end(Draw, ReasonInsufficientMaterial)
	case s.game.FivefoldRepetition():
		s.end(Draw, ReasonFivefoldRepetition)
	}
}

// CanClaimDraw reports whether the side to move may claim a draw, and on
// what ground. Fifty-move claims take precedence over threefold claims.
func (s *Session) CanClaimDraw() (Reason, bool) {
	if s.Over() {
		return ReasonNone, false
	}
	if s.game.Position().FiftyMoveRule() {
		return ReasonFiftyMoveClaim, true
	}
	if s.game.ThreefoldRepetition() {
		return ReasonThreefoldClaim, true
	}
	return ReasonNone, false
}

// ClaimDraw ends the game as a draw if a claim is available.
func (s *Session) ClaimDraw() error {
	reason, ok := s.CanClaimDraw()
	if !ok {
		if s.Over() {
			return ErrGameOver
		}
		return ErrNoDraw
	}
	s.end(Draw, reason)
	return nil
}

// Resign ends the game in favor of the resigning player's opponent.
func (s *Session) Resign(c board.Color) error {
	if s.Over() {
		return ErrGameOver
	}
	if c == board.White {
		s.end(BlackWins, ReasonResignation)
	} else {
		s.end(WhiteWins, ReasonResignation)
	}
	return nil
}

func (s *Session) end(outcome Outcome, reason Reason) {
	s.outcome = outcome
	s.reason = reason
	s.logger.Info("game ended",
		zap.Stringer("outcome", outcome),
		zap.Stringer("reason", reason))
	for _, l := range s.listeners {
		l.GameEnded(outcome, reason)
	}
}

// internal logs the detail of an unexpected failure and returns an opaque
// error to the caller.
func (s *Session) internal(context string, err error) error {
	s.logger.Error("internal failure", zap.String("context", context), zap.Error(err))
	return ErrInternal
}
