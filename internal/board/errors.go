package board

import (
	"errors"
	"fmt"
)

// Rule failures are expected outcomes of resolving an event against a
// position. They are returned as values and matched with errors.Is; callers
// treat them as normal control flow.
var (
	ErrIllegalMove          = errors.New("illegal move")
	ErrAmbiguousMove        = errors.New("ambiguous move")
	ErrWrongColor           = errors.New("wrong color")
	ErrBadCapture           = errors.New("inconsistent capture")
	ErrBadPromotion         = errors.New("invalid promotion")
	ErrCastlingUnavailable  = errors.New("castling unavailable")
	ErrEnPassantUnavailable = errors.New("en passant unavailable")
)

// Invariant violations indicate a defect in the calling code, never bad
// user input. They form a disjoint taxonomy from rule failures: the state
// advance step folds any of them into ErrInternal, and orchestrators must
// not surface their detail to users.
var (
	ErrInternal         = errors.New("internal error")
	ErrSquareOutOfRange = errors.New("square out of range")
	ErrSquareOccupied   = errors.New("square occupied")
	ErrSquareEmpty      = errors.New("square empty")
	ErrSameSquare       = errors.New("same square")
	ErrInvalidPiece     = errors.New("invalid piece")
	ErrUnresolvedEvent  = errors.New("unresolved event")
)

// invariantViolations is the closed set of defect-category sentinels.
var invariantViolations = []error{
	ErrSquareOutOfRange,
	ErrSquareOccupied,
	ErrSquareEmpty,
	ErrSameSquare,
	ErrInvalidPiece,
	ErrUnresolvedEvent,
}

// IsInvariantViolation reports whether err belongs to the defect taxonomy
// rather than the rule-failure taxonomy.
func IsInvariantViolation(err error) bool {
	for _, sentinel := range invariantViolations {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// ruleErr builds a rule failure with a diagnostic reason, categorized under
// one of the rule-failure sentinels.
func ruleErr(category error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", category, fmt.Sprintf(format, args...))
}
