package klondike

import (
	"errors"
	"fmt"
)

// Rejection reasons returned (wrapped in a *MoveError) by MakeMove.
var (
	ErrInvalidSource       = errors.New("invalid source pile")
	ErrInvalidDestination  = errors.New("invalid destination pile")
	ErrEmptyHand           = errors.New("no cards in hand")
	ErrHandDepth           = errors.New("cannot take more than one card from hand")
	ErrZeroDepth           = errors.New("must take at least one card")
	ErrDepthExceedsPile    = errors.New("trying to take non-existent card")
	ErrSamePile            = errors.New("source and destination are the same pile")
	ErrFaceDownCard        = errors.New("cannot move a face-down card")
	ErrFoundationDepth     = errors.New("cannot move more than one card to a foundation")
	ErrFoundationSuit      = errors.New("suits must match on the foundation")
	ErrFoundationRank      = errors.New("ranks must ascend by one on the foundation")
	ErrNonKingToEmptyPile  = errors.New("non-king to empty pile")
	ErrColourMustAlternate = errors.New("suit colours must alternate on piles")
	ErrRankMustDescend     = errors.New("ranks must descend by one on piles")
)

// MoveError describes a rejected move. Err is one of the Err* reasons above.
type MoveError struct {
	Move Move
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %v", e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// Reason returns the human readable rejection reason without the move
// prefix.
func (e *MoveError) Reason() string {
	return e.Err.Error()
}
