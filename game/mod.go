package game

import "errors"

const (
	MinRound = 1
	MaxRound = 10
)

var (
	// ErrLogic marks a broken invariant of the card hierarchy or of the round
	// bookkeeping. It is never recovered.
	ErrLogic = errors.New("logic error")
	// ErrPrecondition marks a call made on a state it does not accept.
	ErrPrecondition = errors.New("precondition failed")
	// ErrIllegalMove marks a bid or a card the rules do not allow.
	ErrIllegalMove = errors.New("illegal move")
)
