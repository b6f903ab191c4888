package core

import (
	"errors"
	"fmt"
)

// All four categories are local and recoverable: the offending intent is
// rejected, room state is untouched, and only the sender is notified.
var (
	ErrRoomNotFound  = errors.New("room not found")
	ErrInvalidPhase  = errors.New("action not allowed in current phase")
	ErrUnauthorized  = errors.New("not allowed for this player")
	ErrRuleViolation = errors.New("game rule violation")
)

// ErrSelfHealUsed marks a second self-heal attempt; the nurse gets exactly one
// for the whole game.
var ErrSelfHealUsed = fmt.Errorf("%w: self-heal already used", ErrRuleViolation)
