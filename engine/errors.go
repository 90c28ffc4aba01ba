package engine

import (
	"errors"

	"github.com/nathoo/manorhunt/engine/world"
)

// Rule violations. Rejected intents never consume a turn; match with errors.Is.
var (
	ErrInvalidAdjacency = world.ErrInvalidAdjacency
	ErrOutOfBounds      = world.ErrOutOfBounds
	ErrInventoryFull    = world.ErrInventoryFull
	ErrDuplicatePlayer  = world.ErrDuplicatePlayer
	ErrNotYourTurn      = errors.New("not your turn")
	ErrGameOver         = errors.New("game already over")
	ErrNotWithTarget    = errors.New("target is not in the room")
	ErrNoPlayers        = errors.New("no players")
	ErrNotComputer      = errors.New("current player is not computer-controlled")
	ErrUnknownIntent    = errors.New("unknown intent")
)

// Retryable reports whether the caller should re-prompt the same player.
func Retryable(err error) bool {
	return errors.Is(err, ErrInvalidAdjacency) ||
		errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrNotYourTurn) ||
		errors.Is(err, ErrInventoryFull) ||
		errors.Is(err, ErrNotWithTarget) ||
		errors.Is(err, ErrUnknownIntent)
}
