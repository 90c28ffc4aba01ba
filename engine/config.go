package engine

import (
	"github.com/samber/oops"
	"go.uber.org/zap"
)

// BareHandDamage is the damage of an unarmed attack.
const BareHandDamage = 1

// Config controls a game session.
type Config struct {
	MaxTurns   int   // game ends in an escape once this many turns are played
	Seed       int64 // seeds the default randomness source
	// PetWanders makes the pet take one depth-first step after every accepted
	// action except MovePet, so a room the pet was moved to stays hidden only
	// until the next turn is played.
	PetWanders bool
	Logger     *zap.Logger
	Source     Source // nil: NewRNG(Seed)
}

// DefaultConfig returns the settings used by the command-line front ends.
func DefaultConfig() Config {
	return Config{
		MaxTurns:   50,
		PetWanders: true,
	}
}

// Validate checks the configuration before a game starts.
func (c Config) Validate() error {
	if c.MaxTurns < 1 {
		return oops.In("engine").With("max_turns", c.MaxTurns).
			Errorf("max turns must be at least 1, got %d", c.MaxTurns)
	}
	return nil
}
