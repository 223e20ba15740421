package highlow

import "highlow-server/internal/rng"

// Options are options for creating a new game
type Options struct {
	// Generator shuffles the deck; defaults to crypto/rand
	Generator rng.Generator
	// MinPlayers is the number of players needed to start; defaults to 2
	MinPlayers int
}

// DefaultOptions returns the default options for a game
func DefaultOptions() Options {
	return Options{
		Generator:  rng.Crypto{},
		MinPlayers: 2,
	}
}
