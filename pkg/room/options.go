package room

import (
	"context"
	"errors"

	"highlow-server/pkg/highlow"
	"highlow-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

// ErrUnknownAction is returned when a client sends an action the dealer does not handle
var ErrUnknownAction = errors.New("unknown action")

// ErrNotJoined is returned when a client acts for a player before joining
var ErrNotJoined = errors.New("you have not joined the game")

// ErrAlreadyJoined is returned when a client that has joined tries to join again
var ErrAlreadyJoined = errors.New("you have already joined the game")

// ErrInvalidToken is returned when a rejoin does not match a seat
var ErrInvalidToken = errors.New("invalid username or token")

// ErrDealerClosed is returned when the dealer's shift has ended
var ErrDealerClosed = errors.New("dealer is closed")

// Publisher receives a copy of every broadcast event
type Publisher interface {
	Publish(ctx context.Context, room string, event *playable.Response) error
}

// Options configure the dealers a PitBoss creates
type Options struct {
	// Game is passed to every new game
	// The generator is shared between rooms and must be safe for concurrent use
	Game highlow.Options

	// DefaultRounds is used when a rounds command does not say how many
	DefaultRounds int

	// Publisher is optional
	Publisher Publisher

	Logger logrus.FieldLogger
}

// DefaultOptions returns the default dealer options
func DefaultOptions() Options {
	return Options{
		Game:          highlow.DefaultOptions(),
		DefaultRounds: 5,
		Logger:        logrus.StandardLogger(),
	}
}
