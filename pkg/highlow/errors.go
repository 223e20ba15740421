package highlow

import "errors"

// ErrUsernameTaken is returned when a username is already registered
var ErrUsernameTaken = errors.New("username is taken")

// ErrEmptyUsername is returned when joining without a username
var ErrEmptyUsername = errors.New("username cannot be empty")

// ErrGameAlreadyStarted is returned when joining a game that has started
var ErrGameAlreadyStarted = errors.New("game has already started")

// ErrGameNotStarted is returned when dealing before the game has started
var ErrGameNotStarted = errors.New("game has not started")

// ErrUnknownPlayer is returned when the username is not registered
var ErrUnknownPlayer = errors.New("player not found")

// ErrInvalidBetAmount is returned for negative or non-integer bets
var ErrInvalidBetAmount = errors.New("bet amount must be a non-negative integer")

// ErrInvalidDirection is returned when a bet is neither high nor low
var ErrInvalidDirection = errors.New("bet direction must be high or low")

// ErrInvalidRounds is returned when the number of rounds is negative
var ErrInvalidRounds = errors.New("number of rounds cannot be negative")

// ErrNoRoundsLeft is returned when dealing after the last round was settled
var ErrNoRoundsLeft = errors.New("no rounds left")

// ErrNoHand is returned when betting before the player has been dealt a hand
var ErrNoHand = errors.New("no hand has been dealt")

// ErrSettlementNotReady is returned when settling before every player has bet
var ErrSettlementNotReady = errors.New("not all bets are in")

// ErrNotEnoughPlayers is returned when starting with fewer than two players
var ErrNotEnoughPlayers = errors.New("need at least two players")
