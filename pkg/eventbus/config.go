package eventbus

import "time"

// Config holds Redis connection and publishing settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Channel is the pub/sub channel every event is published to
	Channel string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// HistorySize is how many recent events are kept per room, zero disables history
	HistorySize int64
	// HistoryTTL expires the history of rooms that stop publishing
	HistoryTTL time.Duration
}

// DefaultConfig returns the defaults for the event bus
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		Channel:      "highlow:events",
		PoolSize:     10,
		MinIdleConns: 2,
		HistorySize:  50,
		HistoryTTL:   24 * time.Hour,
	}
}
