package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"highlow-server/pkg/playable"
	"highlow-server/pkg/room"

	"github.com/redis/go-redis/v9"
)

// Key prefix for all event bus data
const keyPrefix = "highlow"

// historyKey returns the Redis key for the recent events of a room
func historyKey(room string) string {
	return fmt.Sprintf("%s:history:%s", keyPrefix, room)
}

// Envelope is the message published for every event
type Envelope struct {
	Room  string             `json:"room"`
	Event *playable.Response `json:"event"`
	Time  time.Time          `json:"time"`
}

// Publisher mirrors room events to a Redis channel
type Publisher struct {
	client *redis.Client
	cfg    Config
}

// New creates a new publisher and verifies the connection
func New(cfg Config) (*Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Publisher{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a publisher with an existing client
func NewWithClient(client *redis.Client, cfg Config) *Publisher {
	return &Publisher{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Ensure Publisher implements the interface
var _ room.Publisher = (*Publisher)(nil)

// Publish sends the event to the channel and records it in the room's history
func (p *Publisher) Publish(ctx context.Context, room string, event *playable.Response) error {
	data, err := json.Marshal(Envelope{
		Room:  room,
		Event: event,
		Time:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.cfg.Channel, data)
	if p.cfg.HistorySize > 0 {
		key := historyKey(room)
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, p.cfg.HistorySize-1)
		if p.cfg.HistoryTTL > 0 {
			pipe.Expire(ctx, key, p.cfg.HistoryTTL)
		}
	}

	_, err = pipe.Exec(ctx)
	return err
}

// History returns the recent events of a room, newest first
func (p *Publisher) History(ctx context.Context, room string) ([]*Envelope, error) {
	values, err := p.client.LRange(ctx, historyKey(room), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	envelopes := make([]*Envelope, 0, len(values))
	for _, value := range values {
		var env Envelope
		if err := json.Unmarshal([]byte(value), &env); err != nil {
			return nil, err
		}

		envelopes = append(envelopes, &env)
	}

	return envelopes, nil
}
