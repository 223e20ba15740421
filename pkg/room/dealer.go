package room

import (
	"context"
	"sync"
	"time"

	"highlow-server/pkg/highlow"
	"highlow-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const publishTimeout = time.Second * 2

// Snapshot is the public state of a room
type Snapshot struct {
	Room             string                 `json:"room"`
	Game             highlow.State          `json:"game"`
	ConnectedClients int                    `json:"connectedClients"`
	Log              []*playable.LogMessage `json:"log"`
}

// Dealer is responsible for controlling the game in a room
// Every game mutation happens on the dealer's run loop, one command at a time
type Dealer struct {
	pitBoss *PitBoss
	name    string
	clients map[*Client]bool
	lock    sync.RWMutex
	game    *highlow.Game
	options Options
	log     logrus.FieldLogger

	logMessages []*playable.LogMessage

	// seats maps a username to the token that resumes it
	seats map[string]string

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, name string, opts Options) *Dealer {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Dealer{
		pitBoss:       pitBoss,
		name:          name,
		clients:       make(map[*Client]bool),
		game:          highlow.NewGame(opts.Game),
		options:       opts,
		log:           opts.Logger.WithField("room", name),
		logMessages:   make([]*playable.LogMessage, 0),
		seats:         make(map[string]string),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Name returns the name of the room
func (d *Dealer) Name() string {
	return d.name
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop
// It returns false if the dealer has ended its shift
func (d *Dealer) exec(fn func()) bool {
	select {
	case <-d.close:
		return false
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// AddClient adds a client and sends it the current state
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		client.Send(playable.NewEvent("gameState", d.snapshot()))
	})
}

// RemoveClient removes a client
// The client's player stays in the game until they leave or the game ends
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
		for _, client := range d.Clients() {
			client.Disconnect(CloseReasonRoomClosed)
		}
	})
}

// Snapshot returns the public state of the room
func (d *Dealer) Snapshot(ctx context.Context) (*Snapshot, error) {
	ch := make(chan *Snapshot, 1)
	if !d.exec(func() { ch <- d.snapshot() }) {
		return nil, ErrDealerClosed
	}

	select {
	case s := <-ch:
		return s, nil
	case <-d.close:
		return nil, ErrDealerClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) snapshot() *Snapshot {
	logMessages := make([]*playable.LogMessage, len(d.logMessages))
	copy(logMessages, d.logMessages)

	d.lock.RLock()
	nClients := len(d.clients)
	d.lock.RUnlock()

	return &Snapshot{
		Room:             d.name,
		Game:             d.game.State(),
		ConnectedClients: nClients,
		Log:              logMessages,
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	if !d.exec(func() { d.handle(c, msg) }) {
		c.Send(playable.NewError(msg.Context, ErrDealerClosed))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(res *playable.Response) {
	for _, client := range d.Clients() {
		d.deliver(client, res)
	}

	d.publish(res)
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendToPlayer(username string, res *playable.Response) {
	for _, client := range d.Clients() {
		if client.username == username {
			d.deliver(client, res)
		}
	}
}

// deliver queues the response for the client and drops clients that stopped reading
func (d *Dealer) deliver(client *Client, res *playable.Response) {
	if client.Send(res) {
		return
	}

	d.log.WithField("client", client.String()).WithField("key", res.Key).Warn("client send buffer is full")
	client.Disconnect(CloseReasonTooSlow)
}

func (d *Dealer) publish(res *playable.Response) {
	if d.options.Publisher == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := d.options.Publisher.Publish(ctx, d.name, res); err != nil {
		d.log.WithError(err).WithField("key", res.Key).Error("could not publish event")
	}
}
