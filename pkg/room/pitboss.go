package room

import (
	"sync"
)

// PitBoss is responsible for dispatching clients to the dealer of their room
type PitBoss struct {
	options Options

	dealers    map[string]*Dealer
	lock       sync.RWMutex
	connect    chan *Client
	disconnect chan *Client
	close      chan bool
	closeOnce  sync.Once
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	if opts.Logger == nil {
		opts.Logger = DefaultOptions().Logger
	}

	return &PitBoss{
		options:    opts,
		dealers:    make(map[string]*Dealer),
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// StartShift starts the PitBoss run loop
func (p *PitBoss) StartShift() {
	go p.runLoop()
}

// EndShift stops the run loop and every dealer
// Connected clients are asked to close with CloseReasonRoomClosed
func (p *PitBoss) EndShift() {
	p.closeOnce.Do(func() {
		close(p.close)
	})

	p.lock.Lock()
	defer p.lock.Unlock()

	for name, dealer := range p.dealers {
		dealer.EndShift()
		delete(p.dealers, name)
	}
}

func (p *PitBoss) runLoop() {
	log := p.options.Logger
	for {
		select {
		case client := <-p.connect:
			log.WithField("client", client.String()).Debug("client connected")

			p.lock.Lock()
			dealer, found := p.dealers[client.room]
			if !found {
				dealer = NewDealer(p, client.room, p.options)
				dealer.StartShift()
				p.dealers[client.room] = dealer
			}
			p.lock.Unlock()

			dealer.AddClient(client)
		case client := <-p.disconnect:
			log.WithField("client", client.String()).Debug("client disconnected")

			p.lock.Lock()
			dealer, found := p.dealers[client.room]
			if !found {
				p.lock.Unlock()
				log.WithField("room", client.room).WithField("type", "exception").Error("room not found")
				continue
			}

			// the game lives as long as someone is connected to the room
			if dealer.RemoveClient(client) {
				dealer.EndShift()
				delete(p.dealers, client.room)
			}
			p.lock.Unlock()
		case <-p.close:
			return
		}
	}
}

// Dealer returns the dealer of an active room
func (p *PitBoss) Dealer(room string) (*Dealer, bool) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[room]
	return dealer, ok
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.disconnect <- client
}
