package room

import (
	"fmt"

	"highlow-server/pkg/playable"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// ID identifies the connection
	ID string

	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// close carries the reason the server wants the connection closed
	close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
	room   string

	// username is set once the client joins the game
	// NOTE: must only be accessed from the dealer's run loop
	username string
}

// NewClient returns a new client object for the room
func NewClient(conn *websocket.Conn, room string) *Client {
	return &Client{
		ID:    uuid.New().String(),
		send:  make(chan interface{}, 256),
		close: make(chan string, 1),
		Conn:  conn,
		room:  room,
	}
}

// Send send a message to the web client
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// Close reasons sent to the client in the websocket close frame
const (
	CloseReasonRoomClosed = "room closed"
	CloseReasonTooSlow    = "client is not reading messages"
)

// Disconnect asks the connection to close with the reason
// Only the first reason is kept
func (c *Client) Disconnect(reason string) {
	select {
	case c.close <- reason:
	default:
	}
}

// CloseChan returns the channel that receives the disconnect reason
func (c *Client) CloseChan() <-chan string {
	return c.close
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Room returns the name of the room the client connected to
func (c *Client) Room() string {
	return c.room
}

// String returns a traceable identifier for the connection and room
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.ID, c.room)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
