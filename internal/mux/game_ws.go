package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"highlow-server/pkg/playable"
	"highlow-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = time.Second * 10
	pongWait   = time.Second * 60
	pingPeriod = pongWait * 9 / 10

	// closeGracePeriod is how long to wait for the peer to answer a close frame
	closeGracePeriod = time.Second

	// commands are small JSON objects
	maxMessageSize = 4096
)

var errInvalidCommand = errors.New("message is not a valid command")

// socket pumps messages between one websocket connection and its room
type socket struct {
	client *room.Client
	conn   *websocket.Conn
	log    logrus.FieldLogger

	// done is closed once the read pump has returned
	done chan struct{}
}

func (m *Mux) getGameRoomWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		name := r.Context().Value(ctxRoomKey).(string)
		client := room.NewClient(conn, name)
		s := &socket{
			client: client,
			conn:   conn,
			log:    logrus.WithField("client", client.String()),
			done:   make(chan struct{}),
		}

		conn.SetReadLimit(maxMessageSize)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})

		m.pitBoss.ClientConnected(client)
		defer func() {
			m.pitBoss.ClientDisconnected(client)
			close(s.done)
			_ = conn.Close()
		}()

		go s.writePump()
		s.readPump()
	}
}

// writePump owns every write to the connection
func (s *socket) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-ticker.C:
			if err := s.write(websocket.PingMessage, nil); err != nil {
				s.log.WithError(err).Debug("ping failed")
				return
			}
		case reason := <-s.client.CloseChan():
			s.log.WithField("reason", reason).Info("closing connection")
			_ = s.write(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))

			select {
			case <-s.done:
			case <-time.After(closeGracePeriod):
			}
			return
		case <-s.done:
			return
		case msg := <-s.client.SendChan():
			if err := s.writeJSON(msg); err != nil {
				s.log.WithError(err).Error("could not write message")
				return
			}
		}
	}
}

func (s *socket) write(messageType int, data []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(messageType, data)
}

func (s *socket) writeJSON(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		s.log.WithField("message", string(data)).Trace("sending message to client")
	}

	return s.write(websocket.TextMessage, data)
}

// readPump decodes commands until the connection fails
// A malformed command is answered with an error and does not drop the connection
func (s *socket) readPump() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Error("could not read message")
			}

			s.client.CloseError = err
			return
		}

		msg, err := decodeCommand(data)
		if err != nil {
			s.log.WithError(err).Debug("discarding malformed command")
			s.client.Send(playable.NewError("", errInvalidCommand))
			continue
		}

		s.client.ReceivedMessage(msg)
	}
}

func decodeCommand(data []byte) (*playable.PayloadIn, error) {
	var msg playable.PayloadIn
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	if msg.Action == "" {
		return nil, errInvalidCommand
	}

	return &msg, nil
}
