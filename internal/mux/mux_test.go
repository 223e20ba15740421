package mux

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"highlow-server/pkg/highlow"
	"highlow-server/pkg/playable"
	"highlow-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type wireResponse struct {
	ID      string          `json:"id"`
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts, _ := newTestServerWithPitBoss(t)
	return ts
}

func newTestServerWithPitBoss(t *testing.T) (*httptest.Server, *room.PitBoss) {
	t.Helper()

	logger, _ := test.NewNullLogger()
	pitBoss := room.NewPitBoss(room.Options{
		Game: highlow.Options{
			Generator: rand.New(rand.NewSource(1)), // nolint:gosec
		},
		DefaultRounds: 1,
		Logger:        logger,
	})
	pitBoss.StartShift()

	ts := httptest.NewServer(NewMux("v1.2.3", pitBoss))
	t.Cleanup(func() {
		ts.Close()
		pitBoss.EndShift()
	})

	return ts, pitBoss
}

func dial(t *testing.T, ts *httptest.Server, name string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/game/" + name + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	return conn
}

func sendAction(t *testing.T, conn *websocket.Conn, action string, data playable.AdditionalData) {
	t.Helper()

	require.NoError(t, conn.WriteJSON(playable.PayloadIn{
		Action:         action,
		AdditionalData: data,
		Context:        action,
	}))
}

// readUntil reads messages until one with the key arrives
func readUntil(t *testing.T, conn *websocket.Conn, key string) wireResponse {
	t.Helper()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for {
		var res wireResponse
		require.NoError(t, conn.ReadJSON(&res))
		if res.Key == key {
			return res
		}
	}
}

func TestHealthHandler(t *testing.T) {
	ts := newTestServer(t)

	var expects healthResponse
	assertGet(t, ts, "/health", &expects, http.StatusOK)
	assert.Equal(t, "OK", expects.Status)
	assert.Equal(t, "v1.2.3", expects.Version)
}

func TestPostGame(t *testing.T) {
	ts := newTestServer(t)

	var resp postGameResponse
	assertPost(t, ts, "/game", &resp, http.StatusCreated)
	assert.Regexp(t, regexp.MustCompile(`^[a-z]+-[a-z]+$`), resp.Room)
}

func TestGetGameRoom_notFound(t *testing.T) {
	ts := newTestServer(t)

	var errObj errorResponse
	assertGet(t, ts, "/game/empty-room", &errObj, http.StatusNotFound)
	assert.Equal(t, "Not Found", errObj.Message)

	// names must be URL safe
	assertGet(t, ts, "/game/Bad_Name", nil, http.StatusNotFound)
}

func TestGameWS(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)

	alice := dial(t, ts, "friday")
	defer alice.Close()
	bob := dial(t, ts, "friday")
	defer bob.Close()

	readUntil(t, alice, "gameState")
	readUntil(t, bob, "gameState")

	sendAction(t, alice, "join", playable.AdditionalData{"username": "alice"})
	res := readUntil(t, alice, "joinAccepted")
	a.Equal("join", res.Context)
	var joined struct {
		Username string `json:"username"`
		Token    string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &joined))
	a.Equal("alice", joined.Username)
	a.NotEmpty(joined.Token)

	sendAction(t, bob, "join", playable.AdditionalData{"username": "alice"})
	res = readUntil(t, bob, "joinRejected")
	a.Equal("username_taken", res.Value)

	sendAction(t, bob, "join", playable.AdditionalData{"username": "bob"})
	readUntil(t, bob, "joinAccepted")
	readUntil(t, alice, "gameStartable")

	sendAction(t, alice, "start", nil)
	readUntil(t, bob, "gameStarted")

	sendAction(t, alice, "rounds", playable.AdditionalData{"numRounds": 1})
	res = readUntil(t, bob, "handDealt")

	var dealt struct {
		Username   string             `json:"username"`
		Hand       []highlow.CardView `json:"hand"`
		RoundsLeft int                `json:"roundsLeft"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &dealt))
	a.Equal("bob", dealt.Username)
	a.Len(dealt.Hand, 5)
	a.Equal(1, dealt.RoundsLeft)

	sendAction(t, alice, "bet", playable.AdditionalData{"amount": 5, "direction": "high"})
	readUntil(t, alice, "status")
	sendAction(t, bob, "bet", playable.AdditionalData{"amount": 5, "direction": "low"})

	res = readUntil(t, alice, "roundSettled")
	var settled struct {
		ScoreDeltas map[string]int `json:"scoreDeltas"`
		RoundsLeft  int            `json:"roundsLeft"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &settled))
	a.Equal(map[string]int{"alice": 5, "bob": 5}, settled.ScoreDeltas)
	a.Equal(0, settled.RoundsLeft)

	res = readUntil(t, alice, "gameOver")
	a.JSONEq(`{"scores":{"alice":5,"bob":5}}`, string(res.Data))

	var snapshot room.Snapshot
	assertGet(t, ts, "/game/friday", &snapshot, http.StatusOK)
	a.Equal("friday", snapshot.Room)
	a.Equal(2, snapshot.ConnectedClients)
	require.Len(t, snapshot.Game.Players, 2)
	a.Equal(5, snapshot.Game.Players[0].Score)
	a.Equal(5, snapshot.Game.Players[1].Score)

	sendAction(t, bob, "payout", nil)
	res = readUntil(t, alice, "payoutComputed")
	a.Contains(string(res.Data), `"totalWinnings":0`)

	sendAction(t, bob, "fold", nil)
	res = readUntil(t, bob, "error")
	a.Equal(room.ErrUnknownAction.Error(), res.Value)

	// the room closes when everyone disconnects
	_ = alice.Close()
	_ = bob.Close()
	a.Eventually(func() bool {
		resp, err := http.Get(ts.URL + "/game/friday")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, time.Second*5, time.Millisecond*50)
}

func TestGameWS_malformedCommand(t *testing.T) {
	a := assert.New(t)
	ts := newTestServer(t)

	conn := dial(t, ts, "saturday")
	defer conn.Close()
	readUntil(t, conn, "gameState")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	res := readUntil(t, conn, "error")
	a.Equal(errInvalidCommand.Error(), res.Value)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"additionalData":{}}`)))
	res = readUntil(t, conn, "error")
	a.Equal(errInvalidCommand.Error(), res.Value)

	// the connection is still usable
	sendAction(t, conn, "join", playable.AdditionalData{"username": "alice"})
	res = readUntil(t, conn, "joinAccepted")
	a.Equal("join", res.Context)
}

func TestGameWS_roomClosed(t *testing.T) {
	ts, pitBoss := newTestServerWithPitBoss(t)

	conn := dial(t, ts, "sunday")
	defer conn.Close()
	readUntil(t, conn, "gameState")

	pitBoss.EndShift()

	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}

		var closeErr *websocket.CloseError
		require.ErrorAs(t, err, &closeErr)
		assert.Equal(t, websocket.CloseNormalClosure, closeErr.Code)
		assert.Equal(t, room.CloseReasonRoomClosed, closeErr.Text)
		return
	}
}

func Test_decodeCommand(t *testing.T) {
	a := assert.New(t)

	msg, err := decodeCommand([]byte(`{"action":"bet","additionalData":{"amount":5},"context":"c1"}`))
	a.NoError(err)
	a.Equal("bet", msg.Action)
	a.Equal("c1", msg.Context)

	_, err = decodeCommand([]byte(`{"context":"c1"}`))
	a.Equal(errInvalidCommand, err)

	_, err = decodeCommand([]byte(`[]`))
	a.Error(err)
}
