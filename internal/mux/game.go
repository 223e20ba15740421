package mux

import (
	"errors"
	"net/http"

	"highlow-server/internal/util"
	"highlow-server/pkg/room"
)

type postGameResponse struct {
	Room string `json:"room"`
}

// postGame suggests a name for a new room
// Rooms are created when the first client connects to them
func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := util.RandomRoomName(m.rng)
		for i := 0; i < 10; i++ {
			if _, taken := m.pitBoss.Dealer(name); !taken {
				break
			}

			name = util.RandomRoomName(m.rng)
		}

		writeJSON(w, http.StatusCreated, postGameResponse{Room: name})
	}
}

func (m *Mux) getGameRoom() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.Context().Value(ctxRoomKey).(string)
		dealer, ok := m.pitBoss.Dealer(name)
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		snapshot, err := dealer.Snapshot(r.Context())
		if errors.Is(err, room.ErrDealerClosed) {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		} else if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}
