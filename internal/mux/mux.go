package mux

import (
	"context"
	"net/http"

	"highlow-server/internal/rng"
	"highlow-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxRoomKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	rng     rng.Generator
}

// NewMux returns a new HTTP mux
// The pitBoss must already be on shift
func NewMux(version string, pitBoss *room.PitBoss) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		rng:     rng.Crypto{},
	}

	r := this.Router
	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodPost).Path("/game").Handler(this.postGame())

	gr := r.PathPrefix("/game/{room:[a-z0-9][a-z0-9-]{0,63}}").Subrouter()
	gr.Use(this.roomMiddleware)

	gr.Methods(http.MethodGet).Path("").Handler(this.getGameRoom())
	gr.Methods(http.MethodGet).Path("/ws").Handler(this.getGameRoomWS())

	return this
}

func (m *Mux) roomMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := gmux.Vars(r)["room"]
		newCtx := context.WithValue(r.Context(), ctxRoomKey, name)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
