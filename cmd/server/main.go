package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"highlow-server/internal/config"
	"highlow-server/internal/mux"
	"highlow-server/internal/rng"
	"highlow-server/pkg/eventbus"
	"highlow-server/pkg/highlow"
	"highlow-server/pkg/room"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the addr setting")

func main() {
	flag.Parse()
	cfg := config.Instance()
	setupLogger(cfg)

	opts := room.Options{
		Game: highlow.Options{
			Generator:  rng.Crypto{},
			MinPlayers: cfg.Game.MinPlayers,
		},
		DefaultRounds: cfg.Game.DefaultRounds,
		Logger:        logrus.StandardLogger(),
	}

	if cfg.Redis.Enabled {
		publisher, err := eventbus.New(eventbus.Config{
			URL:          cfg.Redis.URL,
			Channel:      cfg.Redis.Channel,
			PoolSize:     eventbus.DefaultConfig().PoolSize,
			MinIdleConns: eventbus.DefaultConfig().MinIdleConns,
			HistorySize:  cfg.Redis.HistorySize,
			HistoryTTL:   cfg.Redis.HistoryTTL,
		})
		if err != nil {
			logrus.WithError(err).Fatal("could not connect to redis")
		}
		defer publisher.Close()

		opts.Publisher = publisher
		logrus.WithField("channel", cfg.Redis.Channel).Info("publishing events to redis")
	}

	pitBoss := room.NewPitBoss(opts)
	pitBoss.StartShift()
	defer pitBoss.EndShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listenAddr := cfg.Addr
	if *addr != "" {
		listenAddr = *addr
	}

	srv := &http.Server{
		Addr:         listenAddr,
		Handler:      loggingHandler(cfg, c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logrus.Info("shutting down")
		if err := srv.Shutdown(ctx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).WithField("version", Version).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server stopped")
	}
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger(cfg config.Config) {
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
