package main

import (
	"context"
	"flag"
	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/pkg/db"
	"holdem-server/pkg/room"
	"holdem-server/pkg/table"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", "", "the listen address, overrides the configuration")

func main() {
	flag.Parse()

	// a missing .env is fine
	_ = godotenv.Load()

	cfg := config.Instance()
	setupLogger(cfg)

	// fail fast
	if err := jwt.LoadKeys(cfg.JWT.PublicKey, cfg.JWT.PrivateKey); err != nil {
		logrus.WithError(err).Fatal("could not load jwt keys")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.Open(ctx, db.Options{
		Driver:         cfg.Store.Driver,
		PGDSN:          cfg.Store.PGDSN,
		SQLitePath:     cfg.Store.SQLitePath,
		MigrationsPath: cfg.Store.MigrationsPath,
	})
	if err != nil {
		logrus.WithError(err).Fatal("could not open the store")
	}
	defer store.Close()

	pitBoss := room.NewPitBoss(room.Options{
		Table:       tableOptions(cfg),
		IdleTimeout: cfg.Table.IdleTimeout,
		Store:       store,
		Logger:      logrus.StandardLogger(),
	})
	pitBoss.StartShift()
	defer pitBoss.Shutdown()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	listen := cfg.Addr
	if *addr != "" {
		listen = *addr
	}

	// no write timeout, websockets are long lived
	srv := &http.Server{
		Addr:        listen,
		Handler:     loggingHandler(cfg, c.Handler(mux.NewMux(Version, pitBoss, store))),
		ReadTimeout: readTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).WithField("version", Version).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logrus.WithError(err).Fatal("server stopped")
	}

	logrus.Info("server stopped")
}

func tableOptions(cfg config.Config) table.Options {
	opts := table.DefaultOptions()
	opts.SmallBlind = cfg.Table.SmallBlind
	opts.BigBlind = cfg.Table.BigBlind
	opts.StartingStack = cfg.Table.StartingStack
	opts.MaxSeats = cfg.Table.MaxSeats
	opts.TurnTimeout = cfg.Table.TurnTimeout
	opts.StreetDelay = cfg.Table.StreetDelay
	opts.NextHandDelay = cfg.Table.NextHandDelay
	return opts
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
