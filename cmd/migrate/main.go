package main

import (
	"context"
	"database/sql"
	"holdem-server/internal/config"
	"holdem-server/pkg/db"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Instance()
	dbh := waitForDB(cfg.Store.PGDSN)
	defer dbh.Close()

	if err := db.Migrate(dbh, cfg.Store.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	logrus.Info("migrations complete")
}

func waitForDB(dsn string) *sql.DB {
	timeout := time.NewTimer(time.Second * 10)
	defer timeout.Stop()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		dbh, err := db.OpenPostgres(ctx, dsn)
		cancel()
		if err == nil {
			return dbh
		}

		select {
		case <-timeout.C:
			logrus.WithError(err).Fatal("could not connect to database")
		case <-time.After(time.Millisecond * 500):
		}
	}
}
