package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/protomem/task-tracker/internal/auth"
	"github.com/protomem/task-tracker/internal/database"
	"github.com/protomem/task-tracker/internal/env"
	"github.com/protomem/task-tracker/internal/version"
)

var _cfgFile = flag.String("cfg", "", "path to config file")

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := run(logger)
	if err != nil {
		trace := string(debug.Stack())
		logger.Error(err.Error(), "trace", trace)
		os.Exit(1)
	}
}

type config struct {
	httpHost string
	httpPort int
	db       struct {
		dsn         string
		automigrate bool
	}
	session struct {
		secret        string
		ttl           time.Duration
		sweepInterval time.Duration
	}
}

type application struct {
	config   config
	db       *database.DB
	logger   *slog.Logger
	sessions *auth.SessionManager
	creds    *auth.Credentials
	stop     chan struct{}
	wg       sync.WaitGroup
}

func run(logger *slog.Logger) error {
	showVersion := flag.Bool("version", false, "display version and exit")

	// Parsing happens here, not at package init, so the test binary can
	// register its own flags first.
	flag.Parse()

	if *showVersion {
		fmt.Printf("version: %s\n", version.Get())
		return nil
	}

	var cfg config

	if *_cfgFile != "" {
		err := env.Load(*_cfgFile)
		if err != nil {
			return err
		}
	}

	cfg.httpHost = env.GetString("HTTP_HOST", "localhost")
	cfg.httpPort = env.GetInt("HTTP_PORT", 8080)
	cfg.db.dsn = env.GetString("DB_DSN", "postgres:postgres@localhost:5432/postgres")
	cfg.db.automigrate = env.GetBool("DB_AUTOMIGRATE", true)
	cfg.session.secret = env.GetString("SESSION_SECRET", "")
	cfg.session.ttl = env.GetDuration("SESSION_TTL", 5*365*24*time.Hour)
	cfg.session.sweepInterval = env.GetDuration("SESSION_SWEEP_INTERVAL", time.Hour)

	if cfg.session.secret == "" {
		return errors.New("SESSION_SECRET must be set")
	}

	db, err := database.New(cfg.db.dsn, cfg.db.automigrate)
	if err != nil {
		return err
	}
	defer db.Close()

	app := &application{
		config: cfg,
		db:     db,
		logger: logger,
		stop:   make(chan struct{}),
	}

	app.sessions = auth.NewSessionManager(
		database.NewSessionDAO(logger, db),
		auth.NewTokenMinter([]byte(cfg.session.secret)),
		cfg.session.ttl,
	)
	app.creds = auth.NewCredentials(database.NewUserDAO(logger, db))

	// Startup sweep, then the periodic sweeper takes over.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	deleted, err := app.sessions.CleanupExpired(ctx)
	cancel()
	if err != nil {
		return err
	}
	logger.Info("expired sessions swept", "count", deleted)

	app.startSessionSweeper()

	return app.serveHTTP()
}
