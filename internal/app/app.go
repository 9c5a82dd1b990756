package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dori/jotlist/internal/config"
	"github.com/dori/jotlist/internal/db"
	"github.com/dori/jotlist/internal/storage"
	"github.com/dori/jotlist/internal/todo"
	"github.com/gofrs/flock"
)

// ErrAlreadyRunning is returned when another process holds the data dir lock.
var ErrAlreadyRunning = errors.New("another instance of jotlist is already running")

// App holds the application state and dependencies
type App struct {
	Config *config.Config
	Repo   *todo.Repository
	Logger *log.Logger

	db       *db.DB
	logFile  *os.File
	lockFile *flock.Flock
}

// Options tweaks how the app is opened
type Options struct {
	// Debug forces debug-level logging.
	Debug bool
	// Ephemeral keeps todos in memory only; nothing touches DataDir.
	Ephemeral bool
}

// New creates a new application instance
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	app := &App{Config: cfg}

	if opts.Ephemeral {
		app.Logger = newLogger(os.Stderr, cfg.LogLevel, opts.Debug)
		app.Repo = todo.New(storage.New(storage.NewMemory(), app.Logger), todo.WithLogger(app.Logger))
		return app, nil
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	// Acquire lock to ensure single instance
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	logFile, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	app.logFile = logFile
	app.Logger = newLogger(logFile, cfg.LogLevel, opts.Debug)

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.db = database

	app.Repo = todo.New(storage.New(database, app.Logger), todo.WithLogger(app.Logger))
	app.Logger.Info("opened", "db", cfg.DBPath(), "todos", app.Repo.Len())

	return app, nil
}

func newLogger(w io.Writer, level string, debug bool) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	if debug {
		lvl = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "jotlist",
		Level:           lvl,
	})
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	a.lockFile = flock.New(a.Config.LockPath())

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return ErrAlreadyRunning
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close log file: %w", err))
		}
	}

	a.releaseLock()

	return errors.Join(errs...)
}
