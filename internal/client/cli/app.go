package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/userreg/internal/client/client"
	"github.com/dmitrijs2005/userreg/internal/client/config"
	"github.com/dmitrijs2005/userreg/internal/client/services"
	"github.com/dmitrijs2005/userreg/internal/client/session"
	"github.com/dmitrijs2005/userreg/internal/filex"
	"github.com/dmitrijs2005/userreg/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const pingTimeout = 3 * time.Second

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	cacheService   services.CacheService
	draftService   services.DraftService
	logger         logging.Logger
	console        Console
	out            io.Writer

	mu   sync.RWMutex
	mode Mode

	closers []io.Closer
}

// NewApp opens the log file and the local database, builds the API client
// and the services, and attaches the console.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logFile, err := filex.OpenAppend(c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := logging.New(logFile, c.LogLevel, "text")
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	a := &App{config: c, logger: logger, closers: []io.Closer{logFile}}

	dbPath, err := filex.EnsureParentDir(c.DatabasePath)
	if err != nil {
		a.Close()
		return nil, err
	}
	db, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", dbPath, "error", err)
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, db)

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	store := session.NewStore(db, apiClient, c.TokenTTL, logger)
	a.authService = services.NewAuthService(apiClient, db, store, logger)
	a.profileService = services.NewProfileService(apiClient, store, logger)
	a.cacheService = services.NewCacheService(db, store)
	a.draftService = services.NewDraftService(db)

	console, err := NewConsole(c.HistoryFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.console = console
	a.out = console.Stdout()
	a.closers = append(a.closers, console)

	logger.Info(ctx, "client started", "api", c.APIBaseURL, "db", dbPath)
	return a, nil
}

// Close releases the console, the database and the log file, in reverse
// order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i].Close()
	}
	a.closers = nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	defer a.authService.Close(ctx)
	a.Root(ctx)
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed && a.logger != nil {
		a.logger.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.profileService.Current() != nil
}

// checkOnline pings the API once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			a.setMode(ModeOffline)
		}
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the API every interval until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
