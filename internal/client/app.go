package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikurilov/canvaskeeper/internal/adapter"
	"github.com/ikurilov/canvaskeeper/internal/config"
	"github.com/ikurilov/canvaskeeper/internal/engine"
	"github.com/ikurilov/canvaskeeper/internal/logger"
	"github.com/ikurilov/canvaskeeper/internal/status"
	"github.com/ikurilov/canvaskeeper/models"
)

// App is the headless client runtime. It owns the gateway, the status
// tracker, and one canvas state engine scoped to a single board.
type App struct {
	gateway *adapter.HTTPGateway
	tracker *status.Tracker
	engine  *engine.Engine

	login    string
	password string
	boardID  string
	export   string

	logger *logger.Logger
}

func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, log)
	if err != nil {
		return nil, fmt.Errorf("create http gateway: %w", err)
	}

	tracker := status.NewTracker()
	eng := engine.New(gateway, tracker, engine.Config{
		AutoSaveDebounce: cfg.Engine.AutoSaveDebounce,
		MaxRetryAttempts: cfg.Engine.MaxRetryAttempts,
		RetryBaseDelay:   cfg.Engine.RetryBaseDelay,
	}, log)

	return &App{
		gateway:  gateway,
		tracker:  tracker,
		engine:   eng,
		login:    os.Getenv("CANVAS_LOGIN"),
		password: os.Getenv("CANVAS_PASSWORD"),
		boardID:  getenv("CANVAS_BOARD", "default"),
		export:   os.Getenv("CANVAS_EXPORT"),
		logger:   log,
	}, nil
}

// Run authenticates against the server, loads the configured board, and
// blocks until a stop signal arrives. Pending changes are flushed before
// exit, and the loaded items are optionally exported as JSON.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()
	defer a.engine.Close()

	if err := a.authenticate(ctx); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	if err := a.engine.LoadItems(ctx, a.boardID); err != nil {
		return fmt.Errorf("load board %q: %w", a.boardID, err)
	}
	a.logger.Info().
		Str("board_id", a.boardID).
		Int("items", len(a.engine.Items())).
		Msg("board loaded")

	a.tracker.OnOnlineChanged(func(online bool) {
		a.logger.Info().Bool("online", online).Msg("connection status changed")
	})
	a.tracker.OnUnsavedChanged(func(unsaved bool) {
		a.logger.Debug().Bool("unsaved_changes", unsaved).Send()
	})

	<-ctx.Done()

	// flush whatever is still dirty before the process exits
	a.engine.SaveNow(context.Background())

	if a.export != "" {
		if err := a.exportItems(a.export); err != nil {
			a.logger.Err(err).Str("path", a.export).Msg("export failed")
		}
	}

	return nil
}

// authenticate logs in with the configured credentials, registering the
// account first when the login is unknown to the server.
func (a *App) authenticate(ctx context.Context) error {
	user := models.User{Login: a.login, Password: a.password}

	_, err := a.gateway.Login(ctx, user)
	if err == nil {
		a.logger.Info().Str("login", a.login).Msg("logged in")
		return nil
	}
	if !errors.Is(err, adapter.ErrUnauthorized) && !errors.Is(err, adapter.ErrNotFound) {
		return err
	}

	if _, err = a.gateway.Register(ctx, user); err != nil {
		return err
	}
	a.logger.Info().Str("login", a.login).Msg("registered new account")

	return nil
}

func (a *App) exportItems(path string) error {
	data, err := json.MarshalIndent(a.engine.Items(), "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

func getenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
