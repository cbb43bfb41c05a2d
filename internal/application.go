package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-board/internal/config"
	"github.com/rocketscienceinc/tictactoe-board/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository"
	"github.com/rocketscienceinc/tictactoe-board/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-board/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-board/transport/rest"
	"github.com/rocketscienceinc/tictactoe-board/transport/terminal"
	"github.com/rocketscienceinc/tictactoe-board/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopSignals := watchSignals(ctx, cancel, log)
	defer stopSignals()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameController := tictactoe.NewGameController(logger)
	gameManager := usecase.NewGameManager(logger, gameController, gameRepo)

	if err = gameManager.Start(ctx); err != nil {
		log.Error("could not mirror initial game", "error", err)
	}

	defer func() {
		// ctx is already canceled here
		if err := gameManager.Close(context.Background()); err != nil {
			log.Error("could not remove mirrored game", "error", err)
		}
	}()

	switch conf.UI {
	case config.UITerminal:
		return runTerminal(ctx, logger, gameManager)
	default:
		return runWeb(ctx, logger, conf, gameManager)
	}
}

// watchSignals - cancels on SIGINT/SIGTERM until the returned stop is called.
func watchSignals(ctx context.Context, cancel context.CancelFunc, log *slog.Logger) func() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return func() {
		signal.Stop(sigs)
		cancel()
		<-done
	}
}

// newGameRepository - connects the redis mirror when it is enabled.
func newGameRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.GameRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewNopGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	sessionID := pkg.GenerateNewSessionID()
	log.Info("Mirroring game to redis", "addr", conf.Redis.GetRedisAddr(), "session", sessionID)

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, sessionID), closeFn, nil
}

func runWeb(ctx context.Context, logger *slog.Logger, conf *config.Config, gameManager *usecase.GameManager) error {
	hub := websocket.NewHub(logger)
	gameManager.Subscribe(hub)

	wsServer := websocket.New(logger, gameManager, hub)
	httpServer := rest.New(logger, gameManager, wsServer)

	logger.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err := httpServer.Start(ctx, conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func runTerminal(ctx context.Context, logger *slog.Logger, gameManager *usecase.GameManager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("could not create screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("could not init screen: %w", err)
	}
	defer screen.Fini()

	ui := terminal.New(logger, gameManager, screen)
	gameManager.Subscribe(ui)

	if err = ui.Run(ctx); err != nil {
		return fmt.Errorf("terminal ui error: %w", err)
	}

	return nil
}
