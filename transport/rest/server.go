package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	Move(ctx context.Context, cell int) (*usecase.MoveResult, error)
	Reset(ctx context.Context) (entity.Snapshot, error)

	GetStatus(ctx context.Context) entity.DisplayStatus
	GetBoard(ctx context.Context) entity.Board
	GetState(ctx context.Context) entity.Snapshot
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase

	// ws serves the live channel on /ws, nil disables it.
	ws http.Handler
}

func New(logger *slog.Logger, game gameUseCase, ws http.Handler) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		game:   game,
		ws:     ws,
	}
}

// Routes - builds the router with every presentation endpoint.
func (that *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(that.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", that.handlePing)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", that.handlePing)
		r.Get("/state", that.handleState)
		r.Get("/status", that.handleStatus)
		r.Get("/board", that.handleBoard)
		r.Post("/move", that.handleMove)
		r.Post("/reset", that.handleReset)
	})

	if that.ws != nil {
		r.Get("/ws", that.ws.ServeHTTP)
	}

	return r
}

// Start - serves HTTP until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// requestLogger logs every request through slog once it is served.
func (that *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()

		defer func() {
			that.logger.Info("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(started),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
