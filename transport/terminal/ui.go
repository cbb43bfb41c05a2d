package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
	"github.com/rocketscienceinc/tictactoe-board/internal/usecase"
)

type gameUseCase interface {
	Move(ctx context.Context, cell int) (*usecase.MoveResult, error)
	Reset(ctx context.Context) (entity.Snapshot, error)
	GetState(ctx context.Context) entity.Snapshot
}

// UI drives a single game from the keyboard.
type UI struct {
	logger *slog.Logger
	game   gameUseCase
	screen tcell.Screen

	cursor   int
	snapshot entity.Snapshot
}

// New - the screen must already be initialized; the caller owns Fini.
func New(logger *slog.Logger, game gameUseCase, screen tcell.Screen) *UI {
	return &UI{
		logger: logger.With("component", "terminal"),
		game:   game,
		screen: screen,

		cursor: 4,
	}
}

// Notify - asks the event loop to redraw with a newer snapshot.
func (that *UI) Notify(snapshot entity.Snapshot) {
	if err := that.screen.PostEvent(tcell.NewEventInterrupt(snapshot)); err != nil {
		that.logger.Warn("failed to post redraw", "error", err)
	}
}

// Run - processes key events until the user quits or ctx is done.
func (that *UI) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	that.snapshot = that.game.GetState(ctx)
	that.draw()

	go func() {
		<-ctx.Done()
		_ = that.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	for {
		switch ev := that.screen.PollEvent().(type) {
		case nil:
			// screen finalized
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}

			if snapshot, ok := ev.Data().(entity.Snapshot); ok {
				that.snapshot = snapshot
				that.draw()
			}
		case *tcell.EventResize:
			that.screen.Sync()
			that.draw()
		case *tcell.EventKey:
			quit, err := that.handleKey(ctx, ev)
			if err != nil {
				log.Error("failed to handle key", "error", err)
			}

			if quit {
				log.Info("quit requested")
				return nil
			}

			that.draw()
		}
	}
}

func (that *UI) handleKey(ctx context.Context, ev *tcell.EventKey) (bool, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true, nil
	case tcell.KeyUp:
		that.moveCursor(-3)
	case tcell.KeyDown:
		that.moveCursor(3)
	case tcell.KeyLeft:
		if that.cursor%3 > 0 {
			that.moveCursor(-1)
		}
	case tcell.KeyRight:
		if that.cursor%3 < 2 {
			that.moveCursor(1)
		}
	case tcell.KeyEnter:
		return false, that.play(ctx, that.cursor)
	case tcell.KeyRune:
		return that.handleRune(ctx, ev.Rune())
	}

	return false, nil
}

func (that *UI) handleRune(ctx context.Context, r rune) (bool, error) {
	switch {
	case r >= '1' && r <= '9':
		that.cursor = int(r - '1')
		return false, that.play(ctx, that.cursor)
	case r == ' ':
		return false, that.play(ctx, that.cursor)
	case r == 'r' || r == 'R':
		snapshot, err := that.game.Reset(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to reset game: %w", err)
		}

		that.snapshot = snapshot
	case r == 'q' || r == 'Q':
		return true, nil
	}

	return false, nil
}

func (that *UI) play(ctx context.Context, cell int) error {
	result, err := that.game.Move(ctx, cell)
	if err != nil {
		return fmt.Errorf("failed to play cell %d: %w", cell, err)
	}

	that.snapshot = result.State

	return nil
}

func (that *UI) moveCursor(delta int) {
	if next := that.cursor + delta; entity.IsValidCell(next) {
		that.cursor = next
	}
}

func (that *UI) draw() {
	Render(that.screen, NewView(that.snapshot, that.cursor))
}
