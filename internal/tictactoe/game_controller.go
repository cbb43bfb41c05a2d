package tictactoe

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-board/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

// MakeTurn - applies the current player's mark to the cell and passes the turn.
func MakeTurn(game *entity.Game, cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if game.IsFinished() {
		return apperror.ErrGameFinished
	}

	if game.Board[cell] != entity.Empty {
		return apperror.ErrCellOccupied
	}

	game.Board[cell] = game.Turn
	game.Turn = game.Turn.Opponent()

	return nil
}

// GameController owns the single in-process game and serializes every transition.
type GameController struct {
	logger *slog.Logger

	mu   sync.Mutex
	game *entity.Game
}

func NewGameController(logger *slog.Logger) *GameController {
	return &GameController{
		logger: logger.With("component", "game_controller"),
		game:   entity.NewGame(),
	}
}

// Move - plays the cell for whoever is to move.
// Occupied cells and decided games are rejected without error; only an
// out-of-range cell returns one.
func (that *GameController) Move(cell int) (bool, entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	log := that.logger.With("method", "Move", "cell", cell)

	mark := that.game.Turn
	err := MakeTurn(that.game, cell)

	switch {
	case err == nil:
		log.Debug("move accepted", "mark", mark, "status", that.game.Status().String())
		return true, that.game.Snapshot(), nil
	case errors.Is(err, apperror.ErrCellOccupied), errors.Is(err, apperror.ErrGameFinished):
		log.Debug("move ignored", "reason", err)
		return false, that.game.Snapshot(), nil
	default:
		return false, that.game.Snapshot(), fmt.Errorf("failed to make turn: %w", err)
	}
}

// Reset - clears the board and gives the first move back to X.
func (that *GameController) Reset() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.game.Reset()
	that.logger.Debug("game reset")

	return that.game.Snapshot()
}

func (that *GameController) Status() entity.DisplayStatus {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Status()
}

func (that *GameController) Board() entity.Board {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Board
}

func (that *GameController) Snapshot() entity.Snapshot {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.game.Snapshot()
}
