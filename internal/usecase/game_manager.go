package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

const mirrorTimeout = 5 * time.Second

// GameUseCase is the intent API the presentation layer talks to.
type GameUseCase interface {
	Move(ctx context.Context, cell int) (*MoveResult, error)
	Reset(ctx context.Context) (entity.Snapshot, error)

	GetStatus(ctx context.Context) entity.DisplayStatus
	GetBoard(ctx context.Context) entity.Board
	GetState(ctx context.Context) entity.Snapshot
}

// MoveResult tells the caller whether the move changed the game.
type MoveResult struct {
	Accepted bool            `json:"accepted"`
	State    entity.Snapshot `json:"state"`
}

type gameController interface {
	Move(cell int) (bool, entity.Snapshot, error)
	Reset() entity.Snapshot
	Status() entity.DisplayStatus
	Board() entity.Board
	Snapshot() entity.Snapshot
}

type gameRepo interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	Delete(ctx context.Context) error
}

// Notifier receives every new snapshot after a state change.
type Notifier interface {
	Notify(snapshot entity.Snapshot)
}

type GameManager struct {
	logger *slog.Logger

	controller gameController
	gameRepo   gameRepo

	// mu keeps mirror writes and notifications in the order of the transitions.
	mu        sync.Mutex
	notifiers []Notifier
}

func NewGameManager(logger *slog.Logger, controller gameController, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		controller: controller,
		gameRepo:   gameRepo,
	}
}

// Subscribe - registers a notifier for every following state change.
func (that *GameManager) Subscribe(notifier Notifier) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notifiers = append(that.notifiers, notifier)
}

func (that *GameManager) Move(ctx context.Context, cell int) (*MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	accepted, snapshot, err := that.controller.Move(cell)
	if err != nil {
		return nil, fmt.Errorf("failed to move: %w", err)
	}

	if accepted {
		that.publish(ctx, snapshot)
	}

	return &MoveResult{
		Accepted: accepted,
		State:    snapshot,
	}, nil
}

func (that *GameManager) Reset(ctx context.Context) (entity.Snapshot, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	snapshot := that.controller.Reset()
	that.publish(ctx, snapshot)

	return snapshot, nil
}

func (that *GameManager) GetStatus(_ context.Context) entity.DisplayStatus {
	return that.controller.Status()
}

func (that *GameManager) GetBoard(_ context.Context) entity.Board {
	return that.controller.Board()
}

func (that *GameManager) GetState(_ context.Context) entity.Snapshot {
	return that.controller.Snapshot()
}

// Start - mirrors the initial state so readers see an empty board from the start.
func (that *GameManager) Start(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.Save(ctx, that.controller.Snapshot()); err != nil {
		return fmt.Errorf("failed to save initial game: %w", err)
	}

	return nil
}

// Close - removes the mirrored state; nothing outlives the process.
func (that *GameManager) Close(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.gameRepo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// publish must be called with mu held.
// The transition is already applied, so the mirror write outlives a canceled caller.
func (that *GameManager) publish(ctx context.Context, snapshot entity.Snapshot) {
	log := that.logger.With("method", "publish")

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), mirrorTimeout)
	defer cancel()

	if err := that.gameRepo.Save(saveCtx, snapshot); err != nil {
		log.Error("failed to mirror game", "error", err)
	}

	for _, notifier := range that.notifiers {
		notifier.Notify(snapshot)
	}

	log.Debug("state published", "status", snapshot.Status.String())
}
