package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository mirrors the current game of one process under its session key.
type GameRepository interface {
	Save(ctx context.Context, snapshot entity.Snapshot) error
	Get(ctx context.Context) (*entity.Snapshot, error)
	Delete(ctx context.Context) error
}

type dbGame struct {
	client *redis.Client
	key    string
}

func NewGameRepository(client *redis.Client, sessionID string) GameRepository {
	return &dbGame{
		client: client,
		key:    "game:" + sessionID,
	}
}

func (that *dbGame) Save(ctx context.Context, snapshot entity.Snapshot) error {
	gameJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	if err = that.client.Set(ctx, that.key, gameJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

func (that *dbGame) Get(ctx context.Context) (*entity.Snapshot, error) {
	response, err := that.client.Get(ctx, that.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrGameNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	var snapshot entity.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &snapshot, nil
}

func (that *dbGame) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

type nopGame struct{}

// NewNopGameRepository - used when the mirror is disabled.
func NewNopGameRepository() GameRepository {
	return nopGame{}
}

func (nopGame) Save(context.Context, entity.Snapshot) error { return nil }

func (nopGame) Get(context.Context) (*entity.Snapshot, error) { return nil, ErrGameNotFound }

func (nopGame) Delete(context.Context) error { return nil }
