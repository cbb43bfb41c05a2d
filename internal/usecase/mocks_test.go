package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-board/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func (that *mockGameRepo) Save(ctx context.Context, snapshot entity.Snapshot) error {
	args := that.Called(ctx, snapshot)
	return args.Error(0)
}

func (that *mockGameRepo) Delete(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (that *mockNotifier) Notify(snapshot entity.Snapshot) {
	that.Called(snapshot)
}
