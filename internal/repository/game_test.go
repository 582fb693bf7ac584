package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/testing/suite"
)

// repositories returns every GameRepository implementation; the redis one
// runs against a throwaway container.
func repositories(t *testing.T) map[string]func(t *testing.T) (context.Context, GameRepository) {
	t.Helper()

	return map[string]func(t *testing.T) (context.Context, GameRepository){
		"memory": func(_ *testing.T) (context.Context, GameRepository) {
			return context.Background(), NewMemoryGameRepository()
		},
		"redis": func(t *testing.T) (context.Context, GameRepository) {
			if testing.Short() {
				t.Skip("redis container is skipped in short mode")
			}

			ctx, st := suite.New(t)
			return ctx, NewGameRepository(st.Storage)
		},
	}
}

func TestGameRepository_CreateOrUpdate(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			// Given: a game in progress
			game := tictactoe.NewGame("123", entity.ModeComputer)
			require.NoError(t, tictactoe.Play(game, 4))

			// When: CreateOrUpdate is called
			err := gameRepo.CreateOrUpdate(ctx, game)

			// Then: no error should be returned, and the game is stored as is
			require.NoError(t, err)

			stored, err := gameRepo.GetByID(ctx, game.ID)
			require.NoError(t, err)
			assert.Equal(t, game, stored)
		})
	}
}

func TestGameRepository_GetByID(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name+"/Success", func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			// Given: a stored game
			game := tictactoe.NewGame("123", entity.ModeMultiplayer)
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

			// When: GetByID is called with the existing ID
			retrievedGame, err := gameRepo.GetByID(ctx, game.ID)

			// Then: the retrieved game should match the saved game
			require.NoError(t, err)
			assert.Equal(t, game, retrievedGame)
		})

		t.Run(name+"/Returns a copy", func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			game := tictactoe.NewGame("123", entity.ModeMultiplayer)
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

			// When: the retrieved game is modified without saving
			retrievedGame, err := gameRepo.GetByID(ctx, game.ID)
			require.NoError(t, err)
			require.NoError(t, tictactoe.Play(retrievedGame, 0))

			// Then: the stored game is unchanged
			again, err := gameRepo.GetByID(ctx, game.ID)
			require.NoError(t, err)
			assert.Equal(t, entity.Board{}, again.Board)
		})

		t.Run(name+"/NotFound", func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			// When: GetByID is called with a non-existent ID
			retrievedGame, err := gameRepo.GetByID(ctx, "9999999")

			// Then: ErrGameNotFound should be returned
			require.ErrorIs(t, err, apperror.ErrGameNotFound)
			assert.Nil(t, retrievedGame)
		})
	}
}

func TestGameRepository_DeleteByID(t *testing.T) {
	for name, newRepo := range repositories(t) {
		t.Run(name+"/Success", func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			// Given: a stored game
			game := tictactoe.NewGame("123", entity.ModeMultiplayer)
			require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

			// When: DeleteByID is called with the existing ID
			err := gameRepo.DeleteByID(ctx, game.ID)

			// Then: no error should be returned and the game is gone
			require.NoError(t, err)

			_, err = gameRepo.GetByID(ctx, game.ID)
			assert.ErrorIs(t, err, apperror.ErrGameNotFound)
		})

		t.Run(name+"/NotFound", func(t *testing.T) {
			ctx, gameRepo := newRepo(t)

			// When: DeleteByID is called with a non-existent ID
			err := gameRepo.DeleteByID(ctx, "9999999")

			// Then: ErrGameNotFound should be returned
			assert.ErrorIs(t, err, apperror.ErrGameNotFound)
		})
	}
}
