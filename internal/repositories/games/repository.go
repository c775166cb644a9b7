// Package games defines persistence for whole game snapshots
package games

//go:generate mockgen -destination=mock/mock_repository.go -package=gamesmock github.com/KirkDiggler/villainous-api/internal/repositories/games Repository

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
)

const (
	errGameNil     = "game cannot be nil"
	errGameIDEmpty = "game ID cannot be empty"
)

// Repository stores games as complete snapshots: players, decks, zones and
// boards. Returned games are detached copies; shufflers are not persisted
// and must be re-attached by the caller.
type Repository interface {
	// Create stores a new game
	// Returns errors.AlreadyExists if the id is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get loads a game by id
	// Returns errors.NotFound if the game doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing game
	// Returns errors.NotFound if the game doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a game
	// Returns errors.NotFound if the game doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns stored games ordered by id, optionally filtered by status
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// CreateInput defines the input for creating a game
type CreateInput struct {
	Game *entities.Game
}

// CreateOutput defines the output for creating a game
type CreateOutput struct{}

// GetInput defines the input for getting a game
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a game
type GetOutput struct {
	Game *entities.Game
}

// UpdateInput defines the input for updating a game
type UpdateInput struct {
	Game *entities.Game
}

// UpdateOutput defines the output for updating a game
type UpdateOutput struct{}

// DeleteInput defines the input for deleting a game
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a game
type DeleteOutput struct{}

// ListInput defines the input for listing games
type ListInput struct {
	// Status filters by lifecycle state; empty lists everything
	Status entities.GameStatus
}

// ListOutput defines the output for listing games
type ListOutput struct {
	Games []*entities.Game
}

func validateGame(game *entities.Game) error {
	if game == nil {
		return errors.InvalidArgument(errGameNil)
	}
	if game.ID == "" {
		return errors.InvalidArgument(errGameIDEmpty)
	}
	return nil
}

func encode(game *entities.Game) ([]byte, error) {
	data, err := json.Marshal(game)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal game %s", game.ID)
	}
	return data, nil
}

func decode(data []byte) (*entities.Game, error) {
	var game entities.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal game")
	}
	return &game, nil
}
