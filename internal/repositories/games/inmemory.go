package games

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/villainous-api/internal/errors"
)

type inMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a repository that keeps encoded snapshots in memory
func NewInMemory() Repository {
	return &inMemoryRepository{
		store: make(map[string][]byte),
	}
}

func (r *inMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Game.ID]; exists {
		return nil, errors.AlreadyExistsf("game %s already exists", input.Game.ID)
	}
	r.store[input.Game.ID] = data

	return &CreateOutput{}, nil
}

func (r *inMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.ID]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.NotFoundf("game %s not found", input.ID)
	}

	game, err := decode(data)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Game: game}, nil
}

func (r *inMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Game.ID]; !exists {
		return nil, errors.NotFoundf("game %s not found", input.Game.ID)
	}
	r.store[input.Game.ID] = data

	return &UpdateOutput{}, nil
}

func (r *inMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.ID]; !exists {
		return nil, errors.NotFoundf("game %s not found", input.ID)
	}
	delete(r.store, input.ID)

	return &DeleteOutput{}, nil
}

func (r *inMemoryRepository) List(_ context.Context, input ListInput) (*ListOutput, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	encoded := make([][]byte, 0, len(ids))
	for _, id := range ids {
		encoded = append(encoded, r.store[id])
	}
	r.mu.RUnlock()

	out := &ListOutput{}
	for _, data := range encoded {
		game, err := decode(data)
		if err != nil {
			return nil, err
		}
		if input.Status != "" && game.Status != input.Status {
			continue
		}
		out.Games = append(out.Games, game)
	}
	return out, nil
}
