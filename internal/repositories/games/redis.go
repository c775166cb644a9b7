package games

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/KirkDiggler/villainous-api/internal/errors"
	redisclient "github.com/KirkDiggler/villainous-api/internal/redis"
)

const (
	gameKeyPrefix = "game:"
	gameIndexKey  = "game:index"
)

type redisRepository struct {
	client redisclient.Client
	ttl    time.Duration
}

// NewRedisRepository creates a Redis-backed game repository. A zero ttl
// keeps games until they are deleted.
func NewRedisRepository(client redisclient.Client, ttl time.Duration) Repository {
	return &redisRepository{
		client: client,
		ttl:    ttl,
	}
}

func gameKey(id string) string {
	return gameKeyPrefix + id
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	created := pipe.SetNX(ctx, gameKey(input.Game.ID), data, r.ttl)
	pipe.SAdd(ctx, gameIndexKey, input.Game.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create game %s", input.Game.ID)
	}
	if !created.Val() {
		return nil, errors.AlreadyExistsf("game %s already exists", input.Game.ID)
	}

	return &CreateOutput{}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	result, err := r.client.Get(ctx, gameKey(input.ID)).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("game %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get game %s", input.ID)
	}

	game, err := decode(result)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Game: game}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	// SET XX only writes an existing key
	ok, err := r.client.SetXX(ctx, gameKey(input.Game.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update game %s", input.Game.ID)
	}
	if !ok {
		return nil, errors.NotFoundf("game %s not found", input.Game.ID)
	}

	return &UpdateOutput{}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, gameKey(input.ID))
	pipe.SRem(ctx, gameIndexKey, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete game %s", input.ID)
	}
	if deleted.Val() == 0 {
		return nil, errors.NotFoundf("game %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, gameIndexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read game index")
	}
	out := &ListOutput{}
	if len(ids) == 0 {
		return out, nil
	}
	slices.Sort(ids)

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, gameKey(id))
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load games")
	}

	var stale []any
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// expired or deleted behind the index
			stale = append(stale, ids[i])
			continue
		}
		game, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		if input.Status != "" && game.Status != input.Status {
			continue
		}
		out.Games = append(out.Games, game)
	}

	if len(stale) > 0 {
		r.client.SRem(ctx, gameIndexKey, stale...)
	}
	return out, nil
}

// ScanReport lists stored games that no longer decode
type ScanReport struct {
	Checked int
	Corrupt []string
}

// ScanCorrupted walks every game key and reports the ones whose JSON no
// longer decodes into a game.
func ScanCorrupted(ctx context.Context, client redisclient.Client) (*ScanReport, error) {
	report := &ScanReport{}
	iter := client.Scan(ctx, 0, gameKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == gameIndexKey {
			continue
		}
		report.Checked++

		data, err := client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}
		game, err := decode(data)
		if err != nil || game.ID == "" || gameKey(game.ID) != key {
			report.Corrupt = append(report.Corrupt, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan game keys")
	}
	slices.Sort(report.Corrupt)
	return report, nil
}

// RemoveCorrupted deletes the given game keys and drops them from the index
func RemoveCorrupted(ctx context.Context, client redisclient.Client, keys []string) (int, error) {
	removed := 0
	for _, key := range keys {
		pipe := client.TxPipeline()
		deleted := pipe.Del(ctx, key)
		pipe.SRem(ctx, gameIndexKey, strings.TrimPrefix(key, gameKeyPrefix))
		if _, err := pipe.Exec(ctx); err != nil {
			return removed, errors.Wrapf(err, "failed to remove %s", key)
		}
		removed += int(deleted.Val())
	}
	return removed, nil
}
