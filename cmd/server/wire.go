package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/villainous-api/internal/config"
	"github.com/KirkDiggler/villainous-api/internal/effects"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/gamedata"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/game"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/pkg/clock"
	"github.com/KirkDiggler/villainous-api/internal/pkg/idgen"
	"github.com/KirkDiggler/villainous-api/internal/pkg/shuffle"
	"github.com/KirkDiggler/villainous-api/internal/redis"
	"github.com/KirkDiggler/villainous-api/internal/repositories/games"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

// buildService assembles the game service described by cfg. cleanup
// releases storage connections.
func buildService(ctx context.Context, cfg *config.Config) (game.Service, func(), error) {
	repo, cleanup, err := buildRepository(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	loader, err := buildLoader(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	turns, err := turn.NewManager(&turn.Config{EffectApplier: buildEffects(cfg)})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	service, err := game.NewOrchestrator(&game.Config{
		Repository:  repo,
		Loader:      loader,
		TurnManager: turns,
		Victory:     victory.NewEvaluator(),
		IDGenerator: idgen.NewUUID("game"),
		Shuffler:    shuffle.Default(),
		HandSize:    cfg.Game.HandSize,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	return service, cleanup, nil
}

// connectRedis opens the configured single node or cluster and checks it answers
func connectRedis(ctx context.Context, cfg *config.Config) (redis.Client, error) {
	storage := cfg.Storage
	opts := &redis.Options{
		PoolSize: storage.Redis.PoolSize,
		UseTLS:   storage.Redis.UseTLS,
	}
	var (
		client redis.Client
		err    error
	)
	if len(storage.Redis.ClusterEndpoints) > 0 {
		client, err = redis.NewClusterClient(storage.Redis.ClusterEndpoints, opts)
	} else {
		client, err = redis.NewClient(storage.Redis.Endpoint, opts)
	}
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to create redis client")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "redis is unreachable")
	}
	return client, nil
}

func buildRepository(ctx context.Context, cfg *config.Config) (games.Repository, func(), error) {
	storage := cfg.Storage

	switch storage.Backend {
	case config.BackendMemory:
		slog.Info("using in-memory game storage")
		return games.NewInMemory(), func() {}, nil

	case config.BackendRedis:
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		slog.Info("using redis game storage",
			"endpoint", storage.Redis.Endpoint,
			"cluster_nodes", len(storage.Redis.ClusterEndpoints),
			"ttl", storage.Redis.TTL,
		)
		cleanup := func() {
			if err := client.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err)
			}
		}
		return games.NewRedisRepository(client, storage.Redis.TTL), cleanup, nil

	case config.BackendSQLite:
		repo, err := games.NewSQLiteRepository(&games.SQLiteConfig{
			Path:  storage.SQLite.Path,
			Clock: clock.New(),
		})
		if err != nil {
			return nil, nil, err
		}

		slog.Info("using sqlite game storage", "path", storage.SQLite.Path)
		cleanup := func() {
			if err := repo.Close(); err != nil {
				slog.Warn("failed to close sqlite database", "error", err)
			}
		}
		return repo, cleanup, nil
	}

	return nil, nil, errors.InvalidArgumentf("unknown storage backend %q", storage.Backend)
}

func buildLoader(cfg *config.Config) (*gamedata.FileLoader, error) {
	if cfg.Game.DataDir == "" {
		return gamedata.NewFileLoader(nil)
	}

	info, err := os.Stat(cfg.Game.DataDir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open data dir %s", cfg.Game.DataDir)
	}
	if !info.IsDir() {
		return nil, errors.InvalidArgumentf("data dir %s is not a directory", cfg.Game.DataDir)
	}

	slog.Info("loading game data from disk", "dir", cfg.Game.DataDir)
	return gamedata.NewFileLoader(&gamedata.Config{FS: os.DirFS(cfg.Game.DataDir)})
}

func buildEffects(cfg *config.Config) effects.Applier {
	if cfg.Game.Effects == config.EffectsNone {
		return effects.Noop{}
	}
	return effects.NewLuaApplier(nil)
}
