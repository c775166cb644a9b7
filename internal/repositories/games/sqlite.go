package games

import (
	"context"
	"database/sql"
	"strings"

	// registers the pure-Go "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/pkg/clock"
)

const schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	state      TEXT NOT NULL,
	state_json TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS games_state ON games(state);
`

// SQLiteConfig configures the SQLite repository
type SQLiteConfig struct {
	// Path is a file path or ":memory:"
	Path  string
	Clock clock.Clock
}

// Validate ensures the database path is set
func (c *SQLiteConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("Path", c.Path, vb)
	return vb.Build()
}

// SQLiteRepository stores one row per game with the snapshot as JSON text
type SQLiteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteRepository opens (or creates) the database and applies the schema
func NewSQLiteRepository(cfg *SQLiteConfig) (*SQLiteRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if cfg.Path == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to enable WAL")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to migrate sqlite database")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	return &SQLiteRepository{db: db, clock: c}, nil
}

// Close releases the database
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Create inserts a new game row
func (r *SQLiteRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO games (id, state, state_json, updated_at) VALUES (?, ?, ?, ?)",
		input.Game.ID, string(input.Game.Status), string(data), r.clock.Now(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, errors.AlreadyExistsf("game %s already exists", input.Game.ID)
		}
		return nil, errors.Wrapf(err, "failed to create game %s", input.Game.ID)
	}

	return &CreateOutput{}, nil
}

// Get loads a game row
func (r *SQLiteRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	var stateJSON string
	err := r.db.QueryRowContext(ctx, "SELECT state_json FROM games WHERE id = ?", input.ID).Scan(&stateJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("game %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get game %s", input.ID)
	}

	game, err := decode([]byte(stateJSON))
	if err != nil {
		return nil, err
	}
	return &GetOutput{Game: game}, nil
}

// Update rewrites an existing game row
func (r *SQLiteRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateGame(input.Game); err != nil {
		return nil, err
	}

	data, err := encode(input.Game)
	if err != nil {
		return nil, err
	}

	res, err := r.db.ExecContext(ctx,
		"UPDATE games SET state = ?, state_json = ?, updated_at = ? WHERE id = ?",
		string(input.Game.Status), string(data), r.clock.Now(), input.Game.ID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update game %s", input.Game.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf("game %s not found", input.Game.ID)
	}

	return &UpdateOutput{}, nil
}

// Delete removes a game row
func (r *SQLiteRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errGameIDEmpty)
	}

	res, err := r.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete game %s", input.ID)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, errors.NotFoundf("game %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// List returns games ordered by id
func (r *SQLiteRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if input.Status == "" {
		rows, err = r.db.QueryContext(ctx, "SELECT state_json FROM games ORDER BY id")
	} else {
		rows, err = r.db.QueryContext(ctx, "SELECT state_json FROM games WHERE state = ? ORDER BY id", string(input.Status))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}
	defer rows.Close()

	out := &ListOutput{}
	for rows.Next() {
		var stateJSON string
		if err := rows.Scan(&stateJSON); err != nil {
			return nil, errors.Wrap(err, "failed to scan game")
		}
		game, err := decode([]byte(stateJSON))
		if err != nil {
			return nil, err
		}
		out.Games = append(out.Games, game)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}
	return out, nil
}
