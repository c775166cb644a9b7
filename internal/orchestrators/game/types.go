package game

import (
	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

// CreateGameInput defines the request for creating a game
type CreateGameInput struct {
	// Zero limits take the table defaults
	MinPlayers int
	MaxPlayers int
}

// CreateGameOutput defines the response for creating a game
type CreateGameOutput struct {
	GameID string
	State  *entities.Snapshot
}

// AddPlayerInput defines the request for seating a villain
type AddPlayerInput struct {
	GameID    string
	Name      string
	VillainID string
}

// AddPlayerOutput defines the response for seating a villain
type AddPlayerOutput struct {
	PlayerID string
	State    *entities.Snapshot
}

// RemovePlayerInput defines the request for leaving a waiting game
type RemovePlayerInput struct {
	GameID   string
	PlayerID string
}

// RemovePlayerOutput defines the response for leaving a waiting game
type RemovePlayerOutput struct {
	State *entities.Snapshot
}

// StartGameInput defines the request for starting a game
type StartGameInput struct {
	GameID string
}

// StartGameOutput defines the response for starting a game
type StartGameOutput struct {
	State *entities.Snapshot
}

// MoveInput defines the request for moving a villain
type MoveInput struct {
	GameID   string
	PlayerID string
	Position int
}

// MoveOutput defines the response for moving a villain. A rule violation
// is reported in Result, not as an error.
type MoveOutput struct {
	Result *turn.Result
	State  *entities.Snapshot
}

// ActionParams are the optional arguments of an action
type ActionParams struct {
	CardID         string
	CardIDs        []string
	TargetID       string
	TargetPlayerID string
	HeroID         string
	ItemID         string
	TargetLocation *int
}

// PerformActionInput defines the request for taking an action
type PerformActionInput struct {
	GameID   string
	PlayerID string
	Action   entities.ActionType
	Params   ActionParams
}

// PerformActionOutput defines the response for taking an action
type PerformActionOutput struct {
	Result *turn.Result
	State  *entities.Snapshot
	// WinnerID is set when the action won the game
	WinnerID string
}

// EndTurnInput defines the request for ending a turn
type EndTurnInput struct {
	GameID   string
	PlayerID string
}

// EndTurnOutput defines the response for ending a turn
type EndTurnOutput struct {
	Result       *turn.Result
	NextPlayerID string
	WinnerID     string
	State        *entities.Snapshot
}

// EndGameInput defines the request for ending a game early
type EndGameInput struct {
	GameID string
	// WinnerID is optional
	WinnerID string
}

// EndGameOutput defines the response for ending a game early
type EndGameOutput struct {
	State *entities.Snapshot
}

// GetStateInput defines the request for reading a game
type GetStateInput struct {
	GameID string
}

// GetStateOutput carries both the public snapshot and the full game
type GetStateOutput struct {
	State *entities.Snapshot
	Game  *entities.Game
}

// GetVictoryProgressInput defines the request for objective progress
type GetVictoryProgressInput struct {
	GameID   string
	PlayerID string
}

// GetVictoryProgressOutput defines the response for objective progress
type GetVictoryProgressOutput struct {
	Description string
	Progress    victory.Progress
}

// GetActionLogInput defines the request for reading the log
type GetActionLogInput struct {
	GameID string
}

// GetActionLogOutput defines the response for reading the log
type GetActionLogOutput struct {
	Entries []string
}

// ListGamesInput defines the request for listing games
type ListGamesInput struct {
	Status entities.GameStatus
}

// ListGamesOutput defines the response for listing games
type ListGamesOutput struct {
	Games []*entities.Snapshot
}
