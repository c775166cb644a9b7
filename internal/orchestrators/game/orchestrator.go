// Package game orchestrates whole games: seating villains, running turns
// through the turn manager, checking objectives and persisting state.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/villainous-api/internal/orchestrators/game Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/gamedata"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/pkg/idgen"
	"github.com/KirkDiggler/villainous-api/internal/pkg/shuffle"
	"github.com/KirkDiggler/villainous-api/internal/repositories/games"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

// Service defines the game operations
type Service interface {
	CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error)
	AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error)
	RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error)
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// Move, PerformAction and EndTurn only accept the current player
	Move(ctx context.Context, input *MoveInput) (*MoveOutput, error)
	PerformAction(ctx context.Context, input *PerformActionInput) (*PerformActionOutput, error)
	EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error)
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)

	GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error)
	GetVictoryProgress(ctx context.Context, input *GetVictoryProgressInput) (*GetVictoryProgressOutput, error)
	GetActionLog(ctx context.Context, input *GetActionLogInput) (*GetActionLogOutput, error)
	ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error)
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Repository  games.Repository
	Loader      gamedata.Loader
	TurnManager *turn.Manager
	Victory     *victory.Evaluator
	IDGenerator idgen.Generator
	// Shuffler drives deck and seating shuffles. Defaults to dice rolls.
	Shuffler shuffle.Shuffler
	HandSize int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Loader == nil {
		vb.RequiredField("Loader")
	}
	if c.TurnManager == nil {
		vb.RequiredField("TurnManager")
	}
	if c.Victory == nil {
		vb.RequiredField("Victory")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.HandSize < 0 {
		vb.Field("HandSize", "must not be negative")
	}

	return vb.Build()
}

type orchestrator struct {
	repo     games.Repository
	loader   gamedata.Loader
	turns    *turn.Manager
	victory  *victory.Evaluator
	idGen    idgen.Generator
	shuffler shuffle.Shuffler
	handSize int
	locks    *keyedMutex
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	shuffler := cfg.Shuffler
	if shuffler == nil {
		shuffler = shuffle.Default()
	}

	return &orchestrator{
		repo:     cfg.Repository,
		loader:   cfg.Loader,
		turns:    cfg.TurnManager,
		victory:  cfg.Victory,
		idGen:    cfg.IDGenerator,
		shuffler: shuffler,
		handSize: cfg.HandSize,
		locks:    newKeyedMutex(),
	}, nil
}

func entityAttr(key string, e core.Entity) slog.Attr {
	return slog.Group(key, "id", e.GetID(), "type", e.GetType())
}

func (o *orchestrator) CreateGame(ctx context.Context, input *CreateGameInput) (*CreateGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := entities.NewGame(&entities.GameConfig{
		ID:         o.idGen.Generate(),
		MinPlayers: input.MinPlayers,
		MaxPlayers: input.MaxPlayers,
	})
	if err != nil {
		return nil, err
	}

	if _, err := o.repo.Create(ctx, games.CreateInput{Game: g}); err != nil {
		return nil, errors.Wrap(err, "failed to store game")
	}

	slog.Info("game created",
		"game_id", g.ID,
		"min_players", g.MinPlayers,
		"max_players", g.MaxPlayers,
	)

	return &CreateGameOutput{GameID: g.ID, State: g.Snapshot()}, nil
}

func (o *orchestrator) AddPlayer(ctx context.Context, input *AddPlayerInput) (*AddPlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("game_id", input.GameID, vb)
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("villain_id", input.VillainID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	var playerID string
	g, err := o.mutate(ctx, input.GameID, func(g *entities.Game) error {
		if g.Status != entities.GameStatusWaiting {
			return errors.FailedPrecondition("game already started")
		}
		if g.HasVillain(input.VillainID) {
			return errors.AlreadyExistsf("villain %s is already taken", input.VillainID)
		}

		p, err := o.buildPlayer(g.NextPlayerID(), input.Name, input.VillainID)
		if err != nil {
			return err
		}
		if err := g.AddPlayer(p); err != nil {
			return err
		}
		playerID = p.ID

		slog.Info("player added",
			"game_id", g.ID,
			entityAttr("player", p),
			"villain", p.VillainID,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &AddPlayerOutput{PlayerID: playerID, State: g.Snapshot()}, nil
}

func (o *orchestrator) buildPlayer(id, name, villainID string) (*entities.Player, error) {
	board, err := o.loader.LoadBoard(villainID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load board for %s", villainID)
	}
	if len(board) == 0 {
		return nil, errors.FailedPreconditionf("no board available for villain %s", villainID)
	}

	cards, err := o.loader.LoadCardSet(villainID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load cards for %s", villainID)
	}
	if cards.IsEmpty() {
		slog.Warn("villain has no cards", "villain", villainID)
	}

	return entities.NewPlayer(&entities.PlayerConfig{
		ID:           id,
		Name:         name,
		VillainID:    villainID,
		Locations:    board,
		VillainCards: cards.VillainCards,
		FateCards:    cards.FateCards,
		HandSize:     o.handSize,
		Shuffler:     o.shuffler,
	})
}

func (o *orchestrator) RemovePlayer(ctx context.Context, input *RemovePlayerInput) (*RemovePlayerOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument("player_id is required")
	}

	g, err := o.mutate(ctx, input.GameID, func(g *entities.Game) error {
		return g.RemovePlayer(input.PlayerID)
	})
	if err != nil {
		return nil, err
	}

	return &RemovePlayerOutput{State: g.Snapshot()}, nil
}

func (o *orchestrator) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := o.mutate(ctx, input.GameID, func(g *entities.Game) error {
		if g.Status != entities.GameStatusWaiting {
			return errors.FailedPrecondition("game already started")
		}
		if len(g.Players) < g.MinPlayers {
			return errors.FailedPreconditionf("need at least %d players, have %d", g.MinPlayers, len(g.Players))
		}
		g.SeatPlayers(o.shuffler)
		return g.Start()
	})
	if err != nil {
		return nil, err
	}

	slog.Info("game started",
		"game_id", g.ID,
		"players", len(g.Players),
		"first_player", g.CurrentPlayer().ID,
	)

	return &StartGameOutput{State: g.Snapshot()}, nil
}

func (o *orchestrator) Move(ctx context.Context, input *MoveInput) (*MoveOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var result *turn.Result
	g, err := o.play(ctx, input.GameID, input.PlayerID, func(g *entities.Game, p *entities.Player) bool {
		result = o.turns.Move(p, input.Position)
		if result.Success {
			g.Log("%s", result.Message)
		}
		return result.Success
	})
	if err != nil {
		return nil, err
	}

	return &MoveOutput{Result: result, State: g.Snapshot()}, nil
}

func (o *orchestrator) PerformAction(ctx context.Context, input *PerformActionInput) (*PerformActionOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Action == "" {
		return nil, errors.InvalidArgument("action is required")
	}
	if _, ok := entities.ParseActionType(string(input.Action)); !ok {
		return nil, errors.InvalidArgumentf("unknown action %s", input.Action)
	}

	var (
		result *turn.Result
		winner string
	)
	g, err := o.play(ctx, input.GameID, input.PlayerID, func(g *entities.Game, p *entities.Player) bool {
		params := &turn.Params{
			CardID:         input.Params.CardID,
			CardIDs:        input.Params.CardIDs,
			TargetID:       input.Params.TargetID,
			HeroID:         input.Params.HeroID,
			ItemID:         input.Params.ItemID,
			TargetLocation: input.Params.TargetLocation,
		}
		if input.Params.TargetPlayerID != "" {
			params.TargetPlayer = g.PlayerByID(input.Params.TargetPlayerID)
			if params.TargetPlayer == nil {
				result = &turn.Result{
					Code:    errors.CodeNotFound,
					Message: "target player " + input.Params.TargetPlayerID + " not found",
				}
				return false
			}
		}

		result = o.turns.PerformAction(ctx, p, input.Action, params)
		if !result.Success {
			return false
		}
		g.Log("%s", result.Message)

		if o.victory.CheckVictory(p) {
			if err := g.End(p); err == nil {
				winner = p.ID
				slog.Info("objective met", "game_id", g.ID, entityAttr("player", p))
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	return &PerformActionOutput{Result: result, State: g.Snapshot(), WinnerID: winner}, nil
}

func (o *orchestrator) EndTurn(ctx context.Context, input *EndTurnInput) (*EndTurnOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	out := &EndTurnOutput{}
	g, err := o.play(ctx, input.GameID, input.PlayerID, func(g *entities.Game, p *entities.Player) bool {
		out.Result = o.turns.EndTurn(p)
		g.Log("%s", out.Result.Message)

		winner, err := g.NextTurn(o.victory)
		if err != nil {
			out.Result = &turn.Result{Code: errors.GetCode(err), Message: errors.GetMessage(err)}
			return false
		}
		if winner != nil {
			out.WinnerID = winner.ID
		} else {
			out.NextPlayerID = g.CurrentPlayer().ID
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	out.State = g.Snapshot()
	return out, nil
}

func (o *orchestrator) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := o.mutate(ctx, input.GameID, func(g *entities.Game) error {
		var winner *entities.Player
		if input.WinnerID != "" {
			winner = g.PlayerByID(input.WinnerID)
			if winner == nil {
				return errors.NotFoundf("player %s not found", input.WinnerID)
			}
		}
		return g.End(winner)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("game ended", "game_id", g.ID, "winner", g.WinnerID)

	return &EndGameOutput{State: g.Snapshot()}, nil
}

func (o *orchestrator) GetState(ctx context.Context, input *GetStateInput) (*GetStateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := o.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetStateOutput{State: g.Snapshot(), Game: g}, nil
}

func (o *orchestrator) GetVictoryProgress(ctx context.Context, input *GetVictoryProgressInput) (*GetVictoryProgressOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := o.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}
	p := g.PlayerByID(input.PlayerID)
	if p == nil {
		return nil, errors.NotFoundf("player %s not found", input.PlayerID)
	}

	return &GetVictoryProgressOutput{
		Description: o.victory.Description(p.VillainID),
		Progress:    o.victory.Progress(p),
	}, nil
}

func (o *orchestrator) GetActionLog(ctx context.Context, input *GetActionLogInput) (*GetActionLogOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	g, err := o.load(ctx, input.GameID)
	if err != nil {
		return nil, err
	}

	return &GetActionLogOutput{Entries: g.ActionLog}, nil
}

func (o *orchestrator) ListGames(ctx context.Context, input *ListGamesInput) (*ListGamesOutput, error) {
	if input == nil {
		input = &ListGamesInput{}
	}

	list, err := o.repo.List(ctx, games.ListInput{Status: input.Status})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list games")
	}

	out := &ListGamesOutput{Games: make([]*entities.Snapshot, 0, len(list.Games))}
	for _, g := range list.Games {
		out.Games = append(out.Games, g.Snapshot())
	}
	return out, nil
}

func (o *orchestrator) load(ctx context.Context, gameID string) (*entities.Game, error) {
	if gameID == "" {
		return nil, errors.InvalidArgument("game_id is required")
	}

	out, err := o.repo.Get(ctx, games.GetInput{ID: gameID})
	if err != nil {
		return nil, err
	}
	out.Game.SetShuffler(o.shuffler)
	return out.Game, nil
}

// mutate runs fn on a freshly loaded game under the game's lock and stores
// the result only when fn succeeds. Finished games are read-only.
func (o *orchestrator) mutate(ctx context.Context, gameID string, fn func(g *entities.Game) error) (*entities.Game, error) {
	unlock := o.locks.Lock(gameID)
	defer unlock()

	g, err := o.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.IsFinished() {
		return nil, errors.FailedPreconditionf("game %s is finished", gameID)
	}

	if err := fn(g); err != nil {
		return nil, err
	}

	if _, err := o.repo.Update(ctx, games.UpdateInput{Game: g}); err != nil {
		return nil, errors.Wrap(err, "failed to store game")
	}
	return g, nil
}

// play is mutate for turn steps. Only the current player may act, and a
// step that reports failure leaves the stored game untouched.
func (o *orchestrator) play(ctx context.Context, gameID, playerID string, fn func(g *entities.Game, p *entities.Player) bool) (*entities.Game, error) {
	if playerID == "" {
		return nil, errors.InvalidArgument("player_id is required")
	}

	unlock := o.locks.Lock(gameID)
	defer unlock()

	g, err := o.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Status != entities.GameStatusInProgress {
		return nil, errors.FailedPreconditionf("game %s is not in progress", gameID)
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return nil, errors.NotFoundf("player %s not found", playerID)
	}
	if !g.IsPlayerTurn(playerID) {
		return nil, errors.FailedPreconditionf("it is not %s's turn", p.Name)
	}

	if !fn(g, p) {
		return g, nil
	}

	if _, err := o.repo.Update(ctx, games.UpdateInput{Game: g}); err != nil {
		return nil, errors.Wrap(err, "failed to store game")
	}
	return g, nil
}
