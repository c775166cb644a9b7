// Package v1alpha1 handles the villainous game gRPC service
package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/game"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

var _ GameServiceServer = (*Handler)(nil)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	GameService game.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c.GameService == nil {
		return errors.InvalidArgument("game service is required")
	}
	return nil
}

// Handler implements the game gRPC service
type Handler struct {
	gameService game.Service
}

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("handler config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Handler{
		gameService: cfg.GameService,
	}, nil
}

type gameResponse struct {
	GameID   string             `json:"game_id,omitempty"`
	PlayerID string             `json:"player_id,omitempty"`
	State    *entities.Snapshot `json:"state"`
}

type stepResponse struct {
	Result       *turn.Result       `json:"result"`
	State        *entities.Snapshot `json:"state"`
	NextPlayerID string             `json:"next_player_id,omitempty"`
	WinnerID     string             `json:"winner_id,omitempty"`
}

type detailedStateResponse struct {
	State *entities.Snapshot `json:"state"`
	Game  *entities.Game     `json:"game"`
}

type progressResponse struct {
	PlayerID    string           `json:"player_id"`
	Description string           `json:"description"`
	Progress    victory.Progress `json:"progress"`
}

type logResponse struct {
	Entries []string `json:"entries"`
}

type listResponse struct {
	Games []*entities.Snapshot `json:"games"`
}

// CreateGame opens a table. Accepts optional min_players and max_players.
func (h *Handler) CreateGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.CreateGameInput{
		MinPlayers: r.integer("min_players"),
		MaxPlayers: r.integer("max_players"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.CreateGame(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(gameResponse{GameID: output.GameID, State: output.State})
}

// AddPlayer seats a villain in a waiting game
func (h *Handler) AddPlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.AddPlayerInput{
		GameID:    r.required("game_id"),
		Name:      r.required("name"),
		VillainID: r.required("villain_id"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.AddPlayer(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(gameResponse{GameID: input.GameID, PlayerID: output.PlayerID, State: output.State})
}

// RemovePlayer unseats a player from a waiting game
func (h *Handler) RemovePlayer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.RemovePlayerInput{
		GameID:   r.required("game_id"),
		PlayerID: r.required("player_id"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.RemovePlayer(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(gameResponse{GameID: input.GameID, State: output.State})
}

// StartGame deals hands and begins turn 1
func (h *Handler) StartGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.StartGameInput{GameID: r.required("game_id")}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.StartGame(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(gameResponse{GameID: input.GameID, State: output.State})
}

// Move moves the current player's villain to position
func (h *Handler) Move(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.MoveInput{
		GameID:   r.required("game_id"),
		PlayerID: r.required("player_id"),
		Position: r.integer("position"),
	}
	if !r.has("position") {
		r.vb.RequiredField("position")
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.Move(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(stepResponse{Result: output.Result, State: output.State})
}

// PerformAction spends one action. Arguments travel in the params object.
func (h *Handler) PerformAction(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	params := r.sub("params")
	input := &game.PerformActionInput{
		GameID:   r.required("game_id"),
		PlayerID: r.required("player_id"),
		Action:   entities.ActionType(r.required("action")),
		Params: game.ActionParams{
			CardID:         params.str("card_id"),
			CardIDs:        params.strings("card_ids"),
			TargetID:       params.str("target_id"),
			TargetPlayerID: params.str("target_player_id"),
			HeroID:         params.str("hero_id"),
			ItemID:         params.str("item_id"),
			TargetLocation: params.optionalInt("target_location"),
		},
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.PerformAction(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if output.WinnerID != "" {
		slog.Info("game won",
			"game_id", input.GameID,
			"winner", output.WinnerID,
		)
	}

	return response(stepResponse{Result: output.Result, State: output.State, WinnerID: output.WinnerID})
}

// EndTurn refills the hand and passes play on
func (h *Handler) EndTurn(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.EndTurnInput{
		GameID:   r.required("game_id"),
		PlayerID: r.required("player_id"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.EndTurn(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(stepResponse{
		Result:       output.Result,
		State:        output.State,
		NextPlayerID: output.NextPlayerID,
		WinnerID:     output.WinnerID,
	})
}

// EndGame finishes a game with an optional winner_id
func (h *Handler) EndGame(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.EndGameInput{
		GameID:   r.required("game_id"),
		WinnerID: r.str("winner_id"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.EndGame(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(gameResponse{GameID: input.GameID, State: output.State})
}

// GetState returns the public snapshot, plus the full game when
// include_details is true
func (h *Handler) GetState(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.GetStateInput{GameID: r.required("game_id")}
	details := r.boolean("include_details")
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.GetState(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	if details {
		return response(detailedStateResponse{State: output.State, Game: output.Game})
	}
	return response(gameResponse{GameID: input.GameID, State: output.State})
}

// GetVictoryProgress reports a player's objective
func (h *Handler) GetVictoryProgress(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.GetVictoryProgressInput{
		GameID:   r.required("game_id"),
		PlayerID: r.required("player_id"),
	}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.GetVictoryProgress(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(progressResponse{
		PlayerID:    input.PlayerID,
		Description: output.Description,
		Progress:    output.Progress,
	})
}

// GetActionLog returns every log entry in order
func (h *Handler) GetActionLog(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	input := &game.GetActionLogInput{GameID: r.required("game_id")}
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.GetActionLog(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	entries := output.Entries
	if entries == nil {
		entries = []string{}
	}
	return response(logResponse{Entries: entries})
}

// ListGames lists snapshots, optionally filtered by status
func (h *Handler) ListGames(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequest(req)
	status := entities.GameStatus(r.str("status"))
	if err := r.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.gameService.ListGames(ctx, &game.ListGamesInput{Status: status})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return response(listResponse{Games: output.Games})
}
