package client

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/villainous-api/internal/entities"
	"github.com/KirkDiggler/villainous-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/villainous-api/internal/handlers/villainous/v1alpha1"
	"github.com/KirkDiggler/villainous-api/internal/orchestrators/turn"
)

var flowRounds int

var testFlowCmd = &cobra.Command{
	Use:   "test-flow [villain-ids...]",
	Short: "Play a scripted game end to end",
	Long: `Create a game, seat the villains, then have every villain move one step
and gain power each turn until someone wins or the rounds run out.

  test-flow maleficent jafar --rounds 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		villains := args
		if len(villains) == 0 {
			villains = []string{entities.VillainMaleficent, entities.VillainJafar}
		}

		client, cleanup, err := createGameClient()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		return runFlow(ctx, client, cmd.OutOrStdout(), villains, flowRounds)
	},
}

func init() {
	testFlowCmd.Flags().IntVar(&flowRounds, "rounds", 3, "Rounds to play")
}

type stateReply struct {
	GameID string            `json:"game_id"`
	State  entities.Snapshot `json:"state"`
}

type stepReply struct {
	Result       turn.Result       `json:"result"`
	State        entities.Snapshot `json:"state"`
	NextPlayerID string            `json:"next_player_id"`
	WinnerID     string            `json:"winner_id"`
}

type logReply struct {
	Entries []string `json:"entries"`
}

func call(ctx context.Context, c caller, method string, req map[string]any, out any) error {
	resp, err := c.CallMap(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, errors.FromGRPCError(err))
	}
	return v1alpha1.Decode(resp, out)
}

// runFlow plays until someone wins or the rounds run out, then prints the log
func runFlow(ctx context.Context, c caller, w io.Writer, villains []string, rounds int) error {
	var created stateReply
	if err := call(ctx, c, v1alpha1.MethodCreateGame, map[string]any{}, &created); err != nil {
		return err
	}
	gameID := created.GameID
	fmt.Fprintf(w, "Created game %s\n", gameID)

	for _, villain := range villains {
		if err := call(ctx, c, v1alpha1.MethodAddPlayer, map[string]any{
			"game_id":    gameID,
			"villain_id": villain,
			"name":       villain,
		}, &stateReply{}); err != nil {
			return err
		}
	}

	var state stateReply
	if err := call(ctx, c, v1alpha1.MethodStartGame, map[string]any{"game_id": gameID}, &state); err != nil {
		return err
	}

	winner := ""
	for step := 0; step < rounds*len(villains) && winner == ""; step++ {
		current := state.State.Players[state.State.CurrentPlayer]
		ids := map[string]any{"game_id": gameID, "player_id": current.ID}

		var moved stepReply
		if err := call(ctx, c, v1alpha1.MethodMove, with(ids, "position", (current.Location+1)%entities.BoardSize), &moved); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\n", moved.Result.Message)

		var acted stepReply
		if err := call(ctx, c, v1alpha1.MethodPerformAction, with(ids, "action", string(entities.ActionGainPower)), &acted); err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\n", acted.Result.Message)
		if acted.WinnerID != "" {
			winner = acted.WinnerID
			break
		}

		var ended stepReply
		if err := call(ctx, c, v1alpha1.MethodEndTurn, ids, &ended); err != nil {
			return err
		}
		winner = ended.WinnerID
		state = stateReply{GameID: gameID, State: ended.State}
	}

	if winner != "" {
		fmt.Fprintf(w, "Winner: %s\n", winner)
	} else {
		fmt.Fprintf(w, "No winner after %d rounds\n", rounds)
	}

	var log logReply
	if err := call(ctx, c, v1alpha1.MethodGetActionLog, map[string]any{"game_id": gameID}, &log); err != nil {
		return err
	}
	fmt.Fprintln(w, "Action log:")
	for _, entry := range log.Entries {
		fmt.Fprintf(w, "  %s\n", entry)
	}
	return nil
}

func with(base map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
