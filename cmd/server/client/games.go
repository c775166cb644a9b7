package client

import (
	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/villainous-api/internal/handlers/villainous/v1alpha1"
)

var (
	minPlayers   int
	maxPlayers   int
	winnerID     string
	statusFilter string
	withDetails  bool
)

var createGameCmd = &cobra.Command{
	Use:   "create-game",
	Short: "Create a waiting game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd, v1alpha1.MethodCreateGame, map[string]any{
			"min_players": minPlayers,
			"max_players": maxPlayers,
		})
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player [game-id] [villain-id] [name]",
	Short: "Seat a villain at a waiting game",
	Long: `Seat a villain. The name defaults to the villain id. Examples:

  add-player game_123 maleficent
  add-player game_123 jafar "Player Two"`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[1]
		if len(args) == 3 {
			name = args[2]
		}
		return invoke(cmd, v1alpha1.MethodAddPlayer, map[string]any{
			"game_id":    args[0],
			"villain_id": args[1],
			"name":       name,
		})
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove-player [game-id] [player-id]",
	Short: "Unseat a player before the game starts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodRemovePlayer, map[string]any{
			"game_id":   args[0],
			"player_id": args[1],
		})
	},
}

var startGameCmd = &cobra.Command{
	Use:   "start [game-id]",
	Short: "Deal hands and start turn 1",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodStartGame, map[string]any{"game_id": args[0]})
	},
}

var endGameCmd = &cobra.Command{
	Use:   "end-game [game-id]",
	Short: "Finish a game, optionally naming the winner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodEndGame, map[string]any{
			"game_id":   args[0],
			"winner_id": winnerID,
		})
	},
}

var listGamesCmd = &cobra.Command{
	Use:   "list",
	Short: "List games",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return invoke(cmd, v1alpha1.MethodListGames, map[string]any{"status": statusFilter})
	},
}

var stateCmd = &cobra.Command{
	Use:   "state [game-id]",
	Short: "Show the game state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodGetState, map[string]any{
			"game_id":         args[0],
			"include_details": withDetails,
		})
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [game-id] [player-id]",
	Short: "Show a player's objective progress",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodGetVictoryProgress, map[string]any{
			"game_id":   args[0],
			"player_id": args[1],
		})
	},
}

var logCmd = &cobra.Command{
	Use:   "log [game-id]",
	Short: "Show the action log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodGetActionLog, map[string]any{"game_id": args[0]})
	},
}

func init() {
	createGameCmd.Flags().IntVar(&minPlayers, "min", 0, "Minimum players (0 uses the default)")
	createGameCmd.Flags().IntVar(&maxPlayers, "max", 0, "Maximum players (0 uses the default)")
	endGameCmd.Flags().StringVar(&winnerID, "winner", "", "Winning player id")
	listGamesCmd.Flags().StringVar(&statusFilter, "status", "", "Only list games in this state (waiting, in_progress, finished)")
	stateCmd.Flags().BoolVar(&withDetails, "details", false, "Include hands, decks and boards")
}
