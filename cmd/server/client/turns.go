package client

import (
	"strconv"

	"github.com/spf13/cobra"

	v1alpha1 "github.com/KirkDiggler/villainous-api/internal/handlers/villainous/v1alpha1"
)

var (
	cardID         string
	cardIDs        []string
	targetID       string
	targetPlayerID string
	heroID         string
	itemID         string
	targetLocation int
)

var moveCmd = &cobra.Command{
	Use:   "move [game-id] [player-id] [position]",
	Short: "Move the current villain to a board position",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		position, err := strconv.Atoi(args[2])
		if err != nil {
			return err
		}
		return invoke(cmd, v1alpha1.MethodMove, map[string]any{
			"game_id":   args[0],
			"player_id": args[1],
			"position":  position,
		})
	},
}

var actCmd = &cobra.Command{
	Use:   "act [game-id] [player-id] [action]",
	Short: "Perform an action at the current location",
	Long: `Perform one action. Examples:

  act game_123 player_1 gain_power
  act game_123 player_1 play_card --card maleficent_curse_1 --location 2
  act game_123 player_1 discard --cards card_a,card_b
  act game_123 player_1 fate --target-player player_2 --location 1
  act game_123 player_1 vanquish --hero prince_philip`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		params := map[string]any{}
		set := func(key, value string) {
			if value != "" {
				params[key] = value
			}
		}
		set("card_id", cardID)
		set("target_id", targetID)
		set("target_player_id", targetPlayerID)
		set("hero_id", heroID)
		set("item_id", itemID)
		if len(cardIDs) > 0 {
			ids := make([]any, 0, len(cardIDs))
			for _, id := range cardIDs {
				ids = append(ids, id)
			}
			params["card_ids"] = ids
		}
		if targetLocation >= 0 {
			params["target_location"] = targetLocation
		}

		return invoke(cmd, v1alpha1.MethodPerformAction, map[string]any{
			"game_id":   args[0],
			"player_id": args[1],
			"action":    args[2],
			"params":    params,
		})
	},
}

var endTurnCmd = &cobra.Command{
	Use:   "end-turn [game-id] [player-id]",
	Short: "Refill the hand and pass the turn",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return invoke(cmd, v1alpha1.MethodEndTurn, map[string]any{
			"game_id":   args[0],
			"player_id": args[1],
		})
	},
}

func init() {
	actCmd.Flags().StringVar(&cardID, "card", "", "Card id")
	actCmd.Flags().StringSliceVar(&cardIDs, "cards", nil, "Card ids to discard")
	actCmd.Flags().StringVar(&targetID, "target", "", "Target card or hero id")
	actCmd.Flags().StringVar(&targetPlayerID, "target-player", "", "Opponent for fate")
	actCmd.Flags().StringVar(&heroID, "hero", "", "Hero id")
	actCmd.Flags().StringVar(&itemID, "item", "", "Item id")
	actCmd.Flags().IntVar(&targetLocation, "location", -1, "Target location position")
}
