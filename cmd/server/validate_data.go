package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/villainous-api/internal/config"
	"github.com/KirkDiggler/villainous-api/internal/gamedata"
	"github.com/KirkDiggler/villainous-api/internal/victory"
)

var validateDataCmd = &cobra.Command{
	Use:   "validate-data",
	Short: "Check every board and card set the server would load",
	Long: `Load the configured game data (embedded unless game.data_dir is set) and
check each villain's board layout, card counts and objective.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return err
		}
		loader, err := buildLoader(cfg)
		if err != nil {
			return err
		}
		return validateData(cmd.OutOrStdout(), loader, victory.NewEvaluator())
	},
}

// validateData prints one line per villain and fails if any is unplayable
func validateData(w io.Writer, loader *gamedata.FileLoader, evaluator *victory.Evaluator) error {
	villains := loader.VillainIDs()
	if len(villains) == 0 {
		return fmt.Errorf("no boards found")
	}

	failed := 0
	for _, villainID := range villains {
		problems := villainProblems(loader, evaluator, villainID)
		if len(problems) == 0 {
			cards, _ := loader.LoadCardSet(villainID)
			fmt.Fprintf(w, "ok    %-16s %d villain cards, %d fate cards\n",
				villainID, len(cards.VillainCards), len(cards.FateCards))
			continue
		}

		failed++
		for _, problem := range problems {
			fmt.Fprintf(w, "FAIL  %-16s %s\n", villainID, problem)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d villains failed validation", failed, len(villains))
	}
	return nil
}

func villainProblems(loader *gamedata.FileLoader, evaluator *victory.Evaluator, villainID string) []string {
	var problems []string

	board, err := loader.LoadBoard(villainID)
	if err == nil {
		err = gamedata.ValidateBoard(board)
	}
	if err != nil {
		problems = append(problems, err.Error())
	}

	cards, err := loader.LoadCardSet(villainID)
	switch {
	case err != nil:
		problems = append(problems, err.Error())
	case len(cards.VillainCards) == 0:
		problems = append(problems, "no villain cards")
	case len(cards.FateCards) == 0:
		problems = append(problems, "no fate cards")
	}

	if _, ok := evaluator.Condition(villainID); !ok {
		problems = append(problems, "no objective defined")
	}
	return problems
}
