package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/villainous-api/internal/config"
	"github.com/KirkDiggler/villainous-api/internal/redis"
	"github.com/KirkDiggler/villainous-api/internal/repositories/games"
)

var repairDelete bool

var repairStorageCmd = &cobra.Command{
	Use:   "repair-storage",
	Short: "Find stored games that no longer decode",
	Long: `Scan every game snapshot in the configured Redis store and report the ones
that fail to decode or are stored under the wrong key. With --delete the
corrupt entries are removed along with their index entries.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadWithEnv(configPath)
		if err != nil {
			return err
		}
		if cfg.Storage.Backend != config.BackendRedis {
			return fmt.Errorf("repair-storage needs the redis backend, got %q", cfg.Storage.Backend)
		}

		ctx := cmd.Context()
		client, err := connectRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		return repairStorage(ctx, cmd.OutOrStdout(), client, repairDelete)
	},
}

func init() {
	repairStorageCmd.Flags().BoolVar(&repairDelete, "delete", false, "Remove corrupt entries")
}

func repairStorage(ctx context.Context, w io.Writer, client redis.Client, remove bool) error {
	report, err := games.ScanCorrupted(ctx, client)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Checked %d games, found %d corrupt\n", report.Checked, len(report.Corrupt))
	for _, key := range report.Corrupt {
		fmt.Fprintf(w, "  - %s\n", key)
	}
	if len(report.Corrupt) == 0 || !remove {
		return nil
	}

	removed, err := games.RemoveCorrupted(ctx, client, report.Corrupt)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Removed %d entries\n", removed)
	return nil
}
