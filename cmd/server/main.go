// Package main is the entry point for the villainous gRPC server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/villainous-api/cmd/server/client"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "villainous-api",
	Short: "Villainous game gRPC server",
	Long:  `villainous-api runs turn-based villain board games over gRPC: boards, decks, fate and per-villain objectives.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(validateDataCmd)
	rootCmd.AddCommand(repairStorageCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
