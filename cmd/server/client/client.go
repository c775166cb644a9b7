// Package client provides commands for playing against the villainous gRPC service
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/villainous-api/internal/errors"
	v1alpha1 "github.com/KirkDiggler/villainous-api/internal/handlers/villainous/v1alpha1"
)

var (
	// Connection flags
	serverAddr string
	timeout    time.Duration
)

// ClientCmd is the root command for all client commands
var ClientCmd = &cobra.Command{
	Use:   "client",
	Short: "Client commands for the villainous game service",
	Long:  `Client commands create games, seat villains and play turns by making real gRPC requests.`,
}

func init() {
	ClientCmd.PersistentFlags().StringVar(&serverAddr, "server", "localhost:50051", "gRPC server address")
	ClientCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	// Table commands
	ClientCmd.AddCommand(createGameCmd)
	ClientCmd.AddCommand(addPlayerCmd)
	ClientCmd.AddCommand(removePlayerCmd)
	ClientCmd.AddCommand(startGameCmd)
	ClientCmd.AddCommand(endGameCmd)
	ClientCmd.AddCommand(listGamesCmd)

	// Turn commands
	ClientCmd.AddCommand(moveCmd)
	ClientCmd.AddCommand(actCmd)
	ClientCmd.AddCommand(endTurnCmd)

	// Read commands
	ClientCmd.AddCommand(stateCmd)
	ClientCmd.AddCommand(progressCmd)
	ClientCmd.AddCommand(logCmd)

	ClientCmd.AddCommand(testFlowCmd)
}

// caller is the part of the game client the commands use
type caller interface {
	CallMap(ctx context.Context, method string, req map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// createConnection creates a gRPC connection to the server
func createConnection() (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(serverAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to server: %w", err)
	}

	return conn, nil
}

// createGameClient creates a game service client
func createGameClient() (*v1alpha1.GameServiceClient, func(), error) {
	conn, err := createConnection()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = conn.Close() // nolint:errcheck // safe to ignore in cleanup
	}

	return v1alpha1.NewGameServiceClient(conn), cleanup, nil
}

// invoke calls one method and prints the response
func invoke(cmd *cobra.Command, method string, req map[string]any) error {
	client, cleanup, err := createGameClient()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	resp, err := client.CallMap(ctx, method, req)
	if err != nil {
		return fmt.Errorf("%s failed: %w", method, errors.FromGRPCError(err))
	}

	return printResponse(cmd.OutOrStdout(), resp)
}

func printResponse(w io.Writer, resp *structpb.Struct) error {
	raw, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(resp)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(raw))
	return err
}
