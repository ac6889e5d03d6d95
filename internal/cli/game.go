package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game loop commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game
			if err := client.Get("/api/v1/game/state", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	for _, action := range []string{"play", "pause", "resume", "complete", "fail", "restart", "menu"} {
		cmd.AddCommand(newGameActionCmd(action))
	}
	cmd.AddCommand(newGameModeCmd())
	cmd.AddCommand(newGameTickCmd())

	return cmd
}

func newGameActionCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: "Send the " + action + " action to the game loop",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameState(request.GameStateRequest{Action: action})
		},
	}
}

func newGameModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mode <name>",
		Short: "Switch the active game mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return postGameState(request.GameStateRequest{Mode: args[0]})
		},
	}
}

func newGameTickCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tick <duration>",
		Short: "Advance a running game, e.g. tick 1.5s",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return err
			}
			return postGameState(request.GameStateRequest{TickMillis: int(d.Milliseconds())})
		},
	}
}

func postGameState(req request.GameStateRequest) error {
	var result response.Game
	if err := client.Post("/api/v1/game/state", req, &result); err != nil {
		return err
	}
	NewOutput(cfg.Output).Print(result)
	return nil
}
