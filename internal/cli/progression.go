package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/protocasual/internal/api/request"
	"github.com/mcoot/protocasual/internal/api/response"
	"github.com/mcoot/protocasual/internal/services/achievement"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Show the daily login reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DailyReward
			if err := client.Get("/api/v1/daily", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "claim",
		Short: "Claim today's reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.DailyReward
			if err := client.Post("/api/v1/daily/claim", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newTutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial [start|complete|skip|reset]",
		Short: "Show or drive the tutorial",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Tutorial

			if len(args) == 0 {
				if err := client.Get("/api/v1/tutorial", &result); err != nil {
					return err
				}
			} else if err := client.Post("/api/v1/tutorial/"+args[0], nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	return cmd
}

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Achievements
			if err := client.Get("/api/v1/achievements", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	var amount int
	progressCmd := &cobra.Command{
		Use:   "progress <id>",
		Short: "Add progress to an achievement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result achievement.Status
			req := request.ProgressRequest{Amount: amount}
			if err := client.Post(fmt.Sprintf("/api/v1/achievements/%s/progress", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(result)
			} else if result.Unlocked {
				out.PrintMessage(fmt.Sprintf("%s unlocked!", result.ID))
			} else {
				out.PrintMessage(fmt.Sprintf("%s progress: %d", result.ID, result.Progress))
			}
			return nil
		},
	}
	progressCmd.Flags().IntVarP(&amount, "amount", "n", 1, "Progress to add")
	cmd.AddCommand(progressCmd)

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard <id>",
		Short: "Show a leaderboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Leaderboard
			if err := client.Get(fmt.Sprintf("/api/v1/leaderboards/%s?limit=%d", args[0], limit), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to show")

	cmd.AddCommand(&cobra.Command{
		Use:   "submit <id> <score>",
		Short: "Submit a score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var score int
			if _, err := fmt.Sscanf(args[1], "%d", &score); err != nil {
				return fmt.Errorf("score must be an integer")
			}

			var result response.Leaderboard
			req := request.ScoreRequest{Score: score}
			if err := client.Post("/api/v1/leaderboards/"+args[0], req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show the current level",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Progress
			if err := client.Get("/api/v1/progress", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Complete the current level and collect its reward",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Progress
			if err := client.Post("/api/v1/progress/complete", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	})

	return cmd
}
