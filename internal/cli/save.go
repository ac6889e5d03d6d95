package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/protocasual/internal/api/response"
)

func newSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Show the persisted player record (-v prints the body)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Save
			if err := client.Get("/api/v1/save", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "checkpoint",
		Short: "Force a save to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Save
			if err := client.Post("/api/v1/save", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Saved " + result.Key)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset the player record to defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Save
			if err := client.Post("/api/v1/save/reset", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Reset " + result.Key)
			return nil
		},
	})

	return cmd
}
