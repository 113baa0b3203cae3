package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/lmehner/blockworld/internal/model"
)

func newPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players [name]",
		Short: "Show known players, or one player's history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)

			if len(args) == 1 {
				var result model.PlayerView
				path := "/api/v1/players/" + url.PathEscape(args[0])
				if err := client.Get(path, &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}

			var result []model.PlayerView
			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}
}

func newOnlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "online",
		Short: "Show players currently online",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []string

			if err := client.Get("/api/v1/online", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
