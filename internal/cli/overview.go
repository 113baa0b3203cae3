package cli

import (
	"github.com/spf13/cobra"

	"github.com/lmehner/blockworld/internal/model"
)

func newOverviewCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show the server overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.Overview

			if err := client.Get(refreshQuery("/api/v1/overview", refresh), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "Bypass the cache and fetch fresh state")

	return cmd
}
