package cli

import (
	"github.com/spf13/cobra"

	"github.com/lmehner/blockworld/internal/model"
)

func newLogsCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show recent server log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []model.LogEntry

			if err := client.Get(refreshQuery("/api/v1/logs", refresh), &result); err != nil {
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
