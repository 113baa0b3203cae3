package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <message>...",
		Short: "Send a chat message to the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body := map[string]string{"message": strings.Join(args, " ")}

			if err := client.Post("/api/v1/send", body, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("sent")
			return nil
		},
	}
}

func newLifecycleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lifecycle",
		Short: "Signal server lifecycle actions",
	}

	for _, action := range []string{"start", "stop", "restart"} {
		cmd.AddCommand(newLifecycleActionCmd(action))
	}

	return cmd
}

func newLifecycleActionCmd(action string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: "Signal the server to " + action,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/lifecycle/"+action, nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(action + " signalled")
			return nil
		},
	}
}
