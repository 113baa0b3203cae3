package cli

import (
	"github.com/spf13/cobra"

	"github.com/lmehner/blockworld/internal/model"
)

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Inspect and update permission lists",
	}

	cmd.AddCommand(newListsGetCmd())
	cmd.AddCommand(newListsSetCmd())

	return cmd
}

func newListsGetCmd() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the current permission lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result model.ListSet

			if err := client.Get(refreshQuery("/api/v1/lists", refresh), &result); err != nil {
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

func newListsSetCmd() *cobra.Command {
	var adminlist, modlist, whitelist, blacklist []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace one or more permission lists",
		Long: `Replace the named lists on the server. Only lists given by flag
are changed; omitted lists keep their current contents. Passing an
empty value clears a list, e.g. --blacklist "".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var update model.ListUpdate
			if cmd.Flags().Changed("adminlist") {
				update.Adminlist = nonEmpty(adminlist)
			}
			if cmd.Flags().Changed("modlist") {
				update.Modlist = nonEmpty(modlist)
			}
			if cmd.Flags().Changed("whitelist") {
				update.Whitelist = nonEmpty(whitelist)
			}
			if cmd.Flags().Changed("blacklist") {
				update.Blacklist = nonEmpty(blacklist)
			}

			var result model.ListSet
			if err := client.Patch("/api/v1/lists", update, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&adminlist, "adminlist", nil, "New adminlist members")
	cmd.Flags().StringSliceVar(&modlist, "modlist", nil, "New modlist members")
	cmd.Flags().StringSliceVar(&whitelist, "whitelist", nil, "New whitelist members")
	cmd.Flags().StringSliceVar(&blacklist, "blacklist", nil, "New blacklist members")

	return cmd
}

// nonEmpty drops empty names so that --blacklist "" clears the list
// while still marshalling as a present, empty slice.
func nonEmpty(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}
