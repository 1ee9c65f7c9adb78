package cmd

import (
	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
	"github.com/spf13/cobra"
)

// NewKeysCmd creates the keys command group
func NewKeysCmd(c *cli.Container) *cobra.Command {
	keysCmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "keys",
		Short:   "Manage API keys",
		Long:    "List, create and enable or disable the API keys of your customer account.",
	}

	keysCmd.AddCommand(
		newKeysListCmd(c),
		newKeysCreateCmd(c),
		newKeysToggleCmd(c),
	)
	return keysCmd
}

func newKeysListCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}
			return h.LoadAPIKeys(cmd.Context())
		},
	}
}

func newKeysCreateCmd(c *cli.Container) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API key",
		Long:  "Create an API key. Without --name you are asked for one; an empty answer cancels.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("name") {
				return h.CreateAPIKeyNamed(cmd.Context(), name)
			}
			return h.CreateAPIKey(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new key")

	return cmd
}

func newKeysToggleCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <key-id>",
		Short: "Enable or disable an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := c.Dashboard()
			if err != nil {
				return err
			}
			return h.ToggleAPIKey(cmd.Context(), nexus.ID(args[0]))
		},
	}
}
