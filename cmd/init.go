package cmd

import (
	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/initializer"
	"github.com/spf13/cobra"
)

// NewInitCmd creates an interactive init command
func NewInitCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "init",
		Short:   "Configure nexusctl with a guided setup",
		Long:    `Start an interactive wizard that asks for your API endpoint, API key and customer account.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Info("Starting initialization", nil)

			setup := initializer.NewInitializer(c.Logger, c.Theme, c.Out, c.ConfigStore)
			if err := setup.Run(); err != nil {
				c.Logger.Errorf("Initialization failed: %v", err)
				return err
			}

			c.Logger.Info("Initialization complete", nil)
			c.Theme.Info().Fprintln(c.Out, "Run 'nexusctl help' to see the available commands.")
			return nil
		},
	}

	return cmd
}
