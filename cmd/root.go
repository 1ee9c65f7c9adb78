package cmd

import (
	"fmt"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/theme"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd(container *cli.Container) *cobra.Command {
	var noColor bool

	rootCmd := &cobra.Command{
		Version:       container.App.Version.VersionText(),
		Use:           "nexusctl",
		Short:         "Command line client for the NexusAI platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `nexusctl talks to a NexusAI deployment from your terminal.

List models, run text generation and inspect usage with your API key, or
manage the payment methods and API keys of your customer account.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				container.Theme.SetEnabled(false)
			}
			cmd.SetOut(container.Out)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			theme.Banner(container.Out, container.Theme, fmt.Sprintf("Welcome to %s", container.App.Name), 40, "NexusAI from your terminal")
			fmt.Fprintln(container.Out)

			if err := container.Config.RequireAPIKey(); err != nil {
				container.Theme.Warning().Fprintln(container.Out, "Please run 'nexusctl init' to connect to your NexusAI account.")
				return nil
			}

			container.Theme.Info().Fprintln(container.Out, "Run 'nexusctl --help' to see the available commands.")
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return rootCmd
}
