package cmd

import (
	"fmt"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/filesystem"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewConfigCmd creates a config command
func NewConfigCmd(c *cli.Container) *cobra.Command {
	cfgCmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "config",
		Short:   "Manage nexusctl configuration",
		Long:    `Commands to manage and view your nexusctl configuration.`,
	}

	cfgCmd.AddCommand(NewConfigPreviewCmd(c), NewConfigPathCmd(c))
	return cfgCmd
}

// NewConfigPreviewCmd creates a command to preview the effective configuration
func NewConfigPreviewCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Preview the current configuration",
		Long: `Display the configuration nexusctl runs with: the config file merged with
environment overrides. The API key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(c.Config.Masked())
			if err != nil {
				return fmt.Errorf("error encoding configuration: %w", err)
			}

			c.Theme.Primary().Fprintln(c.Out, "\n📄 Configuration")
			c.Theme.Secondary().Fprintf(c.Out, "Located at: %s\n\n", c.Paths[filesystem.ConfigFilePath])
			fmt.Fprint(c.Out, string(data))
			return nil
		},
	}
}

// NewConfigPathCmd creates a command that prints the config file location
func NewConfigPathCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.Out, c.Paths[filesystem.ConfigFilePath])
		},
	}
}
