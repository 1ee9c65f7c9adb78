package cmd

import (
	"fmt"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/spf13/cobra"
)

// NewUsageCmd creates a command that prints the usage statistics of the API key
func NewUsageCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "usage",
		Short:   "Show usage statistics",
		Long:    "Print the usage document the server keeps for the configured API key.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.APIClient()
			if err != nil {
				return err
			}

			usage, err := client.GetUsage(cmd.Context())
			if err != nil {
				return err
			}

			out, err := usage.Indent()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.Out, out)
			return nil
		},
	}
}
