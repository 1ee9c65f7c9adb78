package cmd

import (
	"strconv"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/theme"
	"github.com/spf13/cobra"
)

// NewModelsCmd creates a command that lists the models available to the API key
func NewModelsCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "models",
		Short:   "List available models",
		Long:    "List the models the configured API key can use for text generation.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.APIClient()
			if err != nil {
				return err
			}

			models, err := client.ListModels(cmd.Context())
			if err != nil {
				c.Logger.Error("Failed to list models", map[string]interface{}{"error": err.Error()})
				return err
			}

			if len(models) == 0 {
				c.Theme.Subtle().Fprintln(c.Out, "No models available")
				return nil
			}

			table := theme.NewTable(c.Out, c.Theme, "ID", "Name", "Type", "Price/1K", "Description")
			for _, m := range models {
				table.Append([]string{
					m.ID.String(),
					m.Name,
					m.ModelType,
					strconv.FormatFloat(m.PricePer1KTokens, 'f', -1, 64),
					m.Description,
				})
			}
			table.Render()
			return nil
		},
	}
}
