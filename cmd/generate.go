package cmd

import (
	"fmt"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
	"github.com/spf13/cobra"
)

// NewGenerateCmd creates a command that runs a text generation
func NewGenerateCmd(c *cli.Container) *cobra.Command {
	var (
		maxTokens   int
		temperature float64
	)

	cmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "generate <model-id> <prompt>",
		Short:   "Generate text with a model",
		Long: `Send a prompt to a model and print the completion followed by its token usage.

max-tokens and temperature are forwarded unchanged; the server decides
whether they are acceptable.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := c.APIClient()
			if err != nil {
				return err
			}

			var opts []nexus.GenerateOption
			if cmd.Flags().Changed("max-tokens") {
				opts = append(opts, nexus.WithMaxTokens(maxTokens))
			}
			if cmd.Flags().Changed("temperature") {
				opts = append(opts, nexus.WithTemperature(temperature))
			}

			resp, err := client.GenerateText(cmd.Context(), args[0], args[1], opts...)
			if err != nil {
				c.Logger.Error("Generation failed", map[string]interface{}{
					"model_id": args[0],
					"error":    err.Error(),
				})
				return err
			}

			fmt.Fprintln(c.Out, resp.Text())
			c.Theme.Subtle().Fprintf(c.Out, "\ntokens: prompt %d, completion %d, total %d\n",
				resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxTokens, "max-tokens", nexus.DefaultMaxTokens, "Maximum number of tokens to generate")
	cmd.Flags().Float64Var(&temperature, "temperature", nexus.DefaultTemperature, "Sampling temperature")

	return cmd
}
