package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/sandbox"
	"github.com/spf13/cobra"
)

// NewSandboxCmd creates a command that runs a local NexusAI sandbox server
func NewSandboxCmd(c *cli.Container) *cobra.Command {
	var (
		port        string
		apiKey      string
		logRequests bool
	)

	cmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "sandbox",
		Short:   "Run a local NexusAI sandbox server",
		Long: `Start an in-memory NexusAI server seeded with demo models, cards and an
API key for customer 1. Point nexusctl at it with:

  NEXUS_API_KEY=<key> NEXUS_CUSTOMER_ID=1 nexusctl models`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := sandbox.NewStore()
			key := sandbox.Seed(store, apiKey)

			opts := []sandbox.Option{sandbox.WithLogger(c.Logger)}
			if logRequests {
				opts = append(opts, sandbox.WithRequestLogging())
			}

			srv := sandbox.NewServer(port, store, opts...)
			if err := srv.Start(); err != nil {
				return fmt.Errorf("failed to start sandbox: %w", err)
			}

			c.Theme.Success().Fprintf(c.Out, "Sandbox listening on http://localhost:%s\n", port)
			c.Theme.Info().Fprintf(c.Out, "API base URL:       http://localhost:%s/api/v1\n", port)
			c.Theme.Info().Fprintf(c.Out, "Dashboard base URL: http://localhost:%s\n", port)
			c.Theme.Info().Fprintf(c.Out, "API key:            %s (customer %s)\n", key.Key, key.CustomerID)
			c.Theme.Subtle().Fprintln(c.Out, "Press Ctrl+C to stop")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			return srv.Stop()
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8000", "Port to listen on")
	cmd.Flags().StringVar(&apiKey, "key", "nx-sandbox-key", "API key to seed for customer 1")
	cmd.Flags().BoolVar(&logRequests, "log-requests", false, "Log every request to stdout")

	return cmd
}
