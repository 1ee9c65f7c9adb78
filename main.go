package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shaharia-lab/nexusctl/cmd"
	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/dashboard"
)

var version = "0.0.1"
var commit = "none"
var date = "unknown"

func main() {
	container, err := cli.NewContainer(cli.InitOptions{
		Version:     version,
		Commit:      commit,
		Date:        date,
		Verbose:     os.Getenv("NEXUS_VERBOSE") != "",
		NoColor:     os.Getenv("NO_COLOR") != "",
		DotEnvFiles: []string{".env", ".env.local"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error during initialization: %v\n", err)
		os.Exit(1)
	}

	log := container.Logger
	defer log.Sync()

	log.Debug(fmt.Sprintf("%s started", container.App.Name), map[string]interface{}{"args": os.Args[1:]})

	rootCmd := cmd.NewRootCmd(container)
	rootCmd.AddCommand(
		cmd.NewInitCmd(container),
		cmd.NewConfigCmd(container),
		cmd.NewModelsCmd(container),
		cmd.NewGenerateCmd(container),
		cmd.NewUsageCmd(container),
		cmd.NewPaymentMethodsCmd(container),
		cmd.NewKeysCmd(container),
		cmd.NewSandboxCmd(container),
		cmd.NewUpdateCmd(container),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !dashboard.IsReported(err) {
			container.Theme.Error().Fprintln(os.Stderr, "Error:", err)
		}
		log.Error(fmt.Sprintf("%s exited with error", container.App.Name), map[string]interface{}{"error": err.Error()})
		log.Sync()
		os.Exit(1)
	}

	log.Debug(fmt.Sprintf("%s exited successfully", container.App.Name), nil)
}
