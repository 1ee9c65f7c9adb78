package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/shaharia-lab/nexusctl/internal/cli"
	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/shaharia-lab/nexusctl/internal/theme"
	"github.com/spf13/cobra"
)

// NewUpdateCmd creates a new update command
func NewUpdateCmd(c *cli.Container) *cobra.Command {
	var yes bool

	updateCmd := &cobra.Command{
		Version: c.App.Version.VersionText(),
		Use:     "update",
		Short:   "Check for updates and update the CLI",
		Long:    "Check for updates and if a new version is available, download and install it",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(c.Out, c.Theme, c.App.Repository, c.App.Version.Version, yes)
		},
	}

	updateCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Install without asking for confirmation")

	return updateCmd
}

func runUpdate(out io.Writer, t theme.Theme, repository config.Repository, currentAppVersion string, yes bool) error {
	t.Info().Fprintf(out, "Checking for updates for %s... [Current version: %s]\n", repository.Slug(), currentAppVersion)

	latest, found, err := selfupdate.DetectLatest(repository.Slug())
	if err != nil {
		return fmt.Errorf("error detecting version: %w", err)
	}

	if latest == nil {
		t.Warning().Fprintln(out, "No updates found")
		return nil
	}

	currentVersionNoV := strings.TrimPrefix(currentAppVersion, "v")
	latestVersionNoV := strings.TrimPrefix(latest.Version.String(), "v")

	if !found || latestVersionNoV == currentVersionNoV {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", currentAppVersion)
		return nil
	}

	fmt.Fprintf(out, "New version available: %s (current: %s)\n", latest.Version, currentAppVersion)
	fmt.Fprintf(out, "Release notes:\n%s\n", latest.ReleaseNotes)

	if !yes {
		confirm := false
		if err := survey.AskOne(&survey.Confirm{Message: "Do you want to update?"}, &confirm); err != nil {
			return err
		}
		if !confirm {
			fmt.Fprintln(out, "Update cancelled")
			return nil
		}
	}

	fmt.Fprintln(out, "Downloading and installing update...")
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("error updating binary: %w", err)
	}

	t.Success().Fprintf(out, "Successfully updated to version %s\n", latest.Version)
	return nil
}
