// Package cli wires the dependencies shared by nexusctl commands.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/shaharia-lab/nexusctl/internal/configstore"
	"github.com/shaharia-lab/nexusctl/internal/dashboard"
	"github.com/shaharia-lab/nexusctl/internal/filesystem"
	"github.com/shaharia-lab/nexusctl/internal/logger"
	"github.com/shaharia-lab/nexusctl/internal/nexus"
	"github.com/shaharia-lab/nexusctl/internal/theme"
)

// Container holds all application dependencies
type Container struct {
	App         *config.AppConfig
	Config      config.Config
	ConfigStore configstore.ConfigManager
	Filesystem  *filesystem.Filesystem
	Paths       map[filesystem.PathType]string
	Logger      logger.Logger
	Theme       theme.Theme
	Out         io.Writer
}

// InitOptions contains options for initialization
type InitOptions struct {
	Version string
	Commit  string
	Date    string

	// LogLevel overrides the configured level when set
	LogLevel logger.LogLevel
	// Verbose mirrors log entries to stderr
	Verbose bool
	// NoColor disables styled output
	NoColor bool
	// DotEnvFiles are loaded before environment overrides are applied
	DotEnvFiles []string
}

// NewContainer creates and initializes all application dependencies
func NewContainer(opts InitOptions) (*Container, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}

	c := &Container{
		App: config.NewAppConfig(config.WithVersion(config.Version{
			Version: opts.Version,
			Commit:  opts.Commit,
			Date:    opts.Date,
		})),
		Out: os.Stdout,
	}

	c.Filesystem = filesystem.NewAppFilesystem(c.App)

	var err error
	c.Paths, err = c.Filesystem.EnsureAllPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to ensure all application paths: %w", err)
	}

	if err := config.LoadDotEnv(opts.DotEnvFiles...); err != nil {
		return nil, err
	}

	c.ConfigStore = configstore.NewDefaultConfigManager(c.Paths[filesystem.ConfigFilePath])
	fileCfg, err := c.ConfigStore.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = fileCfg.ApplyEnv(os.LookupEnv)

	level := opts.LogLevel
	if level == "" {
		level, _ = logger.ParseLevel(c.Config.Log.Level)
	}

	logCfg := logger.Config{
		LogLevel: level,
		FilePath: c.Paths[filesystem.LogsFilePath],
	}
	if opts.Verbose {
		logCfg.Console = os.Stderr
	}

	c.Logger, err = logger.NewZapLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.Theme = theme.ByName(c.Config.UI.Theme)
	if opts.NoColor {
		c.Theme.SetEnabled(false)
	}

	c.Logger.Debug("Container initialized", map[string]interface{}{
		"version":     c.App.Version.Version,
		"config_file": c.Paths[filesystem.ConfigFilePath],
	})

	return c, nil
}

// APIClient returns a client for the inference API
func (c *Container) APIClient() (*nexus.Client, error) {
	if err := c.Config.RequireAPIKey(); err != nil {
		return nil, err
	}
	return nexus.NewClient(c.Config.API.Key,
		nexus.WithBaseURL(c.Config.API.BaseURL),
		nexus.WithUserAgent(c.userAgent()),
	), nil
}

// DashboardOptions returns handler options wired to the terminal. Callers
// may replace any field before calling dashboard.NewHandlers.
func (c *Container) DashboardOptions() (dashboard.Options, error) {
	if err := c.Config.RequireCustomer(); err != nil {
		return dashboard.Options{}, err
	}

	client := nexus.NewClient(c.Config.API.Key,
		nexus.WithBaseURL(c.Config.Dashboard.BaseURL),
		nexus.WithUserAgent(c.userAgent()),
	)
	view := &dashboard.TableView{Out: c.Out, Theme: c.Theme}

	return dashboard.Options{
		Client:      client,
		CustomerID:  nexus.ID(c.Config.Dashboard.CustomerID),
		PaymentView: view,
		KeysView:    view,
		Notifier:    &dashboard.ThemeNotifier{Out: c.Out, Theme: c.Theme},
		Prompter:    dashboard.NewSurveyPrompter(),
		Logger:      c.Logger,
	}, nil
}

// Dashboard returns handlers for the configured customer
func (c *Container) Dashboard() (*dashboard.Handlers, error) {
	opts, err := c.DashboardOptions()
	if err != nil {
		return nil, err
	}
	return dashboard.NewHandlers(opts)
}

func (c *Container) userAgent() string {
	return fmt.Sprintf("%s/%s", c.App.Name, c.App.Version.Version)
}
