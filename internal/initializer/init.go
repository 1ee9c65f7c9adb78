// Package initializer runs the interactive "nexusctl init" setup.
package initializer

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/shaharia-lab/nexusctl/internal/configstore"
	"github.com/shaharia-lab/nexusctl/internal/logger"
	"github.com/shaharia-lab/nexusctl/internal/theme"
)

// AskFunc asks a single survey question. survey.AskOne in production.
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Initializer handles the interactive setup process
type Initializer struct {
	Config       config.Config
	IsUpdateMode bool

	configManager configstore.ConfigManager
	log           logger.Logger
	theme         theme.Theme
	out           io.Writer
	ask           AskFunc
}

// NewInitializer creates a new initializer that asks questions on the terminal
func NewInitializer(log logger.Logger, t theme.Theme, out io.Writer, configManager configstore.ConfigManager) *Initializer {
	return &Initializer{
		log:           log,
		theme:         t,
		out:           out,
		configManager: configManager,
		ask:           survey.AskOne,
	}
}

// WithAsk replaces the question function
func (i *Initializer) WithAsk(ask AskFunc) *Initializer {
	i.ask = ask
	return i
}

// Run asks for every setting and saves the result
func (i *Initializer) Run() error {
	i.log.Debug("Starting configuration process", nil)

	var err error
	i.IsUpdateMode = i.configManager.ConfigExists()

	if i.IsUpdateMode {
		i.Config, err = i.configManager.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading configuration: %w", err)
		}

		i.theme.Primary().Fprintln(i.out, "🔄 Configuration Update Mode")
		i.theme.Warning().Fprintln(i.out, "Press Enter to keep current values, or provide new ones.")
	} else {
		i.Config = config.Config{}.Default()
		i.theme.Primary().Fprintln(i.out, "🔧 Initial Configuration")
		i.theme.Info().Fprintln(i.out, "Connect nexusctl to your NexusAI account. You can change this later with 'nexusctl init'.")
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"API", i.ConfigureAPI},
		{"dashboard", i.ConfigureDashboard},
		{"preferences", i.ConfigurePreferences},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			i.log.Error("Configuration step failed", map[string]interface{}{"step": step.name, "error": err.Error()})
			return fmt.Errorf("error configuring %s: %w", step.name, err)
		}
	}

	if err := i.configManager.SaveConfig(i.Config); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	i.log.Info("Configuration saved", map[string]interface{}{
		"api_base_url":       i.Config.API.BaseURL,
		"dashboard_base_url": i.Config.Dashboard.BaseURL,
		"customer_id":        i.Config.Dashboard.CustomerID,
	})
	i.theme.Success().Fprintln(i.out, "\n✅ Configuration updated successfully!")
	i.theme.Info().Fprintln(i.out, "Run 'nexusctl models' to list the models available to your key.")
	return nil
}
