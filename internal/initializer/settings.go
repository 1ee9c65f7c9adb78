package initializer

import (
	"fmt"
	"net/url"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/shaharia-lab/nexusctl/internal/theme"
)

// ConfigureAPI asks for the inference API base URL and key
func (i *Initializer) ConfigureAPI() error {
	i.theme.Info().Fprintln(i.out, "\n🔑 API")

	baseURL := i.Config.API.BaseURL
	if err := i.ask(&survey.Input{
		Message: "API base URL:",
		Default: baseURL,
	}, &baseURL, survey.WithValidator(validateURL)); err != nil {
		return err
	}
	i.Config.API.BaseURL = baseURL

	message := "API key:"
	if i.Config.API.Key != "" {
		message = fmt.Sprintf("API key (current %s, leave empty to keep):", config.MaskSecret(i.Config.API.Key))
	}

	var key string
	if err := i.ask(&survey.Password{Message: message}, &key); err != nil {
		return err
	}
	if key != "" {
		i.Config.API.Key = key
	}
	if i.Config.API.Key == "" {
		return config.ErrMissingAPIKey
	}

	return nil
}

// ConfigureDashboard asks for the dashboard site root and customer id
func (i *Initializer) ConfigureDashboard() error {
	i.theme.Info().Fprintln(i.out, "\n💳 Dashboard")

	baseURL := i.Config.Dashboard.BaseURL
	if err := i.ask(&survey.Input{
		Message: "Dashboard base URL:",
		Default: baseURL,
	}, &baseURL, survey.WithValidator(validateURL)); err != nil {
		return err
	}
	i.Config.Dashboard.BaseURL = baseURL

	customerID := i.Config.Dashboard.CustomerID
	if err := i.ask(&survey.Input{
		Message: "Customer ID (leave empty to skip dashboard commands):",
		Default: customerID,
	}, &customerID); err != nil {
		return err
	}
	i.Config.Dashboard.CustomerID = customerID

	return nil
}

// ConfigurePreferences asks for the log level and output theme
func (i *Initializer) ConfigurePreferences() error {
	i.theme.Info().Fprintln(i.out, "\n🎨 Preferences")

	level := i.Config.Log.Level
	if level == "" {
		level = config.DefaultLogLevel
	}
	if err := i.ask(&survey.Select{
		Message: "Log level:",
		Options: []string{"debug", "info", "warn", "error"},
		Default: level,
	}, &level); err != nil {
		return err
	}
	i.Config.Log.Level = level

	themeName := i.Config.UI.Theme
	if themeName == "" {
		themeName = config.DefaultTheme
	}
	if err := i.ask(&survey.Select{
		Message: "Output theme:",
		Options: []string{string(theme.Default), string(theme.Professional), string(theme.Plain)},
		Default: themeName,
	}, &themeName); err != nil {
		return err
	}
	i.Config.UI.Theme = themeName

	return nil
}

func validateURL(ans interface{}) error {
	s, _ := ans.(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", s)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return nil
}
