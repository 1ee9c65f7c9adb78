// Package filesystem manages the nexusctl directories under the user's home.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shaharia-lab/nexusctl/internal/config"
)

type PathType string

const (
	configYamlFileName = "config.yaml"

	AppDirectory    PathType = "app"
	ConfigDirectory PathType = "config"
	ConfigFilePath  PathType = "config_file"
	LogsDirectory   PathType = "logs"
	LogsFilePath    PathType = "log_file"
)

// Filesystem resolves and creates the application paths.
type Filesystem struct {
	appCfg  *config.AppConfig
	homeDir func() (string, error)
}

// NewAppFilesystem creates a new Filesystem rooted at the user's home directory.
func NewAppFilesystem(appCfg *config.AppConfig) *Filesystem {
	return &Filesystem{
		appCfg:  appCfg,
		homeDir: os.UserHomeDir,
	}
}

// EnsureAllPaths creates ~/.<app>/{config,logs} and returns every known path.
// The config and log files themselves are created by their owners on first write.
func (s *Filesystem) EnsureAllPaths() (map[PathType]string, error) {
	paths := map[PathType]string{}

	appDirectory, err := s.ensureAppDirectory()
	if err != nil {
		return paths, err
	}
	paths[AppDirectory] = appDirectory

	for _, dir := range []PathType{ConfigDirectory, LogsDirectory} {
		p := filepath.Join(appDirectory, string(dir))
		if err := os.MkdirAll(p, 0750); err != nil {
			return paths, fmt.Errorf("failed to create %s directory: %w", dir, err)
		}
		paths[dir] = p
	}

	paths[ConfigFilePath] = filepath.Join(paths[ConfigDirectory], configYamlFileName)
	paths[LogsFilePath] = filepath.Join(paths[LogsDirectory], fmt.Sprintf("%s.log", strings.ToLower(s.appCfg.Name)))

	return paths, nil
}

func (s *Filesystem) ensureAppDirectory() (string, error) {
	homeDir, err := s.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	appDir := filepath.Join(homeDir, fmt.Sprintf(".%s", strings.ToLower(s.appCfg.Name)))
	if err := os.MkdirAll(appDir, 0750); err != nil {
		return "", err
	}

	return appDir, nil
}
