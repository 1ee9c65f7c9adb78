package configstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigManager_LoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, path string)
		want    config.Config
		wantErr bool
	}{
		{
			name:  "missing file writes defaults",
			setup: func(t *testing.T, path string) {},
			want:  config.Config{}.Default(),
		},
		{
			name: "empty file writes defaults",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, nil, 0600))
			},
			want: config.Config{}.Default(),
		},
		{
			name: "partial file is completed with defaults",
			setup: func(t *testing.T, path string) {
				data := "api:\n  key: nx-file\ndashboard:\n  customer_id: \"7\"\n"
				require.NoError(t, os.WriteFile(path, []byte(data), 0600))
			},
			want: func() config.Config {
				c := config.Config{}.Default()
				c.API.Key = "nx-file"
				c.Dashboard.CustomerID = "7"
				return c
			}(),
		},
		{
			name: "invalid yaml",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0600))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config", "config.yaml")
			require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
			tt.setup(t, path)

			cm := NewDefaultConfigManager(path)
			cfg, err := cm.LoadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
			assert.True(t, cm.ConfigExists())
		})
	}
}

func TestDefaultConfigManager_SaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cm := NewDefaultConfigManager(path)
	assert.False(t, cm.ConfigExists())

	cfg := config.Config{}.Default()
	cfg.API.Key = "nx-saved"
	cfg.Dashboard.CustomerID = "1"
	require.NoError(t, cm.SaveConfig(cfg))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := cm.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultConfigManager_NoPath(t *testing.T) {
	cm := NewDefaultConfigManager("")
	_, err := cm.LoadConfig()
	assert.Error(t, err)
	assert.Error(t, cm.SaveConfig(config.Config{}))
}
