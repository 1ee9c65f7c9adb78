package initializer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shaharia-lab/nexusctl/internal/config"
	"github.com/shaharia-lab/nexusctl/internal/configstore"
	"github.com/shaharia-lab/nexusctl/internal/logger"
	"github.com/shaharia-lab/nexusctl/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// scriptedAsk answers prompts by message. Missing answers keep the default.
func scriptedAsk(answers map[string]string) AskFunc {
	return func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
		var message, def string
		switch q := p.(type) {
		case *survey.Input:
			message, def = q.Message, q.Default
		case *survey.Password:
			message = q.Message
		case *survey.Select:
			message = q.Message
			def, _ = q.Default.(string)
		}

		ans, ok := answers[message]
		if !ok {
			ans = def
		}
		if ans == "!interrupt" {
			return terminal.InterruptErr
		}
		*(response.(*string)) = ans
		return nil
	}
}

func newTestInitializer(cm configstore.ConfigManager, answers map[string]string) (*Initializer, *bytes.Buffer) {
	var out bytes.Buffer
	i := NewInitializer(logger.Discard, theme.NewPlainTheme(), &out, cm).WithAsk(scriptedAsk(answers))
	return i, &out
}

func TestInitializer_Run_FirstTime(t *testing.T) {
	cm := new(configstore.MockConfigManager)
	cm.On("ConfigExists").Return(false)
	cm.On("SaveConfig", mock.Anything).Return(nil)

	i, out := newTestInitializer(cm, map[string]string{
		"API key:":    "nx-new-key",
		"Customer ID (leave empty to skip dashboard commands):": "1",
		"Output theme:": "plain",
	})

	require.NoError(t, i.Run())
	assert.False(t, i.IsUpdateMode)

	want := config.Config{}.Default()
	want.API.Key = "nx-new-key"
	want.Dashboard.CustomerID = "1"
	want.UI.Theme = "plain"
	assert.Equal(t, want, cm.ConfigSaved)
	assert.Contains(t, out.String(), "Configuration updated successfully")
	cm.AssertExpectations(t)
}

func TestInitializer_Run_UpdateKeepsKey(t *testing.T) {
	existing := config.Config{}.Default()
	existing.API.Key = "nx-existing-1234"
	existing.Dashboard.CustomerID = "5"

	cm := new(configstore.MockConfigManager)
	cm.On("ConfigExists").Return(true)
	cm.On("LoadConfig").Return(existing, nil)
	cm.On("SaveConfig", mock.Anything).Return(nil)

	i, _ := newTestInitializer(cm, map[string]string{
		"API key (current ********1234, leave empty to keep):": "",
		"API base URL:": "https://api.example.com/api/v1",
	})

	require.NoError(t, i.Run())
	assert.True(t, i.IsUpdateMode)
	assert.Equal(t, "nx-existing-1234", cm.ConfigSaved.API.Key)
	assert.Equal(t, "https://api.example.com/api/v1", cm.ConfigSaved.API.BaseURL)
	assert.Equal(t, "5", cm.ConfigSaved.Dashboard.CustomerID)
}

func TestInitializer_Run_Errors(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(cm *configstore.MockConfigManager)
		answers map[string]string
		wantErr string
	}{
		{
			name: "load failure",
			setup: func(cm *configstore.MockConfigManager) {
				cm.On("ConfigExists").Return(true)
				cm.On("LoadConfig").Return(config.Config{}, errors.New("corrupt"))
			},
			wantErr: "error loading configuration",
		},
		{
			name: "no api key",
			setup: func(cm *configstore.MockConfigManager) {
				cm.On("ConfigExists").Return(false)
			},
			wantErr: "no API key configured",
		},
		{
			name: "interrupted",
			setup: func(cm *configstore.MockConfigManager) {
				cm.On("ConfigExists").Return(false)
			},
			answers: map[string]string{"API base URL:": "!interrupt"},
			wantErr: "interrupt",
		},
		{
			name: "save failure",
			setup: func(cm *configstore.MockConfigManager) {
				cm.On("ConfigExists").Return(false)
				cm.On("SaveConfig", mock.Anything).Return(errors.New("read-only"))
			},
			answers: map[string]string{"API key:": "nx-key"},
			wantErr: "error saving configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cm := new(configstore.MockConfigManager)
			tt.setup(cm)

			i, _ := newTestInitializer(cm, tt.answers)
			err := i.Run()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateURL(t *testing.T) {
	assert.NoError(t, validateURL("http://localhost:8000/api/v1"))
	assert.NoError(t, validateURL("https://api.example.com"))
	assert.Error(t, validateURL("localhost:8000"))
	assert.Error(t, validateURL("ftp://example.com"))
	assert.Error(t, validateURL(""))
}
