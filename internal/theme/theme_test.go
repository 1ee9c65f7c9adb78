package theme

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		width    int
		subtitle []string
		want     []string
	}{
		{
			name:  "title only",
			title: "My App",
			width: 20,
			want: []string{
				"╔══════════════════╗",
				"║      My App      ║",
				"╚══════════════════╝",
			},
		},
		{
			name:     "odd padding goes right",
			title:    "Odd",
			width:    10,
			subtitle: []string{"ab"},
			want: []string{
				"╔════════╗",
				"║  Odd   ║",
				"║────────║",
				"║   ab   ║",
				"╚════════╝",
			},
		},
		{
			name:  "width grows to fit title",
			title: "nexusctl",
			width: 4,
			want: []string{
				"╔══════════╗",
				"║ nexusctl ║",
				"╚══════════╝",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Banner(&buf, NewPlainTheme(), tt.title, tt.width, tt.subtitle...)

			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			assert.Equal(t, tt.want, lines)
		})
	}
}

func TestPlainThemeHasNoEscapeCodes(t *testing.T) {
	th := NewPlainTheme()
	require.False(t, th.IsEnabled())

	var buf bytes.Buffer
	th.Error().Fprintln(&buf, "boom")
	th.Success().Fprintf(&buf, "%d ok\n", 2)

	assert.Equal(t, "boom\n2 ok\n", buf.String())
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestByName(t *testing.T) {
	assert.False(t, ByName("plain").IsEnabled())
	assert.IsType(t, &DefaultTheme{}, ByName("professional"))
	assert.IsType(t, &DefaultTheme{}, ByName("unknown"))
}
