// Package theme styles terminal output
package theme

import (
	"strings"

	"github.com/fatih/color"
)

// Theme defines the styles commands print with
type Theme interface {
	Primary() *Style
	Secondary() *Style
	Success() *Style
	Error() *Style
	Warning() *Style
	Info() *Style
	Subtle() *Style

	// IsEnabled reports if colors are enabled
	IsEnabled() bool

	// SetEnabled enables or disables color output
	SetEnabled(enabled bool)
}

// Name identifies a built-in theme
type Name string

const (
	Default      Name = "default"
	Professional Name = "professional"
	Plain        Name = "plain"
)

// DefaultTheme implements Theme with fixed styles
type DefaultTheme struct {
	primary   *Style
	secondary *Style
	success   *Style
	error     *Style
	warning   *Style
	info      *Style
	subtle    *Style
	enabled   bool
}

// NewDefaultTheme creates the default color theme
func NewDefaultTheme() *DefaultTheme {
	return newTheme(
		NewStyle(color.FgHiCyan, 0, color.Bold),
		NewStyle(color.FgBlue, 0),
		NewStyle(color.FgGreen, 0, color.Bold),
		NewStyle(color.FgRed, 0, color.Bold),
		NewStyle(color.FgYellow, 0),
		NewStyle(color.FgWhite, 0),
		NewStyle(color.FgHiBlack, 0),
	)
}

// NewProfessionalTheme creates a subdued blue theme
func NewProfessionalTheme() *DefaultTheme {
	return newTheme(
		NewStyle(color.FgBlue, 0, color.Bold),
		NewStyle(color.FgHiBlue, 0),
		NewStyle(color.FgGreen, 0),
		NewStyle(color.FgRed, 0),
		NewStyle(color.FgYellow, 0),
		NewStyle(color.FgWhite, 0),
		NewStyle(color.FgHiBlack, 0),
	)
}

// NewPlainTheme creates a theme that never emits escape codes
func NewPlainTheme() *DefaultTheme {
	t := NewDefaultTheme()
	t.SetEnabled(false)
	return t
}

func newTheme(primary, secondary, success, errStyle, warning, info, subtle *Style) *DefaultTheme {
	t := &DefaultTheme{
		primary:   primary,
		secondary: secondary,
		success:   success,
		error:     errStyle,
		warning:   warning,
		info:      info,
		subtle:    subtle,
	}
	// Respect NO_COLOR and non-terminal output
	t.SetEnabled(!color.NoColor)
	return t
}

// ByName returns the built-in theme called name, falling back to the default theme
func ByName(name string) Theme {
	switch Name(strings.ToLower(name)) {
	case Professional:
		return NewProfessionalTheme()
	case Plain:
		return NewPlainTheme()
	default:
		return NewDefaultTheme()
	}
}

func (t *DefaultTheme) Primary() *Style   { return t.primary }
func (t *DefaultTheme) Secondary() *Style { return t.secondary }
func (t *DefaultTheme) Success() *Style   { return t.success }
func (t *DefaultTheme) Error() *Style     { return t.error }
func (t *DefaultTheme) Warning() *Style   { return t.warning }
func (t *DefaultTheme) Info() *Style      { return t.info }
func (t *DefaultTheme) Subtle() *Style    { return t.subtle }

// IsEnabled reports if colors are enabled
func (t *DefaultTheme) IsEnabled() bool {
	return t.enabled
}

// SetEnabled enables or disables color output on every style
func (t *DefaultTheme) SetEnabled(enabled bool) {
	t.enabled = enabled
	for _, s := range []*Style{t.primary, t.secondary, t.success, t.error, t.warning, t.info, t.subtle} {
		s.setEnabled(enabled)
	}
}
