package theme

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Style is a named color style
type Style struct {
	printer *color.Color
}

// NewStyle creates a new style with foreground, background and attributes
func NewStyle(fg, bg color.Attribute, attrs ...color.Attribute) *Style {
	c := color.New(fg)

	if bg != 0 {
		c.Add(bg)
	}

	if len(attrs) > 0 {
		c.Add(attrs...)
	}

	return &Style{printer: c}
}

// Sprint returns a styled string
func (s *Style) Sprint(a ...interface{}) string {
	return s.printer.Sprint(a...)
}

// Sprintf returns a styled formatted string
func (s *Style) Sprintf(format string, a ...interface{}) string {
	return s.printer.Sprintf(format, a...)
}

// Fprintln writes styled text followed by a newline to w
func (s *Style) Fprintln(w io.Writer, a ...interface{}) {
	fmt.Fprintln(w, s.printer.Sprint(a...))
}

// Fprintf writes styled formatted text to w
func (s *Style) Fprintf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprint(w, s.printer.Sprintf(format, a...))
}

// Println prints styled text to color.Output
func (s *Style) Println(a ...interface{}) {
	s.Fprintln(color.Output, a...)
}

func (s *Style) setEnabled(enabled bool) {
	if enabled {
		s.printer.EnableColor()
	} else {
		s.printer.DisableColor()
	}
}
