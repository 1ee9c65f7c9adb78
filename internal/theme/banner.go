package theme

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Banner writes a boxed title with optional subtitles to w
func Banner(w io.Writer, t Theme, title string, width int, subtitle ...string) {
	primary := t.Primary()
	secondary := t.Secondary()

	width = max(width, utf8.RuneCountInString(title)+4)
	for _, sub := range subtitle {
		width = max(width, utf8.RuneCountInString(sub)+4)
	}

	primary.Fprintln(w, "╔"+strings.Repeat("═", width-2)+"╗")
	primary.Fprintln(w, centered(title, width))

	if len(subtitle) > 0 {
		primary.Fprintln(w, "║"+strings.Repeat("─", width-2)+"║")
		for _, sub := range subtitle {
			secondary.Fprintln(w, centered(sub, width))
		}
	}

	primary.Fprintln(w, "╚"+strings.Repeat("═", width-2)+"╝")
}

// centered pads text inside box borders; odd remainders go to the right.
func centered(text string, width int) string {
	space := width - utf8.RuneCountInString(text) - 2
	left := space / 2
	right := space - left
	return fmt.Sprintf("║%s%s%s║", strings.Repeat(" ", left), text, strings.Repeat(" ", right))
}
