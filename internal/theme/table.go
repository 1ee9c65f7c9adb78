package theme

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// NewTable returns a borderless, left aligned table writing to w. Header
// colors are only applied when t has colors enabled.
func NewTable(w io.Writer, t Theme, headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	if t.IsEnabled() {
		colors := make([]tablewriter.Colors, len(headers))
		for i := range colors {
			colors[i] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor}
		}
		table.SetHeaderColor(colors...)
	}

	return table
}

// StatusColors colors column col green when ok and red otherwise. It returns
// nil when t has colors disabled so callers can fall back to Append.
func StatusColors(t Theme, columns, col int, ok bool) []tablewriter.Colors {
	if !t.IsEnabled() {
		return nil
	}
	colors := make([]tablewriter.Colors, columns)
	if ok {
		colors[col] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgGreenColor}
	} else {
		colors[col] = tablewriter.Colors{tablewriter.Bold, tablewriter.FgRedColor}
	}
	return colors
}
