package dashboard

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/shaharia-lab/nexusctl/internal/theme"
)

// TableView renders payment methods and API keys as tables on a terminal.
// It satisfies both PaymentMethodsView and APIKeysView.
type TableView struct {
	Out   io.Writer
	Theme theme.Theme
}

var (
	_ PaymentMethodsView = (*TableView)(nil)
	_ APIKeysView        = (*TableView)(nil)
)

// ShowPaymentMethods prints one row per method.
func (v *TableView) ShowPaymentMethods(methods []PaymentMethod) {
	table := theme.NewTable(v.Out, v.Theme, "ID", "Card", "Brand", "Last4")
	for _, pm := range methods {
		table.Append([]string{pm.ID, pm.Label(), pm.Card.Brand, pm.Card.Last4})
	}
	table.Render()
}

// ShowAPIKeys prints one row per key with its status colored.
func (v *TableView) ShowAPIKeys(keys []APIKey) {
	table := theme.NewTable(v.Out, v.Theme, "ID", "Name", "Key", "Status", "Created")
	for _, k := range keys {
		row := []string{k.ID.String(), k.Name, k.Key, k.Status(), k.CreatedAt}
		if colors := theme.StatusColors(v.Theme, len(row), 3, k.IsActive); colors != nil {
			table.Rich(row, colors)
		} else {
			table.Append(row)
		}
	}
	table.Render()
}

// ShowEmpty prints message in the subtle style.
func (v *TableView) ShowEmpty(message string) {
	v.Theme.Subtle().Fprintln(v.Out, message)
}

// ShowError prints message in the error style.
func (v *TableView) ShowError(message string) {
	v.Theme.Error().Fprintln(v.Out, message)
}

// ThemeNotifier prints notifications with a status marker.
type ThemeNotifier struct {
	Out   io.Writer
	Theme theme.Theme
}

// Success prints message in the success style.
func (n *ThemeNotifier) Success(message string) {
	n.Theme.Success().Fprintln(n.Out, "✓ "+message)
}

// Failure prints message in the error style.
func (n *ThemeNotifier) Failure(message string) {
	n.Theme.Error().Fprintln(n.Out, "✗ "+message)
}

// SurveyPrompter asks questions on the terminal with survey.
type SurveyPrompter struct {
	opts []survey.AskOpt
	ask  func(survey.Prompt, interface{}, ...survey.AskOpt) error
}

// NewSurveyPrompter returns a prompter that passes opts to every question.
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts, ask: survey.AskOne}
}

// Prompt asks for one line of text. Ctrl+C surfaces as terminal.InterruptErr.
func (p *SurveyPrompter) Prompt(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var answer string
	if err := p.ask(&survey.Input{Message: message}, &answer, p.opts...); err != nil {
		if err == terminal.InterruptErr {
			return "", fmt.Errorf("prompt cancelled: %w", err)
		}
		return "", err
	}
	return strings.TrimRight(answer, "\r\n"), nil
}

// ConsoleDialog stands in for the add-card modal on a terminal: it reports
// the submit control state and records whether it was closed.
type ConsoleDialog struct {
	Out   io.Writer
	Theme theme.Theme

	mu      sync.Mutex
	enabled bool
	closed  bool
}

// NewConsoleDialog returns an open dialog with submit enabled.
func NewConsoleDialog(out io.Writer, t theme.Theme) *ConsoleDialog {
	return &ConsoleDialog{Out: out, Theme: t, enabled: true}
}

// SetSubmitEnabled records the submit control state.
func (d *ConsoleDialog) SetSubmitEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.enabled = enabled
	if !enabled {
		d.Theme.Subtle().Fprintln(d.Out, "Submitting payment method...")
	}
}

// Close marks the dialog closed.
func (d *ConsoleDialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

// SubmitEnabled reports the submit control state.
func (d *ConsoleDialog) SubmitEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Closed reports whether the dialog was closed.
func (d *ConsoleDialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
