package tui

import (
	"strings"
	"time"

	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const selectDelay = 100 * time.Millisecond

// selectInputMsg arrives shortly after a dropdown opens and selects its
// input text, so the next typed character replaces it.
type selectInputMsg struct {
	column string
}

// dropdown is the filter menu of one column.
type dropdown struct {
	column   string
	input    textinput.Model
	options  []models.FilterOption
	checked  map[string]bool
	cursor   int
	selected bool
}

func newDropdown(column string, current []string) *dropdown {
	d := &dropdown{
		column:  column,
		input:   textinput.New(),
		checked: map[string]bool{},
	}
	d.input.Prompt = "› "
	d.input.Placeholder = "Search " + column
	d.input.CharLimit = 64

	if column == engine.ColumnGender {
		d.options = engine.GenderOptions
	}

	// Restore what the column is currently filtered by.
	for _, v := range current {
		if d.hasOption(v) {
			d.checked[v] = true
			continue
		}
		if d.input.Value() == "" {
			d.input.SetValue(v)
		}
	}
	return d
}

func (d *dropdown) open() tea.Cmd {
	column := d.column
	return tea.Batch(
		d.input.Focus(),
		tea.Tick(selectDelay, func(time.Time) tea.Msg {
			return selectInputMsg{column: column}
		}),
	)
}

func (d *dropdown) hasOption(value string) bool {
	for _, o := range d.options {
		if o.Value == value {
			return true
		}
	}
	return false
}

func (d *dropdown) move(delta int) {
	if len(d.options) == 0 {
		return
	}
	d.cursor = (d.cursor + delta + len(d.options)) % len(d.options)
}

func (d *dropdown) toggle() {
	if len(d.options) == 0 {
		return
	}
	v := d.options[d.cursor].Value
	d.checked[v] = !d.checked[v]
}

// values is the filter selection: checked options in display order, then
// the typed text.
func (d *dropdown) values() []string {
	var out []string
	for _, o := range d.options {
		if d.checked[o.Value] {
			out = append(out, o.Value)
		}
	}
	if text := strings.TrimSpace(d.input.Value()); text != "" {
		out = append(out, text)
	}
	return out
}

func (d *dropdown) clear() {
	d.input.SetValue("")
	d.checked = map[string]bool{}
	d.selected = false
}

// updateInput feeds a key to the text input. A selected text is replaced
// by the first printable key.
func (d *dropdown) updateInput(msg tea.KeyMsg) tea.Cmd {
	if d.selected {
		d.selected = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			d.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			d.input.SetValue("")
			return nil
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}
