package tui

import (
	"fmt"
	"strings"

	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	headerStyle = lipgloss.NewStyle().Bold(true).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	menuStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

var columnWidths = map[string]int{
	engine.ColumnID:     6,
	engine.ColumnName:   24,
	engine.ColumnGender: 10,
	engine.ColumnAge:    6,
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("People"))
	b.WriteString("  ")
	b.WriteString(hintStyle.Render(m.idHint()))
	b.WriteString("\n")

	if m.focus == focusSearch {
		b.WriteString(m.search.View())
	} else if applied := m.view.State().AppliedSearch; applied != "" {
		b.WriteString(hintStyle.Render("Search: " + applied))
	}
	b.WriteString("\n")

	if m.page != nil {
		b.WriteString(m.renderTable())
	}

	if m.drop != nil {
		b.WriteString(m.renderDropdown())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.footer())
	return b.String()
}

func (m Model) idHint() string {
	if m.view.State().IDColumnVisible {
		return "i: Hide ID Column"
	}
	return "i: Show ID Column"
}

func (m Model) renderTable() string {
	var b strings.Builder
	state := m.page.State

	header := make([]string, 0, len(m.page.Columns))
	for _, col := range m.page.Columns {
		title := col.Title + sortMarker(state.Sorter, col.Key)
		if _, ok := state.Filters[col.Key]; ok {
			title += " *"
		}
		header = append(header, pad(title, columnWidths[col.Key]))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	if len(m.page.Data) == 0 {
		b.WriteString(hintStyle.Render("No data"))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range m.page.Data {
		row := make([]string, 0, len(m.page.Columns))
		for _, col := range m.page.Columns {
			row = append(row, pad(engine.CellText(rec, col.Key), columnWidths[col.Key]))
		}
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDropdown() string {
	d := m.drop
	var b strings.Builder

	b.WriteString(titleStyle.Render("Filter " + d.column))
	b.WriteString("\n")
	if d.selected {
		b.WriteString(d.input.Prompt)
		b.WriteString(selectedStyle.Render(d.input.Value()))
	} else {
		b.WriteString(d.input.View())
	}

	for i, o := range d.options {
		box := "[ ]"
		if d.checked[o.Value] {
			box = "[x]"
		}
		line := box + " " + o.Text
		if i == d.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString("\n")
		b.WriteString(line)
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.dropKeys.ShortHelp()))
	return menuStyle.Render(b.String())
}

func (m Model) footer() string {
	p := m.view.State().Pagination
	if m.page != nil {
		p = m.page.Pagination
	}
	status := fmt.Sprintf("page %d/%d · %d records · page size %d",
		p.Current, engine.LastPage(p.Total, p.PageSize), p.Total, p.PageSize)

	if m.drop != nil {
		return hintStyle.Render(status)
	}
	return hintStyle.Render(status) + "\n" + m.help.View(m.keys)
}

func sortMarker(s models.Sorter, column string) string {
	if s.ColumnKey != column {
		return ""
	}
	switch s.Order {
	case models.SortAscend:
		return " ▲"
	case models.SortDescend:
		return " ▼"
	}
	return ""
}

func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
