// Package tui is an interactive terminal rendition of the person table.
// Every key maps onto one engine.View interaction; the table is redrawn
// from View.Page after each of them.
package tui

import (
	"persontable/internal/engine"
	"persontable/internal/models"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var pageSizes = []int{5, 8, 10, 20, 50}

type focus int

const (
	focusTable focus = iota
	focusSearch
	focusDropdown
)

type Model struct {
	view     engine.View
	keys     keyMap
	dropKeys dropdownKeys
	help     help.Model
	search   textinput.Model
	focus    focus
	drop     *dropdown
	page     *models.Page
	err      error
}

func New(view engine.View) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "name"
	search.CharLimit = 64

	m := Model{
		view:     view,
		keys:     defaultKeyMap(),
		dropKeys: defaultDropdownKeys(),
		help:     help.New(),
		search:   search,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Page is the page currently on screen.
func (m Model) Page() *models.Page {
	return m.page
}

// Err is the last error a view interaction reported.
func (m Model) Err() error {
	return m.err
}

func (m *Model) refresh() {
	page, err := m.view.Page()
	if err != nil {
		m.err = err
		return
	}
	m.page = page
}

// apply runs one view interaction and redraws.
func (m *Model) apply(fn func() error) {
	m.err = fn()
	m.refresh()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case selectInputMsg:
		if m.drop != nil && m.drop.column == msg.column {
			m.drop.selected = m.drop.input.Value() != ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.focus {
		case focusSearch:
			return m.updateSearch(msg)
		case focusDropdown:
			return m.updateDropdown(msg)
		}
		return m.updateTable(msg)
	}
	return m, nil
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.view.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.search.SetValue(state.SearchText)
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ToggleID):
		m.view.ToggleIDColumn()
		m.refresh()

	case key.Matches(msg, m.keys.SortID):
		m.cycleSort(state, engine.ColumnID)
	case key.Matches(msg, m.keys.SortName):
		m.cycleSort(state, engine.ColumnName)
	case key.Matches(msg, m.keys.SortAge):
		m.cycleSort(state, engine.ColumnAge)

	case key.Matches(msg, m.keys.PrevPage):
		m.goToPage(state, state.Pagination.Current-1)
	case key.Matches(msg, m.keys.NextPage):
		m.goToPage(state, state.Pagination.Current+1)

	case key.Matches(msg, m.keys.Bigger):
		m.resize(state, nextPageSize(state.Pagination.PageSize, 1))
	case key.Matches(msg, m.keys.Smaller):
		m.resize(state, nextPageSize(state.Pagination.PageSize, -1))

	case key.Matches(msg, m.keys.NameMenu):
		return m, m.openDropdown(state, engine.ColumnName)
	case key.Matches(msg, m.keys.GenderMenu):
		return m, m.openDropdown(state, engine.ColumnGender)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.view.Search()
		m.refresh()
		m.leaveSearch()
		return m, nil
	case tea.KeyEsc:
		m.leaveSearch()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.view.SetSearchText(m.search.Value())
	return m, cmd
}

func (m *Model) leaveSearch() {
	m.search.Blur()
	m.focus = focusTable
}

func (m Model) updateDropdown(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.drop

	switch {
	case key.Matches(msg, m.dropKeys.Search):
		m.applyDropdown()
		m.closeDropdown()
		return m, nil

	case key.Matches(msg, m.dropKeys.Filter):
		m.applyDropdown()
		return m, nil

	case key.Matches(msg, m.dropKeys.Reset):
		d.clear()
		m.apply(func() error { return m.view.ResetColumnFilter(d.column) })
		return m, nil

	case key.Matches(msg, m.dropKeys.Close):
		m.closeDropdown()
		return m, nil

	case len(d.options) > 0 && key.Matches(msg, m.dropKeys.Up):
		d.move(-1)
		return m, nil

	case len(d.options) > 0 && key.Matches(msg, m.dropKeys.Down):
		d.move(1)
		return m, nil

	case len(d.options) > 0 && key.Matches(msg, m.dropKeys.Toggle):
		d.toggle()
		return m, nil
	}

	return m, d.updateInput(msg)
}

func (m *Model) openDropdown(state models.ViewState, column string) tea.Cmd {
	m.drop = newDropdown(column, state.Filters[column])
	m.focus = focusDropdown
	return m.drop.open()
}

func (m *Model) closeDropdown() {
	if m.drop != nil {
		m.drop.input.Blur()
	}
	m.drop = nil
	m.focus = focusTable
}

// applyDropdown filters the column by the dropdown selection. An empty
// selection clears the column filter.
func (m *Model) applyDropdown() {
	d := m.drop
	values := d.values()
	if len(values) == 0 {
		m.apply(func() error { return m.view.ResetColumnFilter(d.column) })
		return
	}
	m.apply(func() error { return m.view.ApplyColumnFilter(d.column, values) })
}

// cycleSort moves column through ascend, descend and unsorted.
func (m *Model) cycleSort(state models.ViewState, column string) {
	next := models.Sorter{ColumnKey: column, Order: models.SortAscend}
	if state.Sorter.ColumnKey == column {
		switch state.Sorter.Order {
		case models.SortAscend:
			next.Order = models.SortDescend
		case models.SortDescend:
			next = models.Sorter{}
		}
	}
	m.change(state, state.Pagination, next)
}

func (m *Model) goToPage(state models.ViewState, page int) {
	last := engine.LastPage(state.Pagination.Total, state.Pagination.PageSize)
	if page < 1 || page > last {
		return
	}
	p := state.Pagination
	p.Current = page
	m.change(state, p, state.Sorter)
}

func (m *Model) resize(state models.ViewState, size int) {
	if size == state.Pagination.PageSize {
		return
	}
	p := state.Pagination
	p.PageSize = size
	m.change(state, p, state.Sorter)
}

func (m *Model) change(state models.ViewState, p models.Pagination, sorter models.Sorter) {
	m.apply(func() error {
		return m.view.Change(engine.ChangeEvent{
			Pagination: p,
			Filters:    state.Filters,
			Sorter:     sorter,
		})
	})
}

// nextPageSize steps through pageSizes from size in direction dir.
func nextPageSize(size, dir int) int {
	if dir > 0 {
		for _, s := range pageSizes {
			if s > size {
				return s
			}
		}
		return size
	}
	for i := len(pageSizes) - 1; i >= 0; i-- {
		if pageSizes[i] < size {
			return pageSizes[i]
		}
	}
	return size
}
