package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search     key.Binding
	ToggleID   key.Binding
	SortID     key.Binding
	SortName   key.Binding
	SortAge    key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Bigger     key.Binding
	Smaller    key.Binding
	NameMenu   key.Binding
	GenderMenu key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.NameMenu, k.GenderMenu, k.PrevPage, k.NextPage, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.NameMenu, k.GenderMenu},
		{k.SortID, k.SortName, k.SortAge, k.ToggleID},
		{k.PrevPage, k.NextPage, k.Bigger, k.Smaller},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ToggleID:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "toggle id")),
		SortID:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "sort id")),
		SortName:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sort name")),
		SortAge:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "sort age")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Bigger:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more rows")),
		Smaller:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer rows")),
		NameMenu:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter name")),
		GenderMenu: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "filter gender")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// dropdownKeys are active while a column filter dropdown is open.
type dropdownKeys struct {
	Search key.Binding
	Filter key.Binding
	Reset  key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func (k dropdownKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Reset, k.Close, k.Toggle}
}

func (k dropdownKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Up, k.Down}}
}

func defaultDropdownKeys() dropdownKeys {
	return dropdownKeys{
		Search: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		Filter: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "filter")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	}
}
