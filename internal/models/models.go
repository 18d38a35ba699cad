package models

type Name struct {
	First string `json:"first" yaml:"first"`
	Last  string `json:"last,omitempty" yaml:"last,omitempty"`
}

// Record is one person row. RecordID is assigned once at load time, ID is
// the view-rank and gets renumbered whenever the visible set is recomputed.
type Record struct {
	RecordID int    `json:"record_id"`
	ID       int    `json:"id"`
	Name     Name   `json:"name"`
	Gender   string `json:"gender"`
	Age      int    `json:"age"`
}

type Pagination struct {
	Current  int `json:"current"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

type SortOrder string

const (
	SortNone    SortOrder = ""
	SortAscend  SortOrder = "ascend"
	SortDescend SortOrder = "descend"
)

type Sorter struct {
	ColumnKey string    `json:"column_key,omitempty"`
	Order     SortOrder `json:"order,omitempty"`
}

// Active reports whether the sorter orders anything.
func (s Sorter) Active() bool {
	return s.ColumnKey != "" && s.Order != SortNone
}

// Filters maps a column key to the selected filter values.
type Filters map[string][]string

// Clone returns a deep copy; keys with no values are dropped.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		if len(v) == 0 {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

type FilterOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

type Column struct {
	Key           string         `json:"key"`
	Title         string         `json:"title"`
	Sortable      bool           `json:"sortable"`
	Searchable    bool           `json:"searchable"`
	FilterOptions []FilterOption `json:"filter_options,omitempty"`
}

type ViewState struct {
	Pagination      Pagination `json:"pagination"`
	Filters         Filters    `json:"filters"`
	Sorter          Sorter     `json:"sorter"`
	SearchText      string     `json:"search_text"`
	AppliedSearch   string     `json:"applied_search"`
	IDColumnVisible bool       `json:"id_column_visible"`
}

type Page struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
	Columns    []Column   `json:"columns"`
	State      ViewState  `json:"state"`
}

type EventType string

const (
	EventToggleIDColumn EventType = "toggle_id_column"
	EventChange         EventType = "change"
	EventFilter         EventType = "filter"
	EventResetFilter    EventType = "reset_filter"
	EventSearchText     EventType = "search_text"
	EventSearch         EventType = "search"
)

// Event is a user interaction delivered to a view, either from the HTTP
// API or replayed in tests.
type Event struct {
	Type       EventType  `json:"type"`
	Pagination Pagination `json:"pagination,omitempty"`
	Filters    Filters    `json:"filters,omitempty"`
	Sorter     Sorter     `json:"sorter,omitempty"`
	Column     string     `json:"column,omitempty"`
	Values     []string   `json:"values,omitempty"`
	Text       string     `json:"text,omitempty"`
}

type Session struct {
	ID   string `json:"id"`
	Mode string `json:"mode"`
	Page *Page  `json:"page"`
}
