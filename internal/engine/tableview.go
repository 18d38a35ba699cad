package engine

import (
	"persontable/internal/models"

	"github.com/pkg/errors"
)

const DefaultPageSize = 8

// View is the state behind one interactive table: the seven user
// interactions plus read access to what is currently shown.
type View interface {
	ToggleIDColumn()
	Change(ev ChangeEvent) error
	ApplyColumnFilter(column string, values []string) error
	ResetColumnFilter(column string) error
	SetSearchText(text string)
	Search()

	// Visible returns the whole visible set, ranked and unpaginated.
	Visible() ([]models.Record, error)
	Page() (*models.Page, error)
	State() models.ViewState
}

// ChangeEvent is what the table control reports on page, page size, filter
// or sort changes.
type ChangeEvent struct {
	Pagination models.Pagination
	Filters    models.Filters
	Sorter     models.Sorter
}

type Mode string

const (
	ModeDerived Mode = "derived"
	ModeLegacy  Mode = "legacy"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDerived:
		return ModeDerived, nil
	case ModeLegacy:
		return ModeLegacy, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

type Options struct {
	PageSize     int
	NameMatch    NameMatch
	ShowIDColumn bool
}

func DefaultOptions() Options {
	return Options{
		PageSize:     DefaultPageSize,
		NameMatch:    MatchFullName,
		ShowIDColumn: true,
	}
}

// NewView builds the view implementation selected by mode.
func NewView(mode Mode, store *ColumnStore, opts Options) (View, error) {
	if opts.PageSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidPageSize, "got %d", opts.PageSize)
	}
	switch mode {
	case ModeDerived, "":
		return NewTableView(store, opts), nil
	case ModeLegacy:
		return NewLegacyView(store, opts), nil
	}
	return nil, errors.Wrapf(ErrUnknownMode, "%q", mode)
}

// TableView never mutates records. The visible set is recomputed from the
// master store and the current state on every read.
type TableView struct {
	store *ColumnStore
	opts  Options
	state models.ViewState
}

func NewTableView(store *ColumnStore, opts Options) *TableView {
	return &TableView{
		store: store,
		opts:  opts,
		state: models.ViewState{
			Pagination: models.Pagination{
				Current:  1,
				PageSize: opts.PageSize,
				Total:    store.Len(),
			},
			Filters:         models.Filters{},
			IDColumnVisible: opts.ShowIDColumn,
		},
	}
}

func (v *TableView) ToggleIDColumn() {
	v.state.IDColumnVisible = !v.state.IDColumnVisible
}

func (v *TableView) Change(ev ChangeEvent) error {
	if ev.Pagination.PageSize <= 0 {
		return errors.Wrapf(ErrInvalidPageSize, "got %d", ev.Pagination.PageSize)
	}
	if _, err := compileFilters(ev.Filters, v.opts.NameMatch); err != nil {
		return err
	}
	if err := validateSorter(ev.Sorter); err != nil {
		return err
	}

	current := ev.Pagination.Current
	if ev.Pagination.PageSize != v.state.Pagination.PageSize {
		current = 1
	}
	v.state.Pagination.Current = current
	v.state.Pagination.PageSize = ev.Pagination.PageSize
	v.state.Filters = ev.Filters.Clone()
	v.state.Sorter = ev.Sorter
	return nil
}

func (v *TableView) ApplyColumnFilter(column string, values []string) error {
	next := v.state.Filters.Clone()
	next[column] = append([]string(nil), values...)
	if _, err := compileFilters(next, v.opts.NameMatch); err != nil {
		return err
	}
	v.state.Filters = next.Clone()
	v.state.Pagination.Current = 1
	return nil
}

func (v *TableView) ResetColumnFilter(column string) error {
	if _, err := compileFilters(models.Filters{column: {""}}, v.opts.NameMatch); err != nil {
		return err
	}
	delete(v.state.Filters, column)
	v.state.Pagination.Current = 1
	return nil
}

func (v *TableView) SetSearchText(text string) {
	v.state.SearchText = text
}

func (v *TableView) Search() {
	v.state.AppliedSearch = v.state.SearchText
	v.state.Pagination.Current = 1
}

func (v *TableView) query() Query {
	return Query{
		Filters:   v.state.Filters,
		Search:    v.state.AppliedSearch,
		Sorter:    v.state.Sorter,
		Page:      v.state.Pagination.Current,
		PageSize:  v.state.Pagination.PageSize,
		NameMatch: v.opts.NameMatch,
	}
}

func (v *TableView) Visible() ([]models.Record, error) {
	return v.store.Visible(v.query())
}

func (v *TableView) Page() (*models.Page, error) {
	data, p, err := v.store.Query(v.query())
	if err != nil {
		return nil, err
	}
	v.state.Pagination = p
	return &models.Page{
		Data:       data,
		Pagination: p,
		Columns:    Columns(v.state.IDColumnVisible),
		State:      v.State(),
	}, nil
}

func (v *TableView) State() models.ViewState {
	s := v.state
	s.Filters = v.state.Filters.Clone()
	return s
}
