package engine

import (
	"persontable/internal/models"

	"github.com/pkg/errors"
)

// LegacyView keeps a single working set and narrows it in place, the way
// the first version of the table behaved. Filters compose only in the
// order applied and cannot be undone without a new view. Page size changes
// empty the working set unless the same change also sorts by name or age,
// in which case the set captured before the change is sorted and shown.
type LegacyView struct {
	opts    Options
	records []models.Record
	state   models.ViewState
}

func NewLegacyView(store *ColumnStore, opts Options) *LegacyView {
	records := store.Records()
	renumber(records)
	return &LegacyView{
		opts:    opts,
		records: records,
		state: models.ViewState{
			Pagination: models.Pagination{
				Current:  1,
				PageSize: opts.PageSize,
				Total:    len(records),
			},
			Filters:         models.Filters{},
			IDColumnVisible: opts.ShowIDColumn,
		},
	}
}

func (v *LegacyView) ToggleIDColumn() {
	v.state.IDColumnVisible = !v.state.IDColumnVisible
}

func (v *LegacyView) Change(ev ChangeEvent) error {
	if ev.Pagination.PageSize <= 0 {
		return errors.Wrapf(ErrInvalidPageSize, "got %d", ev.Pagination.PageSize)
	}
	matchers, err := compileFilters(ev.Filters, v.opts.NameMatch)
	if err != nil {
		return err
	}
	if err := validateSorter(ev.Sorter); err != nil {
		return err
	}

	captured := v.records
	prevSize := v.state.Pagination.PageSize

	v.state.Pagination.Current = ev.Pagination.Current
	v.state.Pagination.PageSize = ev.Pagination.PageSize
	v.state.Filters = ev.Filters.Clone()
	v.state.Sorter = ev.Sorter

	if ev.Pagination.PageSize != prevSize {
		v.records = nil
	}

	switch ev.Sorter.ColumnKey {
	case ColumnName:
		sorted := filterRecords(captured, matchers...)
		// Always ascending, whatever the requested order.
		_ = sortRecords(sorted, models.Sorter{ColumnKey: ColumnName, Order: models.SortAscend})
		renumber(sorted)
		v.records = sorted
	case ColumnAge:
		sorted := append([]models.Record(nil), captured...)
		_ = sortRecords(sorted, models.Sorter{ColumnKey: ColumnAge, Order: models.SortAscend})
		v.records = sorted
	}

	v.state.Pagination.Total = len(v.records)
	return nil
}

func (v *LegacyView) ApplyColumnFilter(column string, values []string) error {
	matchers, err := compileFilters(models.Filters{column: values}, v.opts.NameMatch)
	if err != nil {
		return err
	}
	if v.state.Filters == nil {
		v.state.Filters = models.Filters{}
	}
	v.state.Filters[column] = append([]string(nil), values...)

	v.records = filterRecords(v.records, matchers...)
	renumber(v.records)
	v.state.Pagination.Total = len(v.records)
	return nil
}

// ResetColumnFilter forgets the filter value; rows it removed stay removed.
func (v *LegacyView) ResetColumnFilter(column string) error {
	if _, err := compileFilters(models.Filters{column: {""}}, v.opts.NameMatch); err != nil {
		return err
	}
	delete(v.state.Filters, column)
	return nil
}

func (v *LegacyView) SetSearchText(text string) {
	v.state.SearchText = text
}

func (v *LegacyView) Search() {
	v.state.AppliedSearch = v.state.SearchText
	v.records = filterRecords(v.records, searchMatcher(v.state.SearchText, v.opts.NameMatch))
	v.state.Pagination.Total = len(v.records)
}

func (v *LegacyView) Visible() ([]models.Record, error) {
	return append([]models.Record(nil), v.records...), nil
}

func (v *LegacyView) Page() (*models.Page, error) {
	data, p := Paginate(v.records, v.state.Pagination.Current, v.state.Pagination.PageSize)
	v.state.Pagination = p
	return &models.Page{
		Data:       append([]models.Record(nil), data...),
		Pagination: p,
		Columns:    Columns(v.state.IDColumnVisible),
		State:      v.State(),
	}, nil
}

func (v *LegacyView) State() models.ViewState {
	s := v.state
	s.Filters = v.state.Filters.Clone()
	return s
}
