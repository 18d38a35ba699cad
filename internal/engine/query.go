package engine

import (
	"persontable/internal/models"

	"github.com/pkg/errors"
)

// Query holds every filter plus the sort and page selection.
type Query struct {
	Filters   models.Filters
	Search    string
	Sorter    models.Sorter
	Page      int
	PageSize  int
	NameMatch NameMatch
}

// Visible computes the ranked visible set: filter -> sort -> rank.
func (cs *ColumnStore) Visible(q Query) ([]models.Record, error) {
	// 1. Filter
	matchers, err := compileFilters(q.Filters, q.NameMatch)
	if err != nil {
		return nil, err
	}
	if q.Search != "" {
		matchers = append(matchers, searchMatcher(q.Search, q.NameMatch))
	}
	recs := filterRecords(cs.Records(), matchers...)

	// 2. Sort
	if err := sortRecords(recs, q.Sorter); err != nil {
		return nil, err
	}

	// 3. Rank
	renumber(recs)
	return recs, nil
}

// Query returns one page of the visible set along with its pagination.
func (cs *ColumnStore) Query(q Query) ([]models.Record, models.Pagination, error) {
	if q.PageSize <= 0 {
		return nil, models.Pagination{}, errors.Wrapf(ErrInvalidPageSize, "got %d", q.PageSize)
	}
	recs, err := cs.Visible(q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	page, p := Paginate(recs, q.Page, q.PageSize)
	return page, p, nil
}

// LastPage is the highest valid page number for total rows; an empty set
// still has page 1.
func LastPage(total, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// Paginate slices recs to the requested page, clamping current into
// [1, LastPage].
func Paginate(recs []models.Record, current, pageSize int) ([]models.Record, models.Pagination) {
	total := len(recs)
	last := LastPage(total, pageSize)
	if current < 1 {
		current = 1
	}
	if current > last {
		current = last
	}

	p := models.Pagination{Current: current, PageSize: pageSize, Total: total}

	offset := (current - 1) * pageSize
	if offset >= total {
		return []models.Record{}, p
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return recs[offset:end], p
}
