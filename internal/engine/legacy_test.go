package engine

import (
	"testing"

	"persontable/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyVisible(t *testing.T, v *LegacyView) []models.Record {
	recs, err := v.Visible()
	require.NoError(t, err)
	return recs
}

func TestLegacyPageSizeChangeClearsRecords(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())
	require.Len(t, legacyVisible(t, v), 24)

	// Known limitation of the legacy table: a new page size empties it.
	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 10},
	}))
	assert.Empty(t, legacyVisible(t, v))

	page, err := v.Page()
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Pagination.Total)
}

func TestLegacyPageSizeChangeWithNameSort(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	// The sort works on the set captured before the clear, so the rows
	// come back sorted.
	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 10},
		Sorter:     models.Sorter{ColumnKey: ColumnName, Order: models.SortAscend},
	}))
	recs := legacyVisible(t, v)
	require.Len(t, recs, 24)
	assert.Equal(t, "Anvesh", recs[0].Name.First)
	assert.Equal(t, 1, recs[0].ID)
}

func TestLegacyNameSortReappliesFilters(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Filters:    models.Filters{ColumnGender: {"female"}},
		Sorter:     models.Sorter{ColumnKey: ColumnName, Order: models.SortDescend},
	}))

	recs := legacyVisible(t, v)
	require.Len(t, recs, 14)
	// Always ascending
	assert.Equal(t, "geetha", recs[0].Name.First)
	assert.Equal(t, []int{1, 2, 3}, ranks(recs[:3]))
}

func TestLegacyAgeSortKeepsRanks(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Sorter:     models.Sorter{ColumnKey: ColumnAge, Order: models.SortAscend},
	}))

	recs := legacyVisible(t, v)
	assert.Equal(t, "sahithya", recs[0].Name.First)
	assert.Equal(t, 24, recs[0].ID)
	assert.Equal(t, "srikruthi", recs[len(recs)-1].Name.First)
}

func TestLegacySortIgnoresOrderAndID(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	// descend is ignored for age
	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Sorter:     models.Sorter{ColumnKey: ColumnAge, Order: models.SortDescend},
	}))
	recs := legacyVisible(t, v)
	assert.Equal(t, "sahithya", recs[0].Name.First)
	assert.Equal(t, "srikruthi", recs[len(recs)-1].Name.First)

	// an id sort keeps the working set in place
	require.NoError(t, v.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Sorter:     models.Sorter{ColumnKey: ColumnID, Order: models.SortDescend},
	}))
	assert.Equal(t, firstNames(recs), firstNames(legacyVisible(t, v)))
	assert.Equal(t, models.Sorter{ColumnKey: ColumnID, Order: models.SortDescend}, v.State().Sorter)
}

func TestLegacyFiltersAreDestructive(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	require.NoError(t, v.ApplyColumnFilter(ColumnGender, []string{"male"}))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ranks(legacyVisible(t, v)))

	require.NoError(t, v.ApplyColumnFilter(ColumnName, []string{"v"}))
	recs := legacyVisible(t, v)
	assert.Equal(t, []string{"Anvesh", "vamshi", "vishal"}, firstNames(recs))
	assert.Equal(t, []int{1, 2, 3}, ranks(recs))

	// Resetting forgets the value but not its effect
	require.NoError(t, v.ResetColumnFilter(ColumnName))
	assert.Len(t, legacyVisible(t, v), 3)
	assert.NotContains(t, v.State().Filters, ColumnName)
}

func TestLegacySearchIsDestructive(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	v.SetSearchText("anvesh")
	v.Search()
	recs := legacyVisible(t, v)
	require.Len(t, recs, 1)
	// No renumbering after a search
	assert.Equal(t, 3, recs[0].ID)

	v.SetSearchText("")
	v.Search()
	assert.Len(t, legacyVisible(t, v), 1)

	v.SetSearchText("sneha")
	v.Search()
	assert.Empty(t, legacyVisible(t, v))
}

func TestLegacyToggleIDColumn(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())
	before := legacyVisible(t, v)

	v.ToggleIDColumn()
	page, err := v.Page()
	require.NoError(t, err)
	assert.Len(t, page.Columns, 3)

	v.ToggleIDColumn()
	page, err = v.Page()
	require.NoError(t, err)
	assert.Len(t, page.Columns, 4)
	assert.Equal(t, before, legacyVisible(t, v))
}

func TestLegacyChangeValidation(t *testing.T) {
	v := NewLegacyView(Seed(), DefaultOptions())

	err := v.Change(ChangeEvent{Pagination: models.Pagination{Current: 1, PageSize: -1}})
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	err = v.ApplyColumnFilter("age", []string{"3"})
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.Len(t, legacyVisible(t, v), 24)
}
