package engine

import (
	"testing"

	"persontable/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type TableViewTestSuite struct {
	suite.Suite
	view *TableView
}

func (self *TableViewTestSuite) SetupTest() {
	self.view = NewTableView(Seed(), DefaultOptions())
}

func (self *TableViewTestSuite) visible() []models.Record {
	recs, err := self.view.Visible()
	require.NoError(self.T(), err)
	return recs
}

func (self *TableViewTestSuite) TestInitialize() {
	page, err := self.view.Page()
	require.NoError(self.T(), err)

	assert.Equal(self.T(), models.Pagination{Current: 1, PageSize: 8, Total: 24}, page.Pagination)
	assert.Len(self.T(), page.Data, 8)
	assert.Equal(self.T(), []int{1, 2, 3, 4, 5, 6, 7, 8}, ranks(page.Data))
	assert.Len(self.T(), page.Columns, 4)
	assert.True(self.T(), page.State.IDColumnVisible)
}

func (self *TableViewTestSuite) TestGlobalSearch() {
	self.view.SetSearchText("anvesh")
	self.view.Search()

	recs := self.visible()
	require.Len(self.T(), recs, 1)
	assert.Equal(self.T(), models.Record{
		RecordID: 3,
		ID:       1,
		Name:     models.Name{First: "Anvesh"},
		Gender:   "male",
		Age:      25,
	}, recs[0])

	// Clearing the text and searching again brings everything back
	self.view.SetSearchText("")
	self.view.Search()
	assert.Len(self.T(), self.visible(), 24)
}

func (self *TableViewTestSuite) TestSearchTextNotAppliedUntilSearch() {
	self.view.SetSearchText("anvesh")
	assert.Len(self.T(), self.visible(), 24)
	assert.Equal(self.T(), "anvesh", self.view.State().SearchText)
	assert.Equal(self.T(), "", self.view.State().AppliedSearch)
}

func (self *TableViewTestSuite) TestGenderFilter() {
	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnGender, []string{"male"}))

	recs := self.visible()
	assert.Equal(self.T(), []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ranks(recs))
	assert.Equal(self.T(), []string{
		"Anvesh", "krishna", "mahesh", "vamshi", "mithun",
		"arjun", "deepak", "raju", "vishal", "sunny",
	}, firstNames(recs))
	assert.Equal(self.T(), []int{3, 8, 10, 12, 16, 17, 18, 21, 22, 23}, recordIDs(recs))

	page, err := self.view.Page()
	require.NoError(self.T(), err)
	assert.Equal(self.T(), 10, page.Pagination.Total)
}

func (self *TableViewTestSuite) TestFilterThenFilterIsContiguous() {
	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnName, []string{"a"}))
	first := self.visible()
	for i, r := range first {
		assert.Equal(self.T(), i+1, r.ID)
	}

	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnGender, []string{"female"}))
	second := self.visible()
	assert.Less(self.T(), len(second), len(first))
	for i, r := range second {
		assert.Equal(self.T(), i+1, r.ID)
		assert.Equal(self.T(), "female", r.Gender)
	}
}

func (self *TableViewTestSuite) TestFiltersAreIndependent() {
	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnGender, []string{"male"}))
	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnName, []string{"v"}))
	assert.Equal(self.T(), []string{"Anvesh", "vamshi", "vishal"}, firstNames(self.visible()))

	require.NoError(self.T(), self.view.ResetColumnFilter(ColumnName))
	assert.Len(self.T(), self.visible(), 10)

	require.NoError(self.T(), self.view.ResetColumnFilter(ColumnGender))
	assert.Len(self.T(), self.visible(), 24)
}

func (self *TableViewTestSuite) TestSortByAge() {
	require.NoError(self.T(), self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Sorter:     models.Sorter{ColumnKey: ColumnAge, Order: models.SortAscend},
	}))

	recs := self.visible()
	assert.Equal(self.T(), "sahithya", recs[0].Name.First)
	assert.Equal(self.T(), "srikruthi", recs[len(recs)-1].Name.First)
	// Equal ages keep load order
	assert.Equal(self.T(), []string{"sahithya", "arjun", "mahesh", "sunny"}, firstNames(recs[:4]))
}

func (self *TableViewTestSuite) TestSortByName() {
	require.NoError(self.T(), self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Sorter:     models.Sorter{ColumnKey: ColumnName, Order: models.SortAscend},
	}))

	recs := self.visible()
	assert.Equal(self.T(), []string{
		"Anvesh", "arjun", "deepak", "geetha", "greeshma", "krishna",
		"mahesh", "mamatha", "mithun", "Mounika", "Nandhitha", "prasanna",
		"raju", "sahithya", "Sneha", "Srija", "srikruthi", "srinithi",
		"sunny", "Supriya", "suvarna", "Thriveni", "vamshi", "vishal",
	}, firstNames(recs))
	for i, r := range recs {
		assert.Equal(self.T(), i+1, r.ID)
	}
	// Identity survives the sort
	assert.Equal(self.T(), 3, recs[0].RecordID)
}

func (self *TableViewTestSuite) TestSortWithFilters() {
	require.NoError(self.T(), self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Filters:    models.Filters{ColumnGender: {"female"}},
		Sorter:     models.Sorter{ColumnKey: ColumnName, Order: models.SortDescend},
	}))

	recs := self.visible()
	assert.Len(self.T(), recs, 14)
	assert.Equal(self.T(), "Thriveni", recs[0].Name.First)
	assert.Equal(self.T(), "geetha", recs[len(recs)-1].Name.First)
}

func (self *TableViewTestSuite) TestToggleIDColumn() {
	before, err := self.view.Page()
	require.NoError(self.T(), err)

	self.view.ToggleIDColumn()
	hidden, err := self.view.Page()
	require.NoError(self.T(), err)
	assert.Len(self.T(), hidden.Columns, 3)
	assert.Equal(self.T(), ColumnName, hidden.Columns[0].Key)
	assert.Equal(self.T(), before.Data, hidden.Data)

	self.view.ToggleIDColumn()
	after, err := self.view.Page()
	require.NoError(self.T(), err)
	assert.Equal(self.T(), before.Columns, after.Columns)
	assert.Equal(self.T(), before.Data, after.Data)
}

func (self *TableViewTestSuite) TestPageSizeChangeKeepsRecords() {
	require.NoError(self.T(), self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 3, PageSize: 8},
	}))
	page, err := self.view.Page()
	require.NoError(self.T(), err)
	assert.Equal(self.T(), 3, page.Pagination.Current)

	require.NoError(self.T(), self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 3, PageSize: 10},
	}))
	page, err = self.view.Page()
	require.NoError(self.T(), err)
	assert.Equal(self.T(), models.Pagination{Current: 1, PageSize: 10, Total: 24}, page.Pagination)
	assert.Len(self.T(), page.Data, 10)
}

func (self *TableViewTestSuite) TestChangeValidation() {
	err := self.view.Change(ChangeEvent{Pagination: models.Pagination{Current: 1, PageSize: 0}})
	assert.ErrorIs(self.T(), err, ErrInvalidPageSize)

	err = self.view.Change(ChangeEvent{
		Pagination: models.Pagination{Current: 1, PageSize: 8},
		Filters:    models.Filters{"age": {"1"}},
	})
	assert.ErrorIs(self.T(), err, ErrUnknownColumn)

	err = self.view.ApplyColumnFilter("height", []string{"1"})
	assert.ErrorIs(self.T(), err, ErrUnknownColumn)

	err = self.view.ResetColumnFilter("height")
	assert.ErrorIs(self.T(), err, ErrUnknownColumn)

	// Failed changes leave the state alone
	assert.Equal(self.T(), 8, self.view.State().Pagination.PageSize)
	assert.Empty(self.T(), self.view.State().Filters)
}

func (self *TableViewTestSuite) TestStateIsACopy() {
	require.NoError(self.T(), self.view.ApplyColumnFilter(ColumnGender, []string{"male"}))
	state := self.view.State()
	state.Filters[ColumnGender][0] = "female"
	assert.Equal(self.T(), []string{"male"}, self.view.State().Filters[ColumnGender])
}

func TestTableView(t *testing.T) {
	suite.Run(t, &TableViewTestSuite{})
}

func TestNewView(t *testing.T) {
	v, err := NewView(ModeLegacy, Seed(), DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &LegacyView{}, v)

	v, err = NewView(ModeDerived, Seed(), DefaultOptions())
	require.NoError(t, err)
	assert.IsType(t, &TableView{}, v)

	_, err = NewView("other", Seed(), DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = NewView(ModeDerived, Seed(), Options{PageSize: 0})
	assert.ErrorIs(t, err, ErrInvalidPageSize)

	mode, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeDerived, mode)
}
