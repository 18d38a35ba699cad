package engine

import (
	"strconv"
	"strings"

	"persontable/internal/models"
)

const (
	ColumnID     = "id"
	ColumnName   = "name"
	ColumnGender = "gender"
	ColumnAge    = "age"
)

// GenderOptions are the checkbox choices offered by the gender filter.
var GenderOptions = []models.FilterOption{
	{Text: "Male", Value: "male"},
	{Text: "Female", Value: "female"},
}

// Columns lists the table columns in display order.
func Columns(idVisible bool) []models.Column {
	cols := make([]models.Column, 0, 4)
	if idVisible {
		cols = append(cols, models.Column{Key: ColumnID, Title: "ID", Sortable: true})
	}
	cols = append(cols,
		models.Column{Key: ColumnName, Title: "Name", Sortable: true, Searchable: true},
		models.Column{Key: ColumnGender, Title: "Gender", Searchable: true, FilterOptions: GenderOptions},
		models.Column{Key: ColumnAge, Title: "Age", Sortable: true},
	)
	return cols
}

// CellText is the display text of one column of rec.
func CellText(rec models.Record, column string) string {
	switch column {
	case ColumnID:
		return strconv.Itoa(rec.ID)
	case ColumnName:
		return strings.TrimSpace(rec.Name.First + " " + rec.Name.Last)
	case ColumnGender:
		return rec.Gender
	case ColumnAge:
		return strconv.Itoa(rec.Age)
	}
	return ""
}
