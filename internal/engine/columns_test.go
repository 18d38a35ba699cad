package engine

import (
	"testing"

	"persontable/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestColumns(t *testing.T) {
	keys := func(cols []models.Column) []string {
		var out []string
		for _, c := range cols {
			out = append(out, c.Key)
		}
		return out
	}

	assert.Equal(t, []string{ColumnID, ColumnName, ColumnGender, ColumnAge}, keys(Columns(true)))
	assert.Equal(t, []string{ColumnName, ColumnGender, ColumnAge}, keys(Columns(false)))
	assert.Equal(t, GenderOptions, Columns(false)[1].FilterOptions)
}

func TestCellText(t *testing.T) {
	rec := models.Record{ID: 4, Name: models.Name{First: "Grace", Last: "Hopper"}, Gender: "female", Age: 85}
	assert.Equal(t, "4", CellText(rec, ColumnID))
	assert.Equal(t, "Grace Hopper", CellText(rec, ColumnName))
	assert.Equal(t, "female", CellText(rec, ColumnGender))
	assert.Equal(t, "85", CellText(rec, ColumnAge))
	assert.Equal(t, "", CellText(rec, "height"))

	rec.Name.Last = ""
	assert.Equal(t, "Grace", CellText(rec, ColumnName))
}
