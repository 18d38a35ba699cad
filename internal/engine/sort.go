package engine

import (
	"cmp"
	"slices"

	"persontable/internal/models"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

func validateSorter(s models.Sorter) error {
	switch s.Order {
	case models.SortNone, models.SortAscend, models.SortDescend:
	default:
		return errors.Wrapf(ErrInvalidSort, "%q", s.Order)
	}
	switch s.ColumnKey {
	case "", ColumnID, ColumnName, ColumnAge:
		return nil
	}
	return errors.Wrapf(ErrUnknownColumn, "sort by %q", s.ColumnKey)
}

// sortRecords orders recs in place. The sort is stable so equal keys keep
// their load order.
func sortRecords(recs []models.Record, s models.Sorter) error {
	if err := validateSorter(s); err != nil {
		return err
	}
	if !s.Active() {
		return nil
	}

	var compare func(a, b models.Record) int
	switch s.ColumnKey {
	case ColumnName:
		// Collators keep scratch buffers, so each sort gets its own.
		c := collate.New(language.Und, collate.IgnoreCase)
		compare = func(a, b models.Record) int {
			return c.CompareString(a.Name.First, b.Name.First)
		}
	case ColumnAge:
		compare = func(a, b models.Record) int { return cmp.Compare(a.Age, b.Age) }
	case ColumnID:
		compare = func(a, b models.Record) int { return cmp.Compare(a.RecordID, b.RecordID) }
	}

	if s.Order == models.SortDescend {
		asc := compare
		compare = func(a, b models.Record) int { return asc(b, a) }
	}
	slices.SortStableFunc(recs, compare)
	return nil
}

// renumber assigns the view-rank 1..N in slice order.
func renumber(recs []models.Record) {
	for i := range recs {
		recs[i].ID = i + 1
	}
}
