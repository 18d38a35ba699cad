package engine

import (
	"persontable/internal/models"

	"github.com/pkg/errors"
)

// Dispatch applies a serialized user interaction to v.
func Dispatch(v View, ev models.Event) error {
	switch ev.Type {
	case models.EventToggleIDColumn:
		v.ToggleIDColumn()
	case models.EventChange:
		return v.Change(ChangeEvent{
			Pagination: ev.Pagination,
			Filters:    ev.Filters,
			Sorter:     ev.Sorter,
		})
	case models.EventFilter:
		return v.ApplyColumnFilter(ev.Column, ev.Values)
	case models.EventResetFilter:
		return v.ResetColumnFilter(ev.Column)
	case models.EventSearchText:
		v.SetSearchText(ev.Text)
	case models.EventSearch:
		// A search event may carry the text it searches for.
		if ev.Text != "" {
			v.SetSearchText(ev.Text)
		}
		v.Search()
	default:
		return errors.Wrapf(ErrUnknownEvent, "%q", ev.Type)
	}
	return nil
}
