package engine

import (
	"sort"
	"strconv"
	"strings"

	"persontable/internal/models"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
)

// NameMatch selects which part of a name the text filters look at.
type NameMatch int

const (
	// MatchFullName matches against "first last".
	MatchFullName NameMatch = iota
	// MatchFirstName ignores the last name entirely.
	MatchFirstName
)

func ParseNameMatch(s string) (NameMatch, error) {
	switch s {
	case "", "full":
		return MatchFullName, nil
	case "first":
		return MatchFirstName, nil
	}
	return 0, errors.Errorf("unknown name match %q", s)
}

func (m NameMatch) String() string {
	if m == MatchFirstName {
		return "first"
	}
	return "full"
}

func nameText(n models.Name, m NameMatch) string {
	if m == MatchFirstName {
		return n.First
	}
	return strings.TrimSpace(n.First + " " + n.Last)
}

type matcher func(r *models.Record) bool

// nameMatcher matches records whose name text contains any of needles,
// compared under Unicode case folding. The needles are folded once and the
// caser is reused, so a matcher belongs to a single goroutine.
func nameMatcher(needles []string, nm NameMatch) matcher {
	f := cases.Fold()
	folded := make([]string, len(needles))
	for i, n := range needles {
		folded[i] = f.String(n)
	}
	return func(r *models.Record) bool {
		text := f.String(nameText(r.Name, nm))
		for _, n := range folded {
			if strings.Contains(text, n) {
				return true
			}
		}
		return false
	}
}

// compileFilters turns per-column filter values into predicates. Values of
// one column are OR'ed, columns are AND'ed by the caller.
func compileFilters(filters models.Filters, nm NameMatch) ([]matcher, error) {
	keys := make([]string, 0, len(filters))
	for k, v := range filters {
		if len(v) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]matcher, 0, len(keys))
	for _, key := range keys {
		values := filters[key]
		switch key {
		case ColumnID:
			out = append(out, func(r *models.Record) bool {
				id := strconv.Itoa(r.RecordID)
				for _, v := range values {
					if strings.Contains(id, strings.TrimSpace(v)) {
						return true
					}
				}
				return false
			})
		case ColumnName:
			out = append(out, nameMatcher(values, nm))
		case ColumnGender:
			out = append(out, func(r *models.Record) bool {
				for _, v := range values {
					if v == r.Gender {
						return true
					}
				}
				return false
			})
		default:
			return nil, errors.Wrapf(ErrUnknownColumn, "filter on %q", key)
		}
	}
	return out, nil
}

func searchMatcher(text string, nm NameMatch) matcher {
	if text == "" {
		return func(*models.Record) bool { return true }
	}
	return nameMatcher([]string{text}, nm)
}

// filterRecords returns the records passing every matcher, in input order.
func filterRecords(recs []models.Record, matchers ...matcher) []models.Record {
	out := make([]models.Record, 0, len(recs))
next:
	for i := range recs {
		for _, m := range matchers {
			if !m(&recs[i]) {
				continue next
			}
		}
		out = append(out, recs[i])
	}
	return out
}
