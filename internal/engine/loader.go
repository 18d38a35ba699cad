package engine

import (
	"bytes"
	"math"
	"os"

	"persontable/internal/models"

	"github.com/pkg/errors"
)

// fastInt parses "123" -> 123. Anything but ASCII digits, or a value past
// math.MaxInt32, is rejected.
func fastInt(b []byte) (int32, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int32
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		d := int32(c - '0')
		if n > (math.MaxInt32-d)/10 {
			return 0, false
		}
		n = n*10 + d
	}
	return n, true
}

// LoadCSV reads a person CSV (first_name,last_name,gender,age) into a
// ColumnStore.
func LoadCSV(path string) (*ColumnStore, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	store, err := ParseCSV(content)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return store, nil
}

func ParseCSV(content []byte) (*ColumnStore, error) {
	// Skip header row
	if idx := bytes.IndexByte(content, '\n'); idx != -1 {
		content = content[idx+1:]
	} else {
		content = nil
	}

	sep := []byte{','}
	nl := []byte{'\n'}
	records := make([]models.Record, 0, bytes.Count(content, nl)+1)

	lineNo := 1
	for len(content) > 0 {
		var line []byte
		line, content, _ = bytes.Cut(content, nl)
		lineNo++

		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var field []byte
		var rest = line
		var found bool
		var r models.Record

		// 0: First name
		if field, rest, found = bytes.Cut(rest, sep); !found {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: missing columns", lineNo)
		}
		r.Name.First = string(bytes.TrimSpace(field))

		// 1: Last name (may be empty)
		if field, rest, found = bytes.Cut(rest, sep); !found {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: missing columns", lineNo)
		}
		r.Name.Last = string(bytes.TrimSpace(field))

		// 2: Gender
		if field, rest, found = bytes.Cut(rest, sep); !found {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: missing age", lineNo)
		}
		r.Gender = string(bytes.TrimSpace(field))

		// 3: Age. Trailing columns are ignored.
		field, _, _ = bytes.Cut(rest, sep)
		age, ok := fastInt(bytes.TrimSpace(field))
		if !ok {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: bad age %q", lineNo, field)
		}
		r.Age = int(age)

		records = append(records, r)
	}

	return NewColumnStore(records), nil
}
