package orders

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortField string

const (
	SortNone      SortField = ""
	SortByID      SortField = "id"
	SortByUser    SortField = "user"
	SortByProject SortField = "project"
	SortByAddress SortField = "address"
	SortByDate    SortField = "date"
	SortByStatus  SortField = "status"
)

// SortFields lists the sortable columns in table order.
var SortFields = []SortField{SortByID, SortByUser, SortByProject, SortByAddress, SortByDate, SortByStatus}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseSortField accepts "" (no sort) or one of SortFields.
func ParseSortField(raw string) (SortField, error) {
	field := SortField(strings.ToLower(strings.TrimSpace(raw)))
	if field == SortNone || slices.Contains(SortFields, field) {
		return field, nil
	}
	return SortNone, fmt.Errorf("%w: %q", ErrUnknownSortField, raw)
}

// ParseDirection accepts "asc" or "desc"; "" means asc.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case "", Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return Asc, fmt.Errorf("%w: %q", ErrUnknownDirection, raw)
}

func (d Direction) Reverse() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

type sortEntry struct {
	record OrderRecord
	text   string
	stamp  int64
}

// Sort returns a stably sorted copy of records. With SortNone the copy keeps the input order.
// Text columns use English collation; the date column compares ParseApproxDate timestamps
// computed against now.
func Sort(records []OrderRecord, field SortField, direction Direction, now time.Time) []OrderRecord {
	if field == SortNone {
		return slices.Clone(records)
	}

	entries := make([]sortEntry, len(records))
	for i, record := range records {
		entries[i] = sortEntry{record: record}
		if field == SortByDate {
			entries[i].stamp = ParseApproxDate(record.Date, now)
		} else {
			entries[i].text = sortText(record, field)
		}
	}

	var compare func(a, b sortEntry) int
	if field == SortByDate {
		compare = func(a, b sortEntry) int { return cmp.Compare(a.stamp, b.stamp) }
	} else {
		collator := collate.New(language.English)
		compare = func(a, b sortEntry) int { return collator.CompareString(a.text, b.text) }
	}
	if direction == Desc {
		ascending := compare
		compare = func(a, b sortEntry) int { return ascending(b, a) }
	}
	slices.SortStableFunc(entries, compare)

	sorted := make([]OrderRecord, len(entries))
	for i, entry := range entries {
		sorted[i] = entry.record
	}
	return sorted
}

func sortText(record OrderRecord, field SortField) string {
	switch field {
	case SortByID:
		return record.ID
	case SortByUser:
		return record.User.Name
	case SortByProject:
		return record.Project
	case SortByAddress:
		return record.Address
	case SortByStatus:
		return record.Status.Label
	}
	return ""
}
