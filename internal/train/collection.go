package train

import (
	"slices"
	"strings"
)

// Collection is the ordered list of records for one run.
type Collection []Record

// Add appends a record and re-sorts the collection by start time.
func Add(c Collection, num int, destination, startTime string) Collection {
	c = append(c, NewRecord(num, destination, startTime))
	SortByStartTime(c)
	return c
}

// SortByStartTime orders records by lexical start time. Equal keys keep
// their relative order.
func SortByStartTime(c Collection) {
	slices.SortStableFunc(c, func(a, b Record) int {
		return strings.Compare(a.StartTime, b.StartTime)
	})
}

// FilterByDestination returns the records whose trimmed destination equals
// destination exactly. Records without a destination never match.
func FilterByDestination(c Collection, destination string) Collection {
	matches := Collection{}
	for _, r := range c {
		if !r.Has(FieldDestination) {
			continue
		}
		if strings.TrimSpace(r.Destination) == destination {
			matches = append(matches, r)
		}
	}
	return matches
}
