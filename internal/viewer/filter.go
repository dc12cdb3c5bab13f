// Package viewer derives the visible page of the visitor table, and the
// dashboard counts, from a list already fetched from the backend.
//
// Every function here is pure: output depends only on the records, the
// FilterState and the supplied "now".
package viewer

import (
	"sort"
	"strings"
	"time"

	"visitor-cli/pkg/models"
)

// SortOrder is the check-in time ordering of the table.
type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// DefaultPageSize is the number of rows per table page.
const DefaultPageSize = 10

// AllPurposes disables the purpose predicate, as does an empty Purpose.
const AllPurposes = "All"

// FilterState is the search/filter/sort/page selection applied to the table.
type FilterState struct {
	Search   string
	Purpose  string
	Start    string // YYYY-MM-DD, inclusive
	End      string // YYYY-MM-DD, inclusive
	Sort     SortOrder
	Page     int
	PageSize int
}

// NewFilterState returns the initial selection: everything, newest first, page 1.
func NewFilterState() FilterState {
	return FilterState{Sort: SortDesc, Page: 1, PageSize: DefaultPageSize}
}

// The With* helpers reset Page to 1; callers use them for every filter change.

func (f FilterState) WithSearch(s string) FilterState {
	f.Search = s
	f.Page = 1
	return f
}

func (f FilterState) WithPurpose(p string) FilterState {
	f.Purpose = p
	f.Page = 1
	return f
}

func (f FilterState) WithDateRange(start, end string) FilterState {
	f.Start, f.End = start, end
	f.Page = 1
	return f
}

func (f FilterState) WithSort(o SortOrder) FilterState {
	f.Sort = o
	f.Page = 1
	return f
}

// ToggleSort flips between newest-first and oldest-first.
func (f FilterState) ToggleSort() FilterState {
	if f.Sort == SortAsc {
		return f.WithSort(SortDesc)
	}
	return f.WithSort(SortAsc)
}

// WithPage moves to page n without touching the filters.
func (f FilterState) WithPage(n int) FilterState {
	if n < 1 {
		n = 1
	}
	f.Page = n
	return f
}

// ListQuery mirrors the selection as server-side query parameters.
// The result is re-filtered locally regardless of what the backend does with them.
func (f FilterState) ListQuery() models.ListQuery {
	q := models.ListQuery{
		Search:    f.Search,
		StartDate: f.Start,
		EndDate:   f.End,
	}
	if !isAllPurposes(f.Purpose) {
		q.Purpose = f.Purpose
	}
	return q
}

// Filter keeps records matching search AND purpose AND date range, in input order.
func Filter(records []models.Visitor, f FilterState) []models.Visitor {
	needle := strings.ToLower(f.Search)
	out := make([]models.Visitor, 0, len(records))
	for _, v := range records {
		if matchesSearch(v, needle) && matchesPurpose(v, f.Purpose) && matchesDates(v, f.Start, f.End) {
			out = append(out, v)
		}
	}
	return out
}

func matchesSearch(v models.Visitor, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v.Name), needle) ||
		strings.Contains(strings.ToLower(v.Email), needle) ||
		strings.Contains(strings.ToLower(v.Phone), needle)
}

func matchesPurpose(v models.Visitor, purpose string) bool {
	return isAllPurposes(purpose) || string(v.Purpose) == purpose
}

func isAllPurposes(p string) bool {
	return p == "" || strings.EqualFold(p, AllPurposes)
}

// Dates compare as ISO strings. A record without a usable timestamp fails any active bound.
func matchesDates(v models.Visitor, start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	d := v.CheckinDate(nil)
	if d == "" {
		return false
	}
	if start != "" && d < start {
		return false
	}
	if end != "" && d > end {
		return false
	}
	return true
}

// Sort returns a copy ordered by check-in time.
// Records with a missing or unparsable timestamp sort as if checked in at now.
func Sort(records []models.Visitor, order SortOrder, now time.Time) []models.Visitor {
	out := make([]models.Visitor, len(records))
	copy(out, records)

	key := func(v models.Visitor) time.Time {
		if v.HasCheckin {
			return v.Checkin
		}
		return now
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == SortAsc {
			return key(out[i]).Before(key(out[j]))
		}
		return key(out[i]).After(key(out[j]))
	})
	return out
}
