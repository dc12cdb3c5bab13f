package viewer

import (
	"time"

	"visitor-cli/pkg/models"
)

// Page is one rendered table page plus the sequence it was cut from.
type Page struct {
	Items    []models.Visitor
	Filtered []models.Visitor // filtered and sorted, all pages
	Total    int
	Page     int
	Pages    int
	PageSize int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.Pages }

// Paginate returns records [(page-1)*size, page*size). Page is 1-based.
func Paginate(records []models.Visitor, page, size int) []models.Visitor {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(records) {
		return []models.Visitor{}
	}
	end := start + size
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// PageCount is ceil(n/size).
func PageCount(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// View filters, sorts and paginates in one step.
func View(records []models.Visitor, f FilterState, now time.Time) Page {
	size := f.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := f.Page
	if page < 1 {
		page = 1
	}

	sorted := Sort(Filter(records, f), f.Sort, now)
	return Page{
		Items:    Paginate(sorted, page, size),
		Filtered: sorted,
		Total:    len(sorted),
		Page:     page,
		Pages:    PageCount(len(sorted), size),
		PageSize: size,
	}
}

// Recent returns up to n records, newest first.
func Recent(records []models.Visitor, n int, now time.Time) []models.Visitor {
	sorted := Sort(records, SortDesc, now)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
