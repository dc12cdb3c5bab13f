package cmd

import (
	"testing"

	"visitor-cli/internal/viewer"
)

func TestFilterFromFlags(t *testing.T) {
	listSearch, listPurpose, listFrom, listTo = "jane", "Delivery", "2024-01-01", "2024-01-31"
	listAsc, listPage, listPageSize = true, 3, 25
	t.Cleanup(func() {
		listSearch, listPurpose, listFrom, listTo = "", viewer.AllPurposes, "", ""
		listAsc, listPage, listPageSize = false, 1, 0
	})

	f := filterFromFlags()
	if f.Search != "jane" || f.Purpose != "Delivery" || f.Start != "2024-01-01" || f.End != "2024-01-31" {
		t.Errorf("filters = %+v", f)
	}
	if f.Sort != viewer.SortAsc {
		t.Errorf("sort = %s", f.Sort)
	}
	if f.Page != 3 || f.PageSize != 25 {
		t.Errorf("page %d size %d", f.Page, f.PageSize)
	}
}

func TestFilterFromFlags_PageSizeFallsBackToConfig(t *testing.T) {
	listPage, listPageSize = 1, 0
	t.Cleanup(func() { listPage = 1 })

	if got := filterFromFlags().PageSize; got != 10 {
		t.Errorf("page size = %d, want 10", got)
	}
}

func TestCommandTree(t *testing.T) {
	for _, path := range [][]string{
		{"checkin"}, {"login"}, {"logout"}, {"whoami"}, {"dashboard"}, {"serve"}, {"exporter"},
		{"visitors", "list"}, {"visitors", "show"}, {"visitors", "delete"}, {"visitors", "export"},
	} {
		c, _, err := rootCmd.Find(path)
		if err != nil || c == rootCmd {
			t.Errorf("command %v not registered", path)
		}
	}
}
