package metrics

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"visitor-cli/internal/client"
	"visitor-cli/pkg/models"
)

var now = time.Date(2024, time.January, 17, 12, 0, 0, 0, time.Local)

type fakeSource struct {
	authFailures int
	records      []models.Visitor
}

func (f *fakeSource) DashboardStats(context.Context) (models.StatsResponse, error) {
	if f.authFailures > 0 {
		f.authFailures--
		return models.StatsResponse{}, &client.Error{Kind: client.KindAuth, Status: http.StatusUnauthorized}
	}
	return models.StatsResponse{}, nil
}

func (f *fakeSource) ListAllVisitors(context.Context, models.ListQuery) ([]models.Visitor, error) {
	return f.records, nil
}

func records() []models.Visitor {
	return []models.Visitor{
		models.WireVisitor{Name: "A", Purpose: "Interview", CheckinTime: "2024-01-17T08:00:00"}.Normalize(),
		models.WireVisitor{Name: "B", Purpose: "Interview", CheckinTime: "2024-01-15T08:00:00"}.Normalize(),
		models.WireVisitor{Name: "C", Purpose: "Delivery", CheckinTime: "2024-01-02T08:00:00"}.Normalize(),
	}
}

func TestCollector_EmitsDashboardGauges(t *testing.T) {
	c := &VisitorCollector{
		Source: &fakeSource{records: records()},
		Now:    func() time.Time { return now },
	}

	expected := `
# HELP visitor_checkins_this_month Visitors checked in this calendar month.
# TYPE visitor_checkins_this_month gauge
visitor_checkins_this_month 3
# HELP visitor_checkins_this_week Visitors checked in since Sunday.
# TYPE visitor_checkins_this_week gauge
visitor_checkins_this_week 2
# HELP visitor_checkins_today Visitors checked in today.
# TYPE visitor_checkins_today gauge
visitor_checkins_today 1
# HELP visitor_checkins_total Total visitors recorded.
# TYPE visitor_checkins_total gauge
visitor_checkins_total 3
# HELP visitor_up Was the last scrape successful.
# TYPE visitor_up gauge
visitor_up 1
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected),
		"visitor_checkins_total", "visitor_checkins_today", "visitor_checkins_this_week",
		"visitor_checkins_this_month", "visitor_up")
	if err != nil {
		t.Fatal(err)
	}

	if n := testutil.CollectAndCount(c, "visitor_checkins_by_purpose"); n != len(models.Purposes) {
		t.Errorf("purpose series = %d", n)
	}
}

func TestCollector_RelogsInAfterAuthError(t *testing.T) {
	src := &fakeSource{authFailures: 1, records: records()}
	logins := 0
	c := &VisitorCollector{
		Source: src,
		Login:  func(context.Context) error { logins++; return nil },
		Now:    func() time.Time { return now },
	}

	expected := `
# HELP visitor_up Was the last scrape successful.
# TYPE visitor_up gauge
visitor_up 1
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "visitor_up"); err != nil {
		t.Fatal(err)
	}
	if logins != 1 {
		t.Errorf("logins = %d", logins)
	}
}

func TestCollector_DownWhenScrapeFails(t *testing.T) {
	c := &VisitorCollector{
		Source: &fakeSource{authFailures: 5},
		Now:    func() time.Time { return now },
	}

	expected := `
# HELP visitor_up Was the last scrape successful.
# TYPE visitor_up gauge
visitor_up 0
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(expected), "visitor_up"); err != nil {
		t.Fatal(err)
	}
	if n := testutil.CollectAndCount(c, "visitor_checkins_total"); n != 0 {
		t.Errorf("no counts expected on failure, got %d", n)
	}
}

func TestCollector_MissingPurposeMergesWithUnknown(t *testing.T) {
	c := &VisitorCollector{
		Source: &fakeSource{records: []models.Visitor{
			models.WireVisitor{Name: "A", Purpose: "", CheckinTime: "2024-01-17T08:00:00"}.Normalize(),
			models.WireVisitor{Name: "B", Purpose: "unknown", CheckinTime: "2024-01-17T09:00:00"}.Normalize(),
		}},
		Now: func() time.Time { return now },
	}

	reg := prometheus.NewPedanticRegistry()
	reg.MustRegister(c)
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	var unknown float64
	series := 0
	for _, mf := range families {
		if mf.GetName() != "visitor_checkins_by_purpose" {
			continue
		}
		for _, m := range mf.GetMetric() {
			series++
			for _, l := range m.GetLabel() {
				if l.GetName() == "purpose" && l.GetValue() == "unknown" {
					unknown += m.GetGauge().GetValue()
				}
			}
		}
	}
	if unknown != 2 {
		t.Errorf("unknown = %v, want 2", unknown)
	}
	if series != len(models.Purposes)+1 {
		t.Errorf("series = %d, want %d", series, len(models.Purposes)+1)
	}
}
