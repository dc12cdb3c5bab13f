package dashboard

import (
	"context"
	"net/http"
	"testing"
	"time"

	"visitor-cli/internal/client"
	"visitor-cli/pkg/models"
)

type fakeSource struct {
	stats    models.StatsResponse
	statsErr error
	records  []models.Visitor
	listErr  error
}

func (f fakeSource) DashboardStats(context.Context) (models.StatsResponse, error) {
	return f.stats, f.statsErr
}

func (f fakeSource) ListAllVisitors(context.Context, models.ListQuery) ([]models.Visitor, error) {
	return f.records, f.listErr
}

var now = time.Date(2024, time.January, 17, 12, 0, 0, 0, time.Local)

func todayRecords() []models.Visitor {
	var out []models.Visitor
	for _, ts := range []string{"2024-01-17T08:00:00", "2024-01-17T09:00:00", "2024-01-17T10:00:00"} {
		out = append(out, models.WireVisitor{Name: "V", Purpose: "Delivery", CheckinTime: ts}.Normalize())
	}
	return out
}

func TestLoad_AggregatesLocallyWithoutStatsEndpoint(t *testing.T) {
	src := fakeSource{
		statsErr: &client.Error{Kind: client.KindBackend, Status: http.StatusNotFound, Message: "Not Found"},
		records:  todayRecords(),
	}

	sum, err := Load(context.Background(), src, now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sum.Remote {
		t.Error("expected local aggregation")
	}
	if sum.Stats.Today != 3 || sum.Stats.Total != 3 {
		t.Errorf("stats = %+v", sum.Stats)
	}
	if len(sum.Recent) != 3 || sum.Recent[0].CheckinRaw != "2024-01-17T10:00:00" {
		t.Errorf("recent = %+v", sum.Recent)
	}
	if sum.Purposes[2].Purpose != models.PurposeDelivery || sum.Purposes[2].Count != 3 {
		t.Errorf("purposes = %+v", sum.Purposes)
	}
}

func TestLoad_UsesBackendTotals(t *testing.T) {
	total := 100
	src := fakeSource{
		stats:   models.StatsResponse{TotalVisitors: &total, TodayVisitors: 7},
		records: todayRecords(),
	}

	sum, err := Load(context.Background(), src, now)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sum.Remote || sum.Stats.Total != 100 || sum.Stats.Today != 7 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestLoad_AuthErrorPropagates(t *testing.T) {
	src := fakeSource{statsErr: &client.Error{Kind: client.KindAuth, Status: http.StatusUnauthorized}}

	if _, err := Load(context.Background(), src, now); !client.IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
}
