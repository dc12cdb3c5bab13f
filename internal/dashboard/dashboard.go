// Package dashboard gathers the numbers shown on the admin landing screen.
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"visitor-cli/internal/client"
	"visitor-cli/internal/viewer"
	"visitor-cli/pkg/models"
)

// RecentCount is how many of the latest check-ins the dashboard lists.
const RecentCount = 5

// Source is the subset of the API client the dashboard needs.
type Source interface {
	DashboardStats(ctx context.Context) (models.StatsResponse, error)
	ListAllVisitors(ctx context.Context, q models.ListQuery) ([]models.Visitor, error)
}

// Summary is everything the dashboard renders.
type Summary struct {
	Stats    models.DashboardStats
	Purposes []viewer.PurposeCount
	Recent   []models.Visitor
	// Remote is true when the counts came pre-aggregated from the backend.
	Remote bool
}

// Load fetches stats and the visitor list. A backend without a stats
// endpoint (404) is not an error: the counts are aggregated locally.
func Load(ctx context.Context, src Source, now time.Time) (Summary, error) {
	remote, err := src.DashboardStats(ctx)
	if err != nil && !isNotFound(err) {
		return Summary{}, err
	}

	records, err := src.ListAllVisitors(ctx, models.ListQuery{})
	if err != nil {
		return Summary{}, err
	}

	_, pre := remote.Stats()
	return Summary{
		Stats:    viewer.ResolveStats(remote, records, now),
		Purposes: viewer.PurposeCounts(records),
		Recent:   viewer.Recent(records, RecentCount, now),
		Remote:   pre,
	}, nil
}

func isNotFound(err error) bool {
	var e *client.Error
	return errors.As(err, &e) && e.Kind == client.KindBackend && e.Status == http.StatusNotFound
}
