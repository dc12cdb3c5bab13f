package client

import (
	"context"

	"visitor-cli/pkg/models"
)

// DashboardStats returns the backend's counts. TotalVisitors is nil when
// the backend does not pre-aggregate; callers then aggregate locally.
func (c *VisitorClient) DashboardStats(ctx context.Context) (models.StatsResponse, error) {
	var result models.StatsResponse

	resp, err := c.request(ctx).
		SetResult(&result).
		Get("/api/dashboard/stats/")
	if err := check(resp, err); err != nil {
		return models.StatsResponse{}, err
	}
	return result, nil
}
