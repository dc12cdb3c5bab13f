package models

// DashboardStats are the four headline counts shown on the dashboard.
type DashboardStats struct {
	Total     int `json:"total_visitors"`
	Today     int `json:"today_visitors"`
	ThisWeek  int `json:"this_week_visitors"`
	ThisMonth int `json:"this_month_visitors"`
}

// StatsResponse is the body of GET /api/dashboard/stats/.
// TotalVisitors is nil when the backend does not pre-aggregate.
type StatsResponse struct {
	TotalVisitors     *int `json:"total_visitors"`
	TodayVisitors     int  `json:"today_visitors"`
	ThisWeekVisitors  int  `json:"this_week_visitors"`
	ThisMonthVisitors int  `json:"this_month_visitors"`
}

// Stats converts the response; ok is false when no totals were present.
func (r StatsResponse) Stats() (DashboardStats, bool) {
	if r.TotalVisitors == nil {
		return DashboardStats{}, false
	}
	return DashboardStats{
		Total:     *r.TotalVisitors,
		Today:     r.TodayVisitors,
		ThisWeek:  r.ThisWeekVisitors,
		ThisMonth: r.ThisMonthVisitors,
	}, true
}
