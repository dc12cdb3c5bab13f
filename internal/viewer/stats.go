package viewer

import (
	"sort"
	"time"

	"visitor-cli/pkg/models"
)

// Aggregate counts visitors in total, today, this week (starting Sunday)
// and this calendar month, relative to now's local date.
func Aggregate(records []models.Visitor, now time.Time) models.DashboardStats {
	now = now.In(time.Local)
	today := now.Format(models.DateLayout)
	weekStart := now.AddDate(0, 0, -int(now.Weekday())).Format(models.DateLayout)
	month := today[:7]

	stats := models.DashboardStats{Total: len(records)}
	for _, v := range records {
		d := v.CheckinDate(time.Local)
		if d == "" {
			continue
		}
		if d == today {
			stats.Today++
		}
		if d >= weekStart {
			stats.ThisWeek++
		}
		if d[:7] == month {
			stats.ThisMonth++
		}
	}
	return stats
}

// ResolveStats prefers the backend's pre-aggregated totals and only
// aggregates locally when total_visitors was absent.
func ResolveStats(remote models.StatsResponse, records []models.Visitor, now time.Time) models.DashboardStats {
	if s, ok := remote.Stats(); ok {
		return s
	}
	return Aggregate(records, now)
}

// PurposeCount is one row of the purpose breakdown.
type PurposeCount struct {
	Purpose models.Purpose
	Count   int
}

// PurposeCounts returns a count for every known purpose, in enumeration order,
// followed by any unknown purposes the backend returned, sorted by name.
func PurposeCounts(records []models.Visitor) []PurposeCount {
	counts := make(map[models.Purpose]int)
	for _, v := range records {
		counts[v.Purpose]++
	}

	out := make([]PurposeCount, 0, len(counts)+len(models.Purposes))
	for _, p := range models.Purposes {
		out = append(out, PurposeCount{Purpose: p, Count: counts[p]})
		delete(counts, p)
	}

	extra := make([]PurposeCount, 0, len(counts))
	for p, n := range counts {
		extra = append(extra, PurposeCount{Purpose: p, Count: n})
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Purpose < extra[j].Purpose })
	return append(out, extra...)
}
