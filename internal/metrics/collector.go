// Package metrics exposes dashboard counts as Prometheus gauges.
package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"visitor-cli/internal/client"
	"visitor-cli/internal/dashboard"
	"visitor-cli/internal/viewer"
	"visitor-cli/pkg/models"
)

var (
	upDesc = prometheus.NewDesc(
		"visitor_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"visitor_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	totalDesc = prometheus.NewDesc(
		"visitor_checkins_total", "Total visitors recorded.", nil, nil,
	)
	todayDesc = prometheus.NewDesc(
		"visitor_checkins_today", "Visitors checked in today.", nil, nil,
	)
	weekDesc = prometheus.NewDesc(
		"visitor_checkins_this_week", "Visitors checked in since Sunday.", nil, nil,
	)
	monthDesc = prometheus.NewDesc(
		"visitor_checkins_this_month", "Visitors checked in this calendar month.", nil, nil,
	)
	purposeDesc = prometheus.NewDesc(
		"visitor_checkins_by_purpose", "Visitors grouped by purpose of visit.", []string{"purpose"}, nil,
	)
)

// VisitorCollector scrapes the backend on every Prometheus collection.
type VisitorCollector struct {
	Source dashboard.Source
	// Login re-authenticates after a 401. Nil disables the retry.
	Login   func(ctx context.Context) error
	Now     func() time.Time
	Timeout time.Duration

	mu sync.Mutex
}

func (c *VisitorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- totalDesc
	ch <- todayDesc
	ch <- weekDesc
	ch <- monthDesc
	ch <- purposeDesc
}

func (c *VisitorCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	success := 1.0
	sum, err := c.loadWithRetry(ctx)
	if err != nil {
		success = 0.0
		log.Printf("Error scraping dashboard: %v", err)
	} else {
		ch <- prometheus.MustNewConstMetric(totalDesc, prometheus.GaugeValue, float64(sum.Stats.Total))
		ch <- prometheus.MustNewConstMetric(todayDesc, prometheus.GaugeValue, float64(sum.Stats.Today))
		ch <- prometheus.MustNewConstMetric(weekDesc, prometheus.GaugeValue, float64(sum.Stats.ThisWeek))
		ch <- prometheus.MustNewConstMetric(monthDesc, prometheus.GaugeValue, float64(sum.Stats.ThisMonth))
		for _, p := range purposeSeries(sum.Purposes) {
			ch <- prometheus.MustNewConstMetric(purposeDesc, prometheus.GaugeValue, float64(p.Count), string(p.Purpose))
		}
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func (c *VisitorCollector) loadWithRetry(ctx context.Context) (dashboard.Summary, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}

	sum, err := dashboard.Load(ctx, c.Source, now())
	if err == nil || !client.IsAuth(err) || c.Login == nil {
		return sum, err
	}
	if lerr := c.Login(ctx); lerr != nil {
		return dashboard.Summary{}, lerr
	}
	return dashboard.Load(ctx, c.Source, now())
}

// purposeSeries labels a missing purpose "unknown" and merges it with a
// backend purpose of that name, so each label value is emitted once.
func purposeSeries(counts []viewer.PurposeCount) []viewer.PurposeCount {
	out := make([]viewer.PurposeCount, 0, len(counts))
	index := make(map[models.Purpose]int, len(counts))
	for _, p := range counts {
		if p.Purpose == "" {
			p.Purpose = "unknown"
		}
		if i, ok := index[p.Purpose]; ok {
			out[i].Count += p.Count
			continue
		}
		index[p.Purpose] = len(out)
		out = append(out, p)
	}
	return out
}
