package engine

import (
	"coursedash/internal/models"

	"github.com/montanaflynn/stats"
)

// CompletionKPIs computes the share of completed courses per region and
// the mean and median of those shares across regions that have courses.
func CompletionKPIs(t *CourseTable) *models.KPISummary {
	summary := &models.KPISummary{Regions: make([]models.RegionKPI, 0, models.NumRegions)}

	var courses, completed [models.NumRegions + 1]int
	overallDone := 0
	for i := 0; i < t.Len(); i++ {
		done := t.Status(i) == models.StatusCompleted
		if done {
			overallDone++
		}
		if r := t.Regions[i]; r.Valid() {
			courses[r]++
			if done {
				completed[r]++
			}
		}
	}

	var rates stats.Float64Data
	for _, r := range models.Regions() {
		if courses[r] == 0 {
			continue
		}
		rate := round(float64(completed[r]) / float64(courses[r]))
		rates = append(rates, rate)
		summary.Regions = append(summary.Regions, models.RegionKPI{
			Region:         r.String(),
			Courses:        courses[r],
			Completed:      completed[r],
			CompletionRate: rate,
		})
	}

	if t.Len() > 0 {
		summary.OverallRate = round(float64(overallDone) / float64(t.Len()))
	}
	// Mean and Median only fail on empty input, which leaves the zero value
	if mean, err := rates.Mean(); err == nil {
		summary.MeanCompletionRate = round(mean)
	}
	if median, err := rates.Median(); err == nil {
		summary.MedianCompletionRate = round(median)
	}
	return summary
}

func round(v float64) float64 {
	r, err := stats.Round(v, 4)
	if err != nil {
		return v
	}
	return r
}
