// Package report turns aggregated course counts into renderer-agnostic chart specs.
package report

import (
	"coursedash/internal/engine"
	"coursedash/internal/models"
)

const (
	ChartOverall     = "overall"
	ChartByRegion    = "by-region"
	ChartComparative = "comparative"

	TitleOverall     = "Status dos Cursos por Status Geral"
	TitleByRegion    = "Distribuição de Cursos por Região e Status"
	TitleComparative = "Visão Comparativa de Regiões por Status dos Cursos"

	overallHole = 0.3
	facetWrap   = 5
)

// OverallStatusChart builds a donut chart with one slice per status,
// in summary order.
func OverallStatusChart(summary models.StatusSummary, colors ColorMap) models.ChartSpec {
	spec := models.ChartSpec{
		ID:            ChartOverall,
		Kind:          models.ChartPie,
		Title:         TitleOverall,
		Hole:          overallHole,
		CategoryOrder: make([]string, 0, len(summary)),
		Colors:        colors.Discrete(),
	}

	points := make([]models.ChartPoint, 0, len(summary))
	for _, c := range summary {
		color, _ := colors.Color(c.Status)
		points = append(points, models.ChartPoint{Label: c.Status.Label(), Value: float64(c.Count), Color: color})
		spec.CategoryOrder = append(spec.CategoryOrder, c.Status.Label())
	}
	spec.Series = []models.ChartSeries{{Name: engine.ColumnStatus, Points: points}}
	return spec
}

// RegionStatusChart builds one pie per region present in the summary,
// wrapped five to a row.
func RegionStatusChart(summary models.RegionStatusSummary, colors ColorMap) models.ChartSpec {
	spec := models.ChartSpec{
		ID:            ChartByRegion,
		Kind:          models.ChartPie,
		Title:         TitleByRegion,
		FacetBy:       engine.ColumnRegion,
		FacetWrap:     facetWrap,
		CategoryOrder: make([]string, 0),
		SeriesOrder:   statusLabels(summary.Statuses()),
		Colors:        colors.Discrete(),
		Series:        make([]models.ChartSeries, 0),
	}

	for _, region := range summary.Regions() {
		series := models.ChartSeries{Name: region.String(), Facet: region.String()}
		for _, c := range summary {
			if c.Region != region {
				continue
			}
			color, _ := colors.Color(c.Status)
			series.Points = append(series.Points, models.ChartPoint{Label: c.Status.Label(), Value: float64(c.Count), Color: color})
		}
		spec.CategoryOrder = append(spec.CategoryOrder, region.String())
		spec.Series = append(spec.Series, series)
	}
	return spec
}

// ComparativeBarChart stacks counts per region, one layer per status in
// the order they appear in the summary.
func ComparativeBarChart(summary models.RegionStatusSummary, colors ColorMap) models.ChartSpec {
	spec := models.ChartSpec{
		ID:            ChartComparative,
		Kind:          models.ChartBar,
		Title:         TitleComparative,
		BarMode:       "stack",
		XAxis:         engine.ColumnRegion,
		YAxis:         "Quantidade",
		CategoryOrder: make([]string, 0),
		Colors:        colors.Discrete(),
		Series:        make([]models.ChartSeries, 0),
	}
	for _, region := range summary.Regions() {
		spec.CategoryOrder = append(spec.CategoryOrder, region.String())
	}

	statuses := stackOrder(summary.Statuses())
	spec.SeriesOrder = statusLabels(statuses)
	for _, status := range statuses {
		color, _ := colors.Color(status)
		series := models.ChartSeries{Name: status.Label(), Color: color}
		for _, c := range summary {
			if c.Status == status {
				series.Points = append(series.Points, models.ChartPoint{Label: c.Region.String(), Value: float64(c.Count), Color: color})
			}
		}
		spec.Series = append(spec.Series, series)
	}
	return spec
}

// stackOrder puts known statuses first in their fixed order, then any others.
func stackOrder(present []models.Status) []models.Status {
	seen := make(map[models.Status]bool, len(present))
	for _, s := range present {
		seen[s] = true
	}
	out := make([]models.Status, 0, len(present))
	for _, s := range models.KnownStatuses() {
		if seen[s] {
			out = append(out, s)
			delete(seen, s)
		}
	}
	for _, s := range present {
		if seen[s] {
			out = append(out, s)
		}
	}
	return out
}

func statusLabels(statuses []models.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.Label())
	}
	return out
}
