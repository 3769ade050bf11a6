package models

type ChartKind string

const (
	ChartPie ChartKind = "pie"
	ChartBar ChartKind = "bar"
)

// ChartPoint is one slice of a pie or one segment of a bar.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	// Color is empty when the renderer should pick its default.
	Color string `json:"color,omitempty"`
}

// ChartSeries is one pie (facet) or one stack layer.
type ChartSeries struct {
	Name   string       `json:"name"`
	Facet  string       `json:"facet,omitempty"`
	Color  string       `json:"color,omitempty"`
	Points []ChartPoint `json:"points"`
}

// ChartSpec describes a chart independently of the rendering technology.
type ChartSpec struct {
	ID    string    `json:"id"`
	Kind  ChartKind `json:"kind"`
	Title string    `json:"title"`
	// Hole is the donut ratio for pie charts.
	Hole float64 `json:"hole,omitempty"`
	// FacetBy names the column facets are taken from; FacetWrap is facets per row.
	FacetBy   string `json:"facet_by,omitempty"`
	FacetWrap int    `json:"facet_wrap,omitempty"`
	BarMode   string `json:"bar_mode,omitempty"`
	XAxis     string `json:"x_axis,omitempty"`
	YAxis     string `json:"y_axis,omitempty"`
	// CategoryOrder is the x-axis (or facet) order; SeriesOrder the legend order.
	CategoryOrder []string          `json:"category_order"`
	SeriesOrder   []string          `json:"series_order,omitempty"`
	Colors        map[string]string `json:"colors"`
	Series        []ChartSeries     `json:"series"`
}

// Empty reports whether the chart carries no data points.
func (c ChartSpec) Empty() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}
