package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"coursedash/internal/models"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptyChart is returned when a spec has no points to draw.
var ErrEmptyChart = errors.New("chart has no data")

// ErrFaceted is returned when a faceted spec is rendered without picking a facet.
var ErrFaceted = errors.New("faceted chart: render one facet at a time")

// named CSS colours used by the colour map, as hex for go-chart
var cssColors = map[string]string{
	"green":  "008000",
	"yellow": "ffff00",
	"red":    "ff0000",
}

// PNGRenderer draws chart specs as PNG images.
type PNGRenderer struct {
	Width  int
	Height int
}

func (r PNGRenderer) Render(w io.Writer, spec models.ChartSpec) error {
	if spec.Empty() {
		return ErrEmptyChart
	}
	switch {
	case spec.Kind == models.ChartPie && spec.FacetBy != "":
		return ErrFaceted
	case spec.Kind == models.ChartPie:
		return r.renderPie(w, spec)
	case spec.Kind == models.ChartBar:
		return r.renderStackedBar(w, spec)
	}
	return fmt.Errorf("unsupported chart kind %q", spec.Kind)
}

func (r PNGRenderer) renderPie(w io.Writer, spec models.ChartSpec) error {
	values := make([]chart.Value, 0)
	for _, p := range spec.Series[0].Points {
		values = append(values, chart.Value{Label: p.Label, Value: p.Value, Style: fill(p.Color)})
	}
	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func (r PNGRenderer) renderStackedBar(w io.Writer, spec models.ChartSpec) error {
	bars := make([]chart.StackedBar, 0, len(spec.CategoryOrder))
	for _, category := range spec.CategoryOrder {
		bar := chart.StackedBar{Name: category}
		for _, s := range spec.Series {
			for _, p := range s.Points {
				if p.Label == category {
					bar.Values = append(bar.Values, chart.Value{Label: s.Name, Value: p.Value, Style: fill(s.Color)})
				}
			}
		}
		if len(bar.Values) > 0 {
			bars = append(bars, bar)
		}
	}

	sbc := chart.StackedBarChart{
		Title:      spec.Title,
		Width:      r.Width,
		Height:     r.Height,
		BarSpacing: 20,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Bars:       bars,
	}
	return sbc.Render(chart.PNG, w)
}

// Facet extracts a single pie from a faceted spec.
func Facet(spec models.ChartSpec, facet string) (models.ChartSpec, bool) {
	for _, s := range spec.Series {
		if s.Facet == facet {
			single := spec
			single.Title = fmt.Sprintf("%s - %s", spec.Title, facet)
			single.FacetBy = ""
			single.FacetWrap = 0
			single.CategoryOrder = []string{facet}
			single.Series = []models.ChartSeries{s}
			return single, true
		}
	}
	return models.ChartSpec{}, false
}

// fill returns a go-chart style for a colour name, or the default palette.
func fill(color string) chart.Style {
	hex, ok := cssColors[strings.ToLower(color)]
	if !ok {
		if !strings.HasPrefix(color, "#") {
			return chart.Style{}
		}
		hex = strings.TrimPrefix(color, "#")
	}
	c := drawing.ColorFromHex(hex)
	return chart.Style{FillColor: c, StrokeColor: c}
}
