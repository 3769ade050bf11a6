package report

import (
	"bytes"
	"testing"

	"coursedash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestRenderPNG(t *testing.T) {
	r := PNGRenderer{Width: 640, Height: 480}
	colors := DefaultColorMap()

	overall := OverallStatusChart(models.StatusSummary{
		{Status: models.StatusCompleted, Count: 3},
		{Status: models.StatusInProgress, Count: 1},
	}, colors)
	comparative := ComparativeBarChart(sampleSummary(), colors)

	for _, spec := range []models.ChartSpec{overall, comparative} {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, spec), spec.ID)
		assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), spec.ID)
	}
}

func TestRenderFacet(t *testing.T) {
	r := PNGRenderer{Width: 400, Height: 400}
	spec := RegionStatusChart(sampleSummary(), DefaultColorMap())

	var buf bytes.Buffer
	assert.ErrorIs(t, r.Render(&buf, spec), ErrFaceted)

	g1, ok := Facet(spec, "G1")
	require.True(t, ok)
	assert.Equal(t, "Distribuição de Cursos por Região e Status - G1", g1.Title)
	require.NoError(t, r.Render(&buf, g1))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	_, ok = Facet(spec, "G2")
	assert.False(t, ok)
}

func TestFill(t *testing.T) {
	assert.True(t, fill("").FillColor.IsZero())
	assert.True(t, fill("purple").FillColor.IsZero())
	assert.Equal(t, drawing.ColorFromHex("008000"), fill("GREEN").FillColor)
	assert.Equal(t, drawing.ColorFromHex("336699"), fill("#336699").FillColor)
}

func TestRenderInjectedColors(t *testing.T) {
	colors := NewColorMap(map[models.Status]string{
		models.StatusCompleted:  "#336699",
		models.StatusInProgress: "purple",
	})
	spec := OverallStatusChart(models.StatusSummary{
		{Status: models.StatusCompleted, Count: 2},
		{Status: models.StatusInProgress, Count: 1},
	}, colors)
	require.Equal(t, "#336699", spec.Series[0].Points[0].Color)

	var buf bytes.Buffer
	require.NoError(t, PNGRenderer{Width: 400, Height: 300}.Render(&buf, spec))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}
