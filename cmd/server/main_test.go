package main

import (
	"os"
	"path/filepath"
	"testing"

	"coursedash/internal/dashboard"
	"coursedash/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCharts(t *testing.T) {
	driver := dashboard.NewDriver(report.DefaultColorMap(), nil)
	host := &dashboard.Collector{}
	csv := []byte("regiao,status do curso\nG1,Concluído\nG1,Em andamento\nG4,Não iniciado\n")

	_, err := runPass(driver, host, "cursos.csv", csv)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "charts")
	require.NoError(t, writeCharts(report.PNGRenderer{Width: 400, Height: 300}, host.Charts, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"overall.png", "comparative.png", "region-G1.png", "region-G4.png"}, names)
}

func TestWriteChartsSkipsEmpty(t *testing.T) {
	driver := dashboard.NewDriver(report.DefaultColorMap(), nil)
	host := &dashboard.Collector{}

	_, err := runPass(driver, host, "vazio.csv", []byte("regiao,status do curso\n"))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, writeCharts(report.PNGRenderer{Width: 400, Height: 300}, host.Charts, dir))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunPassError(t *testing.T) {
	driver := dashboard.NewDriver(report.DefaultColorMap(), nil)
	_, err := runPass(driver, &dashboard.Collector{}, "x.xlsx", []byte("junk"))
	assert.ErrorContains(t, err, "report failed")
}
