package dashboard

import (
	"coursedash/internal/engine"
	"coursedash/internal/models"
)

// Collector is a Host that records what a pass emits, in emission order.
type Collector struct {
	Infos    []string
	Warnings []string
	Charts   []models.ChartSpec
	Tables   []models.RegionTable
	Err      error
}

func (c *Collector) Chart(spec models.ChartSpec) {
	c.Charts = append(c.Charts, spec)
}

func (c *Collector) Table(title string, region models.Region, table *engine.CourseTable) {
	rt := models.RegionTable{
		Region:  region.String(),
		Title:   title,
		Columns: table.Columns,
		Rows:    table.Cells,
	}
	if rt.Columns == nil {
		rt.Columns = []string{}
	}
	if rt.Rows == nil {
		rt.Rows = [][]string{}
	}
	c.Tables = append(c.Tables, rt)
}

func (c *Collector) Info(msg string) { c.Infos = append(c.Infos, msg) }

func (c *Collector) Warn(msg string) { c.Warnings = append(c.Warnings, msg) }

func (c *Collector) Fail(err error) { c.Err = err }

// Report packages the collected artifacts. pass may be nil for a pass
// that never loaded a file.
func (c *Collector) Report(pass *Pass, fileName string) models.Report {
	r := models.Report{
		FileName: fileName,
		Warnings: append([]string{}, c.Warnings...),
		Charts:   append([]models.ChartSpec{}, c.Charts...),
		Tables:   append([]models.RegionTable{}, c.Tables...),
	}
	if pass != nil {
		r.PassID = pass.ID
		r.Rows = pass.Table.Len()
		r.KPIs = pass.KPIs
	}
	return r
}

// RegionTable returns the collected section for a region.
func (c *Collector) RegionTable(region models.Region) (models.RegionTable, bool) {
	for _, t := range c.Tables {
		if t.Region == region.String() {
			return t, true
		}
	}
	return models.RegionTable{}, false
}
