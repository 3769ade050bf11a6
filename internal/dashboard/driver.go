// Package dashboard runs one rendering pass: load the upload, aggregate,
// compose charts, split tables and hand everything to a Host.
package dashboard

import (
	"fmt"
	"time"

	"coursedash/internal/engine"
	"coursedash/internal/models"
	"coursedash/internal/report"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PromptMessage is shown while no file has been uploaded.
const PromptMessage = "Por favor, faça o upload de um arquivo Excel."

type State int

const (
	StateAwaitingFile State = iota
	StateRendering
)

func (s State) String() string {
	if s == StateRendering {
		return "rendering"
	}
	return "awaiting_file"
}

// FileSource supplies the uploaded bytes for a pass, or false when there are none.
type FileSource interface {
	File() ([]byte, bool)
}

// Host displays the artifacts of a pass.
type Host interface {
	Chart(spec models.ChartSpec)
	Table(title string, region models.Region, table *engine.CourseTable)
	Info(msg string)
	Warn(msg string)
	Fail(err error)
}

// NamedFile is a FileSource backed by an in-memory upload.
type NamedFile struct {
	Name string
	Data []byte
}

func (f *NamedFile) File() ([]byte, bool) {
	if f == nil || f.Data == nil {
		return nil, false
	}
	return f.Data, true
}

// Pass is what a rendering pass computed before handing it to the host.
type Pass struct {
	ID       string
	Table    *engine.CourseTable
	Warnings []engine.Warning
	Charts   []models.ChartSpec
	Regions  []engine.RegionTable
	KPIs     *models.KPISummary
}

type Driver struct {
	colors report.ColorMap
	logger *zap.Logger
}

func NewDriver(colors report.ColorMap, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{colors: colors, logger: logger}
}

// Run executes one pass. Without a file it prompts and returns
// StateAwaitingFile. Otherwise every artifact is computed first, so a
// failing pass hands the host nothing but the error.
func (d *Driver) Run(src FileSource, host Host) (State, *Pass, error) {
	data, ok := src.File()
	if !ok {
		host.Info(PromptMessage)
		return StateAwaitingFile, nil, nil
	}

	start := time.Now()
	pass, err := d.Compute(fileName(src), data)
	if err != nil {
		d.logger.Warn("Rendering pass failed", zap.Error(err))
		host.Fail(err)
		return StateRendering, nil, err
	}

	for _, w := range pass.Warnings {
		host.Warn(w.String())
	}
	for _, spec := range pass.Charts {
		host.Chart(spec)
	}
	for _, rt := range pass.Regions {
		host.Table(TableTitle(rt.Region), rt.Region, rt.Table)
	}

	d.logger.Info("Rendering pass complete",
		zap.String("pass", pass.ID),
		zap.Int("rows", pass.Table.Len()),
		zap.Int("warnings", len(pass.Warnings)),
		zap.Duration("took", time.Since(start)))
	return StateRendering, pass, nil
}

// Compute runs load, aggregate, compose and split without touching a host.
func (d *Driver) Compute(name string, data []byte) (*Pass, error) {
	table, err := engine.LoadNamed(name, data)
	if err != nil {
		return nil, err
	}

	overall := engine.OverallStatusCounts(table)
	byRegion := engine.RegionStatusCounts(table)
	ordered := engine.RegionStatusCountsOrdered(table)

	return &Pass{
		ID:       uuid.NewString(),
		Table:    table,
		Warnings: table.Warnings(),
		Charts: []models.ChartSpec{
			report.OverallStatusChart(overall, d.colors),
			report.RegionStatusChart(byRegion, d.colors),
			report.ComparativeBarChart(ordered, d.colors),
		},
		Regions: engine.SplitByRegion(table),
		KPIs:    engine.CompletionKPIs(table),
	}, nil
}

// TableTitle is the section heading for a region's table.
func TableTitle(r models.Region) string {
	return fmt.Sprintf("Tabela - Região %s", r)
}

func fileName(src FileSource) string {
	if f, ok := src.(*NamedFile); ok && f != nil {
		return f.Name
	}
	return ""
}
