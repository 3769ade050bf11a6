package dashboard

import (
	"testing"

	"coursedash/internal/engine"
	"coursedash/internal/models"
	"coursedash/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// recorder logs every host call in order.
type recorder struct {
	calls []string
	Collector
}

func (r *recorder) Chart(spec models.ChartSpec) {
	r.calls = append(r.calls, "chart:"+spec.ID)
	r.Collector.Chart(spec)
}

func (r *recorder) Table(title string, region models.Region, table *engine.CourseTable) {
	r.calls = append(r.calls, "table:"+region.String())
	r.Collector.Table(title, region, table)
}

func (r *recorder) Info(msg string) {
	r.calls = append(r.calls, "info")
	r.Collector.Info(msg)
}

func (r *recorder) Warn(msg string) {
	r.calls = append(r.calls, "warn")
	r.Collector.Warn(msg)
}

func (r *recorder) Fail(err error) {
	r.calls = append(r.calls, "fail")
	r.Collector.Fail(err)
}

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func newDriver() *Driver {
	return NewDriver(report.DefaultColorMap(), nil)
}

func TestRunAwaitingFile(t *testing.T) {
	host := &recorder{}

	state, pass, err := newDriver().Run(&NamedFile{}, host)
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingFile, state)
	assert.Nil(t, pass)
	assert.Equal(t, []string{"info"}, host.calls)
	assert.Equal(t, []string{PromptMessage}, host.Infos)
}

func TestRunRendersEverythingInOrder(t *testing.T) {
	data := workbook(t, [][]interface{}{
		{"regiao", "status do curso", "curso"},
		{"G3", "Concluído", "Excel"},
		{"G1", "Concluído", "Word"},
		{"G1", "Em andamento", "Excel"},
		{"G5", "Não iniciado", "Power BI"},
		{"G11", "Concluído", "Excel"},
	})
	host := &recorder{}

	state, pass, err := newDriver().Run(&NamedFile{Name: "cursos.xlsx", Data: data}, host)
	require.NoError(t, err)
	assert.Equal(t, StateRendering, state)
	require.NotNil(t, pass)
	assert.NotEmpty(t, pass.ID)

	want := []string{"warn", "chart:overall", "chart:by-region", "chart:comparative"}
	for _, r := range models.Regions() {
		want = append(want, "table:"+r.String())
	}
	assert.Equal(t, want, host.calls)

	assert.Equal(t, "Tabela - Região G1", host.Tables[0].Title)
	assert.Len(t, host.Tables[0].Rows, 2)
	assert.Empty(t, host.Tables[1].Rows)

	// G11 is counted in the overall pie
	overall := host.Charts[0].Series[0].Points
	assert.Equal(t, models.ChartPoint{Label: "Concluído", Value: 3, Color: "green"}, overall[0])

	rep := host.Report(pass, "cursos.xlsx")
	assert.Equal(t, 5, rep.Rows)
	assert.Equal(t, pass.ID, rep.PassID)
	assert.Len(t, rep.Charts, 3)
	assert.Len(t, rep.Tables, models.NumRegions)
	require.NotNil(t, rep.KPIs)
}

func TestRunFailsWithoutPartialOutput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		is   error
	}{
		{"not a spreadsheet", []byte("garbage"), engine.ErrFormat},
		{"missing status column", workbook(t, [][]interface{}{{"regiao"}, {"G1"}}), engine.ErrSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &recorder{}
			state, pass, err := newDriver().Run(&NamedFile{Name: "x.xlsx", Data: tt.data}, host)
			assert.ErrorIs(t, err, tt.is)
			assert.Equal(t, StateRendering, state)
			assert.Nil(t, pass)
			assert.Equal(t, []string{"fail"}, host.calls)
			assert.ErrorIs(t, host.Err, tt.is)
		})
	}
}

func TestRunEmptyTable(t *testing.T) {
	host := &recorder{}
	data := workbook(t, [][]interface{}{{"regiao", "status do curso"}})

	_, pass, err := newDriver().Run(&NamedFile{Data: data}, host)
	require.NoError(t, err)
	assert.Equal(t, 0, pass.Table.Len())
	require.Len(t, host.Charts, 3)
	for _, c := range host.Charts {
		assert.True(t, c.Empty())
	}
	assert.Len(t, host.Tables, models.NumRegions)
}

func TestRunIsStateless(t *testing.T) {
	d := newDriver()
	first := workbook(t, [][]interface{}{{"regiao", "status do curso"}, {"G1", "Concluído"}})
	second := workbook(t, [][]interface{}{{"regiao", "status do curso"}, {"G2", "Não iniciado"}, {"G2", "Não iniciado"}})

	_, _, err := d.Run(&NamedFile{Data: first}, &recorder{})
	require.NoError(t, err)

	host := &recorder{}
	_, pass, err := d.Run(&NamedFile{Data: second}, host)
	require.NoError(t, err)
	assert.Equal(t, 2, pass.Table.Len())
	points := host.Charts[0].Series[0].Points
	require.Len(t, points, 1)
	assert.Equal(t, "Não iniciado", points[0].Label)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "awaiting_file", StateAwaitingFile.String())
	assert.Equal(t, "rendering", StateRendering.String())
}
