package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"coursedash/internal/models"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"
)

// Load parses the first sheet of an xlsx workbook into a CourseTable.
// The first row is the header; it must contain ColumnRegion and ColumnStatus.
func Load(data []byte) (*CourseTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Format: "xlsx", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Format: "xlsx", Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &FormatError{Format: "xlsx", Err: err}
	}
	return buildTable(rows)
}

// LoadCSV parses a comma-separated export with the same layout as Load.
func LoadCSV(data []byte) (*CourseTable, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Format: "csv", Err: err}
	}
	return buildTable(rows)
}

// LoadNamed picks the parser from the file extension.
func LoadNamed(filename string, data []byte) (*CourseTable, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		return LoadCSV(data)
	}
	return Load(data)
}

func buildTable(rows [][]string) (*CourseTable, error) {
	var header []string
	if len(rows) > 0 {
		header = make([]string, len(rows[0]))
		for i, h := range rows[0] {
			header[i] = norm.NFC.String(strings.TrimSpace(h))
		}
	}

	regionCol, statusCol := -1, -1
	for i, h := range header {
		switch h {
		case ColumnRegion:
			if regionCol < 0 {
				regionCol = i
			}
		case ColumnStatus:
			if statusCol < 0 {
				statusCol = i
			}
		}
	}
	var missing []string
	if regionCol < 0 {
		missing = append(missing, ColumnRegion)
	}
	if statusCol < 0 {
		missing = append(missing, ColumnStatus)
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	body := rows[1:]
	// Cells past the header get placeholder column names
	for _, row := range body {
		for i := len(header); i < len(row); i++ {
			if blank(row[i:]) {
				break
			}
			header = append(header, fmt.Sprintf("Unnamed: %d", i))
		}
	}

	t := &CourseTable{
		Columns:    header,
		Cells:      make([][]string, 0, len(body)),
		Regions:    make([]models.Region, 0, len(body)),
		RawRegions: make([]string, 0, len(body)),
		StatusIDs:  make([]int32, 0, len(body)),
	}
	dict := make(map[models.Status]int32)

	for _, row := range body {
		if blank(row) {
			continue
		}
		// GetRows trims trailing empty cells; pad so every row matches the header.
		// Longer rows only carry blanks past it.
		cells := make([]string, len(header))
		copy(cells, row)
		t.appendRow(cells, strings.TrimSpace(cells[regionCol]), models.NormalizeStatus(cells[statusCol]), dict)
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
