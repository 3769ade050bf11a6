package engine

import (
	"fmt"
	"sort"
	"strings"

	"coursedash/internal/models"
)

const (
	ColumnRegion = "regiao"
	ColumnStatus = "status do curso"
)

// CourseTable holds one uploaded sheet in Struct-of-Arrays format.
// Row order is the order of the source file.
type CourseTable struct {
	// Passthrough columns (header order, every row padded to len(Columns))
	Columns []string
	Cells   [][]string

	// Typed columns, one entry per row
	Regions    []models.Region
	RawRegions []string
	StatusIDs  []int32

	// Dictionary (ID -> Status), first-seen order
	StatusDict []models.Status
}

func (t *CourseTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Regions)
}

func (t *CourseTable) Status(i int) models.Status {
	return t.StatusDict[t.StatusIDs[i]]
}

// Subset returns a new table holding the given rows in the given order.
// The status dictionary is shared; neither table mutates it.
func (t *CourseTable) Subset(rows []int) *CourseTable {
	sub := &CourseTable{
		Columns:    t.Columns,
		Cells:      make([][]string, 0, len(rows)),
		Regions:    make([]models.Region, 0, len(rows)),
		RawRegions: make([]string, 0, len(rows)),
		StatusIDs:  make([]int32, 0, len(rows)),
		StatusDict: t.StatusDict,
	}
	for _, i := range rows {
		sub.Cells = append(sub.Cells, t.Cells[i])
		sub.Regions = append(sub.Regions, t.Regions[i])
		sub.RawRegions = append(sub.RawRegions, t.RawRegions[i])
		sub.StatusIDs = append(sub.StatusIDs, t.StatusIDs[i])
	}
	return sub
}

// appendRow adds a row, dictionary-encoding its status.
func (t *CourseTable) appendRow(cells []string, rawRegion string, status models.Status, dict map[models.Status]int32) {
	id, ok := dict[status]
	if !ok {
		id = int32(len(t.StatusDict))
		t.StatusDict = append(t.StatusDict, status)
		dict[status] = id
	}
	t.Cells = append(t.Cells, cells)
	t.RawRegions = append(t.RawRegions, rawRegion)
	t.Regions = append(t.Regions, models.ParseRegion(rawRegion))
	t.StatusIDs = append(t.StatusIDs, id)
}

type WarningKind string

const (
	WarnUnknownRegion WarningKind = "unknown_region"
	WarnUnknownStatus WarningKind = "unknown_status"
)

// Warning is a non-fatal finding about the loaded data.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Rows   int         `json:"rows"`
	Values []string    `json:"values"`
}

func (w Warning) String() string {
	values := strings.Join(w.Values, ", ")
	switch w.Kind {
	case WarnUnknownRegion:
		return fmt.Sprintf("%d registro(s) com região fora de G1–G10 (%s): contados no status geral, fora das tabelas por região", w.Rows, values)
	case WarnUnknownStatus:
		return fmt.Sprintf("%d registro(s) com status desconhecido (%s): sem cor fixa e fora da visão comparativa", w.Rows, values)
	}
	return fmt.Sprintf("%s: %d registro(s) (%s)", w.Kind, w.Rows, values)
}

// Warnings reports rows with a region outside the category set and rows
// with a status outside the three known values.
func (t *CourseTable) Warnings() []Warning {
	var out []Warning

	regionRows := 0
	regionValues := make(map[string]bool)
	for i, r := range t.Regions {
		if !r.Valid() {
			regionRows++
			regionValues[t.RawRegions[i]] = true
		}
	}
	if regionRows > 0 {
		out = append(out, Warning{Kind: WarnUnknownRegion, Rows: regionRows, Values: sortedKeys(regionValues)})
	}

	statusRows := 0
	statusValues := make(map[string]bool)
	for _, id := range t.StatusIDs {
		if s := t.StatusDict[id]; !s.Known() {
			statusRows++
			statusValues[s.Label()] = true
		}
	}
	if statusRows > 0 {
		out = append(out, Warning{Kind: WarnUnknownStatus, Rows: statusRows, Values: sortedKeys(statusValues)})
	}
	return out
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "" {
			k = "(em branco)"
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
