package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Region is the administrative grouping of a course record.
// The zero value is RegionUnrecognized; G1..G10 sort in declaration order.
type Region int

const (
	RegionUnrecognized Region = iota
	RegionG1
	RegionG2
	RegionG3
	RegionG4
	RegionG5
	RegionG6
	RegionG7
	RegionG8
	RegionG9
	RegionG10
)

// NumRegions is the size of the fixed category set (excluding RegionUnrecognized).
const NumRegions = 10

var regionNames = [...]string{"", "G1", "G2", "G3", "G4", "G5", "G6", "G7", "G8", "G9", "G10"}

// Regions returns the category set in its fixed order.
func Regions() []Region {
	out := make([]Region, 0, NumRegions)
	for r := RegionG1; r <= RegionG10; r++ {
		out = append(out, r)
	}
	return out
}

// ParseRegion maps a raw cell to a Region. Matching is exact after trimming.
func ParseRegion(s string) Region {
	s = strings.TrimSpace(s)
	for i := 1; i < len(regionNames); i++ {
		if regionNames[i] == s {
			return Region(i)
		}
	}
	return RegionUnrecognized
}

func (r Region) Valid() bool {
	return r >= RegionG1 && r <= RegionG10
}

func (r Region) String() string {
	if !r.Valid() {
		return "unrecognized"
	}
	return regionNames[r]
}

func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Status is the completion state of a course as written in the sheet.
type Status string

const (
	StatusCompleted  Status = "Concluído"
	StatusInProgress Status = "Em andamento"
	StatusNotStarted Status = "Não iniciado"
)

// KnownStatuses returns the three domain statuses in stacking order.
func KnownStatuses() []Status {
	return []Status{StatusCompleted, StatusInProgress, StatusNotStarted}
}

// NormalizeStatus trims and NFC-composes a raw cell so that accents
// exported in decomposed form still match the constants.
func NormalizeStatus(s string) Status {
	return Status(norm.NFC.String(strings.TrimSpace(s)))
}

func (s Status) Known() bool {
	switch s {
	case StatusCompleted, StatusInProgress, StatusNotStarted:
		return true
	}
	return false
}

// Label is the display text; blank statuses get a placeholder.
func (s Status) Label() string {
	if s == "" {
		return "(em branco)"
	}
	return string(s)
}

// Report is everything one rendering pass produces, in JSON-friendly form.
type Report struct {
	PassID   string        `json:"pass_id"`
	FileName string        `json:"file_name,omitempty"`
	Rows     int           `json:"rows"`
	Warnings []string      `json:"warnings"`
	KPIs     *KPISummary   `json:"kpis,omitempty"`
	Charts   []ChartSpec   `json:"charts"`
	Tables   []RegionTable `json:"tables"`
}

// RegionTable is a per-region section of the uploaded table.
type RegionTable struct {
	Region  string     `json:"region"`
	Title   string     `json:"title"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type RegionKPI struct {
	Region         string  `json:"region"`
	Courses        int     `json:"courses"`
	Completed      int     `json:"completed"`
	CompletionRate float64 `json:"completion_rate"`
}

type KPISummary struct {
	Regions              []RegionKPI `json:"regions"`
	MeanCompletionRate   float64     `json:"mean_completion_rate"`
	MedianCompletionRate float64     `json:"median_completion_rate"`
	OverallRate          float64     `json:"overall_completion_rate"`
}
