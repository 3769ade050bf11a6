package engine

import (
	"sort"

	"coursedash/internal/models"
)

// OverallStatusCounts counts every row by status, most frequent first.
// Ties keep the order in which statuses first appear in the file.
func OverallStatusCounts(t *CourseTable) models.StatusSummary {
	if t.Len() == 0 {
		return models.StatusSummary{}
	}

	// Array indexed by status ID, no map inserts in the hot loop
	counts := make([]int, len(t.StatusDict))
	for _, id := range t.StatusIDs {
		counts[id]++
	}

	out := make(models.StatusSummary, 0, len(counts))
	for id, n := range counts {
		if n > 0 {
			out = append(out, models.StatusCount{Status: t.StatusDict[id], Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// RegionStatusCounts groups recognized-region rows by (region, status).
// Output is sparse, ordered by region then status text.
func RegionStatusCounts(t *CourseTable) models.RegionStatusSummary {
	if t.Len() == 0 {
		return models.RegionStatusSummary{}
	}

	order := make([]int32, len(t.StatusDict))
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(i, j int) bool { return t.StatusDict[order[i]] < t.StatusDict[order[j]] })

	columns := make([]int, len(t.StatusDict))
	labels := make([]models.Status, len(order))
	for col, id := range order {
		columns[id] = col
		labels[col] = t.StatusDict[id]
	}
	return countMatrix(t, columns, labels)
}

// RegionStatusCountsOrdered is RegionStatusCounts with the status dimension
// restricted to models.KnownStatuses and ordered the same way. Rows with any
// other status are left out of this view.
func RegionStatusCountsOrdered(t *CourseTable) models.RegionStatusSummary {
	if t.Len() == 0 {
		return models.RegionStatusSummary{}
	}

	labels := models.KnownStatuses()
	columns := make([]int, len(t.StatusDict))
	for id, s := range t.StatusDict {
		columns[id] = -1
		for col, known := range labels {
			if s == known {
				columns[id] = col
			}
		}
	}
	return countMatrix(t, columns, labels)
}

// countMatrix fills a flattened [Region][column] matrix and unpacks the
// non-zero cells in matrix order. columns maps status ID to a matrix column;
// -1 drops the row.
func countMatrix(t *CourseTable, columns []int, labels []models.Status) models.RegionStatusSummary {
	numCols := len(labels)
	matrix := make([]int, (models.NumRegions+1)*numCols)

	for i, r := range t.Regions {
		if !r.Valid() {
			continue
		}
		col := columns[t.StatusIDs[i]]
		if col < 0 {
			continue
		}
		matrix[int(r)*numCols+col]++
	}

	out := make(models.RegionStatusSummary, 0)
	for idx, n := range matrix {
		if n == 0 {
			continue
		}
		out = append(out, models.RegionStatusCount{
			Region: models.Region(idx / numCols),
			Status: labels[idx%numCols],
			Count:  n,
		})
	}
	return out
}
