package engine

import "coursedash/internal/models"

type RegionTable struct {
	Region models.Region
	Table  *CourseTable
}

// SplitByRegion returns one sub-table per category, G1..G10, including
// empty ones. Rows with an unrecognized region are in none of them.
func SplitByRegion(t *CourseTable) []RegionTable {
	buckets := make([][]int, models.NumRegions+1)
	for i := 0; i < t.Len(); i++ {
		if r := t.Regions[i]; r.Valid() {
			buckets[r] = append(buckets[r], i)
		}
	}

	out := make([]RegionTable, 0, models.NumRegions)
	for _, r := range models.Regions() {
		var sub *CourseTable
		if t == nil {
			sub = &CourseTable{}
		} else {
			sub = t.Subset(buckets[r])
		}
		out = append(out, RegionTable{Region: r, Table: sub})
	}
	return out
}
