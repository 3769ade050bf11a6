package models

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// StatusSummary is a status -> count mapping kept in output order.
type StatusSummary []StatusCount

func (s StatusSummary) Total() int {
	n := 0
	for _, c := range s {
		n += c.Count
	}
	return n
}

func (s StatusSummary) Count(status Status) int {
	for _, c := range s {
		if c.Status == status {
			return c.Count
		}
	}
	return 0
}

type RegionStatusCount struct {
	Region Region `json:"region"`
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

// RegionStatusSummary is sparse: pairs with no rows are absent.
type RegionStatusSummary []RegionStatusCount

func (s RegionStatusSummary) Total() int {
	n := 0
	for _, c := range s {
		n += c.Count
	}
	return n
}

// Count returns zero for pairs not present in the summary.
func (s RegionStatusSummary) Count(region Region, status Status) int {
	for _, c := range s {
		if c.Region == region && c.Status == status {
			return c.Count
		}
	}
	return 0
}

// Regions lists the regions present, in category order.
func (s RegionStatusSummary) Regions() []Region {
	var seen [NumRegions + 1]bool
	for _, c := range s {
		seen[c.Region] = true
	}
	var out []Region
	for _, r := range Regions() {
		if seen[r] {
			out = append(out, r)
		}
	}
	return out
}

// Statuses lists the statuses present, in first-seen order.
func (s RegionStatusSummary) Statuses() []Status {
	seen := make(map[Status]bool)
	var out []Status
	for _, c := range s {
		if !seen[c.Status] {
			seen[c.Status] = true
			out = append(out, c.Status)
		}
	}
	return out
}

// Expand returns a dense summary over every region in the category set and
// the given statuses, filling missing pairs with zero.
func (s RegionStatusSummary) Expand(statuses []Status) RegionStatusSummary {
	out := make(RegionStatusSummary, 0, NumRegions*len(statuses))
	for _, r := range Regions() {
		for _, st := range statuses {
			out = append(out, RegionStatusCount{Region: r, Status: st, Count: s.Count(r, st)})
		}
	}
	return out
}
