package model

import "time"

// DashboardReport is a point-in-time snapshot of the dashboard for one
// site selection and payload range. It is what the summary writers render.
type DashboardReport struct {
	// Source is the path the launch records were loaded from.
	Source string `json:"source"`

	// GeneratedAt is when the snapshot was taken.
	GeneratedAt time.Time `json:"generated_at"`

	// Records is the total number of loaded launch records.
	Records int `json:"records"`

	// Sites lists the distinct launch sites in first-seen order.
	Sites []string `json:"sites"`

	// Bounds are the payload extremes of the whole data set.
	Bounds PayloadBounds `json:"bounds"`

	// Selection and Range are the inputs the charts were computed with.
	Selection SiteSelection `json:"selection"`
	Range     PayloadRange  `json:"range"`

	Pie     PieSpec     `json:"pie"`
	Scatter ScatterSpec `json:"scatter"`

	// SiteSummaries holds per-site outcome counts over all records.
	SiteSummaries []SiteSummary `json:"site_summaries"`
}

// GroupCount is the number of scatter points in one colour group.
type GroupCount struct {
	Group     string `json:"group"`
	Launches  int    `json:"launches"`
	Successes int    `json:"successes"`
}

// GroupCounts tallies the scatter points per booster category, in the
// order of Scatter.Groups.
func (r *DashboardReport) GroupCounts() []GroupCount {
	byGroup := r.Scatter.PointsByGroup()
	out := make([]GroupCount, 0, len(r.Scatter.Groups))
	for _, g := range r.Scatter.Groups {
		gc := GroupCount{Group: g}
		for _, p := range byGroup[g] {
			gc.Launches++
			if p.Y == OutcomeSuccess {
				gc.Successes++
			}
		}
		out = append(out, gc)
	}
	return out
}

// ScatterSuccesses returns the number of successful launches in the scatter.
func (r *DashboardReport) ScatterSuccesses() int {
	var n int
	for _, p := range r.Scatter.Points {
		if p.Y == OutcomeSuccess {
			n++
		}
	}
	return n
}
