package model

// SiteSummary counts launch outcomes for one site.
type SiteSummary struct {
	Site      string `json:"site"`
	Launches  int    `json:"launches"`
	Successes int    `json:"successes"`
}

// Failures returns the number of failed launches.
func (s SiteSummary) Failures() int {
	return s.Launches - s.Successes
}

// SuccessRate returns the share of successful launches in [0, 1].
// A site without launches has a rate of 0.
func (s SiteSummary) SuccessRate() float64 {
	if s.Launches == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Launches)
}

// NewSiteSummaries groups records by site in first-seen order.
func NewSiteSummaries(records []LaunchRecord) []SiteSummary {
	out := make([]SiteSummary, 0)
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Site]
		if !ok {
			i = len(out)
			index[r.Site] = i
			out = append(out, SiteSummary{Site: r.Site})
		}
		out[i].Launches++
		if r.Succeeded() {
			out[i].Successes++
		}
	}
	return out
}
