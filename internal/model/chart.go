package model

// PieMode tells which kind of pie a PieSpec describes.
type PieMode string

const (
	// PieModeSites has one slice per launch site valued by its successes.
	PieModeSites PieMode = "sites"

	// PieModeOutcomes has one slice per outcome class valued by its count.
	PieModeOutcomes PieMode = "outcomes"
)

// DefaultPieHole is the donut hole ratio used by the dashboard pie.
const DefaultPieHole = 0.3

// PieSlice is one labelled slice of a pie chart.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieSpec is the render-ready payload of the success pie chart.
// A spec with no slices is a valid, empty chart.
type PieSpec struct {
	Title  string     `json:"title"`
	Mode   PieMode    `json:"mode"`
	Hole   float64    `json:"hole"`
	Slices []PieSlice `json:"slices"`
}

// Total returns the sum of all slice values.
func (p PieSpec) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// IsEmpty reports whether the pie has nothing to draw.
func (p PieSpec) IsEmpty() bool {
	return len(p.Slices) == 0 || p.Total() == 0
}

// ScatterPoint is one launch plotted by payload against outcome.
type ScatterPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	ColorGroup string  `json:"color_group"`
}

// ScatterSpec is the render-ready payload of the payload/outcome scatter chart.
type ScatterSpec struct {
	Title  string `json:"title"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`

	// Groups lists the distinct colour groups in first-seen order.
	Groups []string `json:"groups"`

	Points []ScatterPoint `json:"points"`
}

// PointsByGroup splits the points by colour group, keyed by group name.
func (s ScatterSpec) PointsByGroup() map[string][]ScatterPoint {
	out := make(map[string][]ScatterPoint, len(s.Groups))
	for _, p := range s.Points {
		out[p.ColorGroup] = append(out[p.ColorGroup], p)
	}
	return out
}
