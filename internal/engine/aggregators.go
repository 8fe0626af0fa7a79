package engine

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// Chart titles. The per-site variants take the site name.
const (
	PieTitleAllSites     = "Total Success Launches By All Sites"
	pieTitleSite         = "Total Success Launches for site %s"
	ScatterTitleAllSites = "Correlation between Payload and Success for All Sites"
	scatterTitleSite     = "Correlation between Payload and Success for site %s"
)

// Scatter axis labels.
const (
	ScatterXLabel = model.ColumnPayloadMass
	ScatterYLabel = model.ColumnClass
)

// PieAggregate turns site-filtered records into the success pie.
//
// With AllSites there is one slice per site, in first-seen order, valued by
// the site's successful launches. With a concrete site there is one slice
// per outcome class present, ordered by class, valued by its launch count.
func PieAggregate(records []model.LaunchRecord, selection model.SiteSelection) model.PieSpec {
	if selection.IsAll() {
		return model.PieSpec{
			Title:  PieTitleAllSites,
			Mode:   model.PieModeSites,
			Hole:   model.DefaultPieHole,
			Slices: successesBySite(records),
		}
	}
	return model.PieSpec{
		Title:  fmt.Sprintf(pieTitleSite, selection),
		Mode:   model.PieModeOutcomes,
		Hole:   model.DefaultPieHole,
		Slices: countsByClass(records),
	}
}

// successesBySite sums OutcomeClass per site.
func successesBySite(records []model.LaunchRecord) []model.PieSlice {
	slices := make([]model.PieSlice, 0)
	index := make(map[string]int)
	for _, r := range records {
		i, ok := index[r.Site]
		if !ok {
			i = len(slices)
			index[r.Site] = i
			slices = append(slices, model.PieSlice{Label: r.Site})
		}
		slices[i].Value += float64(r.OutcomeClass)
	}
	return slices
}

// countsByClass counts records per outcome class.
func countsByClass(records []model.LaunchRecord) []model.PieSlice {
	counts := make(map[int]int)
	for _, r := range records {
		counts[r.OutcomeClass]++
	}

	classes := make([]int, 0, len(counts))
	for c := range counts {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	slices := make([]model.PieSlice, 0, len(classes))
	for _, c := range classes {
		slices = append(slices, model.PieSlice{
			Label: strconv.Itoa(c),
			Value: float64(counts[c]),
		})
	}
	return slices
}

// ScatterAggregate projects records onto the payload/outcome scatter.
// Every record becomes one point coloured by its booster version category;
// nothing is reduced.
func ScatterAggregate(records []model.LaunchRecord, selection model.SiteSelection) model.ScatterSpec {
	title := ScatterTitleAllSites
	if !selection.IsAll() {
		title = fmt.Sprintf(scatterTitleSite, selection)
	}

	spec := model.ScatterSpec{
		Title:  title,
		XLabel: ScatterXLabel,
		YLabel: ScatterYLabel,
		Groups: make([]string, 0),
		Points: make([]model.ScatterPoint, 0, len(records)),
	}

	seen := make(map[string]bool)
	for _, r := range records {
		if !seen[r.BoosterVersionCategory] {
			seen[r.BoosterVersionCategory] = true
			spec.Groups = append(spec.Groups, r.BoosterVersionCategory)
		}
		spec.Points = append(spec.Points, model.ScatterPoint{
			X:          r.PayloadMassKg,
			Y:          float64(r.OutcomeClass),
			ColorGroup: r.BoosterVersionCategory,
		})
	}
	return spec
}
