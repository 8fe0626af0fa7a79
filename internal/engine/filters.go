package engine

import "github.com/fabricofdreams/falcon9dash/internal/model"

// FilterBySite returns the records launched from the selected site.
// AllSites returns records unchanged. A site with no launches yields an
// empty slice.
func FilterBySite(records []model.LaunchRecord, selection model.SiteSelection) []model.LaunchRecord {
	if selection.IsAll() {
		return records
	}
	site := selection.String()
	return filter(records, func(r model.LaunchRecord) bool {
		return r.Site == site
	})
}

// FilterByPayload returns the records whose payload mass lies within rng,
// both ends inclusive.
func FilterByPayload(records []model.LaunchRecord, rng model.PayloadRange) []model.LaunchRecord {
	return filter(records, func(r model.LaunchRecord) bool {
		return rng.Contains(r.PayloadMassKg)
	})
}

// FilterScatter applies both scatter predicates: payload range, then site.
func FilterScatter(records []model.LaunchRecord, selection model.SiteSelection, rng model.PayloadRange) []model.LaunchRecord {
	return FilterBySite(FilterByPayload(records, rng), selection)
}

// filter returns the records matching keep in their original order.
func filter(records []model.LaunchRecord, keep func(model.LaunchRecord) bool) []model.LaunchRecord {
	out := make([]model.LaunchRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
