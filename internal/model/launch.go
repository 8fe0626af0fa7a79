package model

import "fmt"

// Column names of the launch data source. The CSV header and the SQLite
// table must both carry these names.
const (
	ColumnLaunchSite      = "Launch Site"
	ColumnPayloadMass     = "Payload Mass (kg)"
	ColumnClass           = "class"
	ColumnBoosterCategory = "Booster Version Category"
)

// RequiredColumns lists every column the Record Store needs, in the order
// they are reported when missing.
var RequiredColumns = []string{
	ColumnLaunchSite,
	ColumnPayloadMass,
	ColumnClass,
	ColumnBoosterCategory,
}

// Outcome classes stored in the class column.
const (
	OutcomeFailure = 0
	OutcomeSuccess = 1
)

// LaunchRecord is a single launch as loaded from the data source.
// Records are never modified after the store is built.
type LaunchRecord struct {
	// Site is the launch site name, e.g. "CCAFS LC-40".
	Site string `json:"site"`

	// PayloadMassKg is the payload mass in kilograms. Always >= 0.
	PayloadMassKg float64 `json:"payload_mass_kg"`

	// OutcomeClass is 1 for a successful landing and 0 for a failure.
	OutcomeClass int `json:"class"`

	// BoosterVersionCategory groups booster versions (v1.0, v1.1, FT, B4, B5).
	BoosterVersionCategory string `json:"booster_version_category"`
}

// Succeeded reports whether the launch outcome was a success.
func (r LaunchRecord) Succeeded() bool {
	return r.OutcomeClass == OutcomeSuccess
}

// SiteSelection is the value of the launch site dropdown.
// It is either AllSites or the name of a site present in the data.
type SiteSelection string

// AllSites selects every launch site.
const AllSites SiteSelection = "ALL"

// IsAll reports whether the selection covers every site.
func (s SiteSelection) IsAll() bool {
	return s == AllSites
}

// String returns the selection value.
func (s SiteSelection) String() string {
	return string(s)
}

// Slider bounds used by the payload range control.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 500
)

// PayloadRange is an inclusive payload mass interval in kilograms.
type PayloadRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// NewPayloadRange returns a validated range.
// It fails with ErrInvalidRange unless 0 <= low <= high.
func NewPayloadRange(low, high float64) (PayloadRange, error) {
	r := PayloadRange{Low: low, High: high}
	if err := r.Validate(); err != nil {
		return PayloadRange{}, err
	}
	return r, nil
}

// Validate checks the 0 <= Low <= High invariant.
func (r PayloadRange) Validate() error {
	if r.Low < 0 {
		return fmt.Errorf("%w: low %g is negative", ErrInvalidRange, r.Low)
	}
	if r.Low > r.High {
		return fmt.Errorf("%w: low %g exceeds high %g", ErrInvalidRange, r.Low, r.High)
	}
	return nil
}

// Contains reports whether mass lies within the range, both ends inclusive.
func (r PayloadRange) Contains(mass float64) bool {
	return mass >= r.Low && mass <= r.High
}

// PayloadBounds are the payload extremes found in the data at load time.
// They seed the slider's default value.
type PayloadBounds struct {
	// MinPositive is the smallest strictly positive payload mass.
	MinPositive float64 `json:"min_positive"`

	// Max is the largest payload mass over all records.
	Max float64 `json:"max"`
}

// Range returns the bounds as the default slider range.
func (b PayloadBounds) Range() PayloadRange {
	return PayloadRange{Low: b.MinPositive, High: b.Max}
}
