package dashboard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// Page text.
const (
	Title               = "SpaceX Launch Records Dashboard"
	AllSitesLabel       = "All Sites"
	DropdownPlaceholder = "Select a Launch Site here"
	SliderLabel         = "Payload range (Kg):"
)

// Element ids of the page controls.
const (
	DropdownID = "site-dropdown"
	SliderID   = "payload-slider"
	PieID      = "success-pie-chart"
	ScatterID  = "success-payload-scatter-chart"
)

// ErrInvalidSlider is returned by Slider.Validate.
var ErrInvalidSlider = errors.New("invalid slider configuration")

// Slider holds the payload slider bounds and tick marks.
type Slider struct {
	Min   float64   `json:"min" yaml:"min"`
	Max   float64   `json:"max" yaml:"max"`
	Step  float64   `json:"step" yaml:"step"`
	Marks []float64 `json:"marks" yaml:"marks"`
}

// DefaultSlider returns a 0 to 10000 kg slider in 500 kg steps.
func DefaultSlider() Slider {
	return Slider{
		Min:   model.SliderMin,
		Max:   model.SliderMax,
		Step:  model.SliderStep,
		Marks: []float64{0, 500, 1000, 2000, 5000, 7000, 10000},
	}
}

// Validate checks that the bounds are ordered, the step is positive and
// every mark lies within the bounds.
func (s Slider) Validate() error {
	if s.Min < 0 || s.Min >= s.Max {
		return fmt.Errorf("%w: min %g must be >= 0 and below max %g", ErrInvalidSlider, s.Min, s.Max)
	}
	if s.Step <= 0 || s.Step > s.Max-s.Min {
		return fmt.Errorf("%w: step %g", ErrInvalidSlider, s.Step)
	}
	for _, m := range s.Marks {
		if m < s.Min || m > s.Max {
			return fmt.Errorf("%w: mark %g outside [%g, %g]", ErrInvalidSlider, m, s.Min, s.Max)
		}
	}
	return nil
}

// Layout describes the dashboard page.
type Layout struct {
	Title     string         `json:"title"`
	Dropdown  Dropdown       `json:"dropdown"`
	Slider    SliderControl  `json:"slider"`
	PieID     string         `json:"pie_id"`
	ScatterID string         `json:"scatter_id"`
	Defaults  LayoutDefaults `json:"defaults"`
}

// Dropdown is the launch site selector.
type Dropdown struct {
	ID          string         `json:"id"`
	Placeholder string         `json:"placeholder"`
	Searchable  bool           `json:"searchable"`
	Options     []SelectOption `json:"options"`
	Value       string         `json:"value"`
}

// SelectOption is one dropdown entry.
type SelectOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SliderControl is the payload range slider.
type SliderControl struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Min   float64    `json:"min"`
	Max   float64    `json:"max"`
	Step  float64    `json:"step"`
	Marks []Mark     `json:"marks"`
	Value [2]float64 `json:"value"`
}

// Mark is a labelled slider tick.
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// LayoutDefaults are the initial input values.
type LayoutDefaults struct {
	Site    model.SiteSelection `json:"site"`
	Payload model.PayloadRange  `json:"payload"`
}

// Layout returns the page model. The dropdown lists "All Sites" first,
// then every loaded site in first-seen order.
func (d *Dashboard) Layout() Layout {
	sites := d.store.DistinctSites()
	options := make([]SelectOption, 0, len(sites)+1)
	options = append(options, SelectOption{Label: AllSitesLabel, Value: model.AllSites.String()})
	for _, s := range sites {
		options = append(options, SelectOption{Label: s, Value: s})
	}

	marks := make([]Mark, 0, len(d.slider.Marks))
	for _, m := range d.slider.Marks {
		marks = append(marks, Mark{
			Value: m,
			Label: strconv.FormatFloat(m, 'f', -1, 64) + " Kg",
		})
	}

	def := d.Defaults()
	return Layout{
		Title: Title,
		Dropdown: Dropdown{
			ID:          DropdownID,
			Placeholder: DropdownPlaceholder,
			Searchable:  true,
			Options:     options,
			Value:       def.Site.String(),
		},
		Slider: SliderControl{
			ID:    SliderID,
			Label: SliderLabel,
			Min:   d.slider.Min,
			Max:   d.slider.Max,
			Step:  d.slider.Step,
			Marks: marks,
			Value: [2]float64{def.Payload.Low, def.Payload.High},
		},
		PieID:     PieID,
		ScatterID: ScatterID,
		Defaults: LayoutDefaults{
			Site:    def.Site,
			Payload: def.Payload,
		},
	}
}
