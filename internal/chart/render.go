package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// Default image size in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 500
)

// noDataLabel is the placeholder slice drawn for an empty pie.
const noDataLabel = "No data"

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ErrUnknownFormat is returned by ParseFormat.
var ErrUnknownFormat = errors.New("unknown image format")

// ParseFormat maps a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func (f Format) provider() gochart.RendererProvider {
	if f == FormatSVG {
		return gochart.SVG
	}
	return gochart.PNG
}

// Renderer draws chart specs.
type Renderer struct {
	width  int
	height int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the image size. Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// NewRenderer returns a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		width:  DefaultWidth,
		height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pie draws spec as a donut chart. Zero-valued slices are left out; a pie
// with nothing to draw gets a single grey "No data" slice.
func (r *Renderer) Pie(w io.Writer, spec model.PieSpec, format Format) error {
	values := make([]gochart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, gochart.Value{
			Label: s.Label + " (" + strconv.FormatFloat(s.Value, 'f', -1, 64) + ")",
			Value: s.Value,
		})
	}
	if len(values) == 0 {
		values = append(values, gochart.Value{
			Label: noDataLabel,
			Value: 1,
			Style: gochart.Style{FillColor: gochart.ColorLightGray},
		})
	}

	donut := gochart.DonutChart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Values: values,
	}
	if err := donut.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// Scatter draws spec with one dot series per colour group, in group order.
func (r *Renderer) Scatter(w io.Writer, spec model.ScatterSpec, format Format) error {
	low, high := xExtent(spec.Points)

	ch := gochart.Chart{
		Title:  spec.Title,
		Width:  r.width,
		Height: r.height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: gochart.XAxis{
			Name:  spec.XLabel,
			Range: &gochart.ContinuousRange{Min: low, Max: high},
		},
		YAxis: gochart.YAxis{
			Name: spec.YLabel,
			Ticks: []gochart.Tick{
				{Value: -0.25},
				{Value: model.OutcomeFailure, Label: "0"},
				{Value: model.OutcomeSuccess, Label: "1"},
				{Value: 1.25},
			},
		},
	}

	byGroup := spec.PointsByGroup()
	for i, g := range spec.Groups {
		points := byGroup[g]
		xs := make([]float64, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, p := range points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
		ch.Series = append(ch.Series, gochart.ContinuousSeries{
			Name:    g,
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(gochart.GetDefaultColor(i)),
		})
	}

	if len(ch.Series) == 0 {
		// go-chart needs one visible series; this one draws nothing.
		ch.Series = []gochart.Series{gochart.ContinuousSeries{
			XValues: []float64{low},
			YValues: []float64{0},
			Style:   gochart.Style{StrokeWidth: gochart.Disabled, DotWidth: gochart.Disabled},
		}}
	} else {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	if err := ch.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render scatter chart: %w", err)
	}
	return nil
}

// pointStyle draws dots without connecting lines.
func pointStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeWidth: gochart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// xExtent returns a padded payload axis range covering every point.
// An empty or single-valued set still yields a non-zero range.
func xExtent(points []model.ScatterPoint) (float64, float64) {
	if len(points) == 0 {
		return model.SliderMin, model.SliderMax
	}

	low, high := math.MaxFloat64, -math.MaxFloat64
	for _, p := range points {
		low = math.Min(low, p.X)
		high = math.Max(high, p.X)
	}

	pad := (high - low) * 0.05
	if pad == 0 {
		pad = model.SliderStep
	}
	return math.Max(0, low-pad), high + pad
}
