package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/fabricofdreams/falcon9dash/internal/chart"
	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// errUnknownChart is returned for chart paths naming neither chart.
var errUnknownChart = errors.New("unknown chart")

type healthBody struct {
	Status  string              `json:"status"`
	Version string              `json:"version"`
	Records int                 `json:"records"`
	Sites   int                 `json:"sites"`
	Bounds  model.PayloadBounds `json:"bounds"`
}

// inputs reads the site, low and high query parameters.
func (s *Server) inputs(r *http.Request) (model.SiteSelection, model.PayloadRange, error) {
	q := r.URL.Query()
	site, err := s.dash.ParseSite(q.Get("site"))
	if err != nil {
		return "", model.PayloadRange{}, err
	}
	rng, err := s.dash.ParseRange(q.Get("low"), q.Get("high"))
	if err != nil {
		return "", model.PayloadRange{}, err
	}
	return site, rng, nil
}

// statusFor maps input errors to 400 and anything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownSite),
		errors.Is(err, model.ErrInvalidRange),
		errors.Is(err, chart.ErrUnknownFormat):
		return http.StatusBadRequest
	case errors.Is(err, errUnknownChart):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	body, err := s.renderPage()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeBody(w, r, "text/html; charset=utf-8", body)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, s.dash.Layout())
}

func (s *Server) handlePie(w http.ResponseWriter, r *http.Request) {
	site, err := s.dash.ParseSite(r.URL.Query().Get("site"))
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, s.dash.Pie(site))
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	site, rng, err := s.inputs(r)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeJSON(w, r, s.dash.Scatter(site, rng))
}

// handleChart serves /chart/pie.{png,svg} and /chart/scatter.{png,svg}.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	name := strings.TrimSuffix(file, ext)

	format, err := chart.ParseFormat(ext)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	site, rng, err := s.inputs(r)
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}

	var buf bytes.Buffer
	switch name {
	case dashboard.CellPie:
		err = s.renderer.Pie(&buf, s.dash.Pie(site), format)
	case dashboard.CellScatter:
		err = s.renderer.Scatter(&buf, s.dash.Scatter(site, rng), format)
	default:
		err = fmt.Errorf("%w: %q", errUnknownChart, name)
	}
	if err != nil {
		s.writeError(w, r, statusFor(err), err)
		return
	}
	s.writeBody(w, r, format.ContentType(), buf.Bytes())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, healthBody{
		Status:  "ok",
		Version: s.version,
		Records: s.dash.Store().Len(),
		Sites:   len(s.dash.Store().DistinctSites()),
		Bounds:  s.dash.Bounds(),
	})
}
