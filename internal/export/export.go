package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/fabricofdreams/falcon9dash/internal/chart"
	"github.com/fabricofdreams/falcon9dash/internal/dashboard"
	"github.com/fabricofdreams/falcon9dash/internal/model"
)

// DefaultConcurrency is the number of charts rendered at once.
const DefaultConcurrency = 4

// Job is one chart image to produce.
type Job struct {
	Chart  string
	Site   model.SiteSelection
	Range  model.PayloadRange
	Format chart.Format
}

// FileName returns the image file name, e.g. "scatter-ksc-lc-39a.svg".
func (j Job) FileName() string {
	return fmt.Sprintf("%s-%s.%s", j.Chart, slug(j.Site.String()), j.Format)
}

// slug lowercases s and collapses every run of other characters into "-".
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// Result is the outcome of one job.
type Result struct {
	Job   Job
	Path  string
	Bytes int64
	Err   error
}

// Failed returns the results that carry an error.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Jobs lists both charts for AllSites and then for each loaded site, all
// over the same payload range.
func Jobs(d *dashboard.Dashboard, rng model.PayloadRange, format chart.Format) []Job {
	selections := []model.SiteSelection{model.AllSites}
	for _, s := range d.Store().DistinctSites() {
		selections = append(selections, model.SiteSelection(s))
	}

	jobs := make([]Job, 0, 2*len(selections))
	for _, sel := range selections {
		for _, name := range []string{dashboard.CellPie, dashboard.CellScatter} {
			jobs = append(jobs, Job{Chart: name, Site: sel, Range: rng, Format: format})
		}
	}
	return jobs
}

// Exporter writes chart images into a directory.
type Exporter struct {
	dir         string
	concurrency int
	logger      *slog.Logger
	progress    func(Result)

	render func(w io.Writer, job Job) error
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithConcurrency limits how many charts render at once.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// WithProgress registers a callback run after each job. It is called from
// the worker goroutine, so it must be safe for concurrent use.
func WithProgress(fn func(Result)) Option {
	return func(e *Exporter) {
		e.progress = fn
	}
}

// New returns an Exporter writing charts of d, drawn by r, into dir.
func New(d *dashboard.Dashboard, r *chart.Renderer, dir string, opts ...Option) *Exporter {
	e := &Exporter{
		dir:         dir,
		concurrency: DefaultConcurrency,
	}
	e.render = func(w io.Writer, job Job) error {
		switch job.Chart {
		case dashboard.CellPie:
			return r.Pie(w, d.Pie(job.Site), job.Format)
		case dashboard.CellScatter:
			return r.Scatter(w, d.Scatter(job.Site, job.Range), job.Format)
		default:
			return fmt.Errorf("unknown chart %q", job.Chart)
		}
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Export runs jobs and returns one result per job, in job order. The error
// is non-nil only when the output directory cannot be created or ctx ends
// before every job started.
func (e *Exporter) Export(ctx context.Context, jobs []Job) ([]Result, error) {
	if err := os.MkdirAll(e.dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	e.logger.Info("exporting charts",
		"jobs", len(jobs),
		"dir", e.dir,
		"concurrency", e.concurrency,
	)
	start := time.Now()

	results := make([]Result, len(jobs))
	for i, job := range jobs {
		results[i].Job = job
	}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				mu.Lock()
				results[i].Err = ctx.Err()
				mu.Unlock()
				return ctx.Err()
			default:
			}

			res := e.run(job)

			mu.Lock()
			results[i] = res
			mu.Unlock()

			if res.Err != nil {
				e.logger.Warn("chart export failed", "file", job.FileName(), "error", res.Err)
			} else {
				e.logger.Debug("chart exported", "path", res.Path, "bytes", res.Bytes)
			}
			if e.progress != nil {
				e.progress(res)
			}
			return nil
		})
	}

	err := g.Wait()

	e.logger.Info("chart export complete",
		"jobs", len(jobs),
		"failed", len(Failed(results)),
		"elapsed", time.Since(start),
	)
	return results, err
}

// run renders one job into a temporary file and renames it into place, so
// a reader never sees a partial image.
func (e *Exporter) run(job Job) Result {
	res := Result{Job: job, Path: filepath.Join(e.dir, job.FileName())}

	tmp, err := os.CreateTemp(e.dir, ".export-*")
	if err != nil {
		res.Err = fmt.Errorf("create temp file: %w", err)
		return res
	}
	defer os.Remove(tmp.Name())

	if err := e.render(tmp, job); err != nil {
		tmp.Close()
		res.Err = fmt.Errorf("render %s: %w", job.FileName(), err)
		return res
	}

	info, err := tmp.Stat()
	if err == nil {
		res.Bytes = info.Size()
	}
	if err := tmp.Close(); err != nil {
		res.Err = fmt.Errorf("close %s: %w", job.FileName(), err)
		return res
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		res.Err = fmt.Errorf("chmod %s: %w", job.FileName(), err)
		return res
	}
	if err := os.Rename(tmp.Name(), res.Path); err != nil {
		res.Err = fmt.Errorf("rename %s: %w", job.FileName(), err)
	}
	return res
}
