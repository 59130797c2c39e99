// Package extract runs the history extraction pipeline: locate each store,
// read it, normalize its timestamps and write one report per browser.
//
// Sources run strictly one after another. Each store is opened, drained and
// closed before the next one is touched, and a failing source never stops
// the sources after it.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/runnerr0/historygrab/internal/epoch"
	"github.com/runnerr0/historygrab/internal/registry"
	"github.com/runnerr0/historygrab/internal/source"
	"github.com/runnerr0/historygrab/internal/storage"
)

// Status is the outcome of one source.
type Status string

const (
	StatusSaved    Status = "saved"
	StatusNotFound Status = "not_found"
	StatusLocked   Status = "locked"
	StatusFailed   Status = "failed"
)

// Result describes what happened to one source.
type Result struct {
	Source   source.Descriptor
	Status   Status
	Stores   []string // store files or registry key that were read
	Output   string   // report path, empty unless saved
	Rows     int      // rows written
	Flagged  int      // rows written without a timestamp because it was out of range
	Filtered int      // rows dropped by the domain filter
	Err      error
}

// Reporter receives pipeline events as they happen.
type Reporter interface {
	Started(d source.Descriptor)
	NotFound(d source.Descriptor, where string)
	Locked(d source.Descriptor, store string, err error)
	InvalidTimestamp(d source.Descriptor, err *TimestampError, flagged bool)
	Saved(r Result)
	Failed(d source.Descriptor, err error)
}

// Sink receives normalized records for one report.
type Sink interface {
	Write(rec storage.HistoryRecord) error
	Close() error
	Remove() error
}

// SinkFactory creates the report for one source.
type SinkFactory func(path string, header []string) (Sink, error)

// Options configures a Pipeline.
type Options struct {
	Env         source.Env
	OutputDir   string
	Driver      string // storage driver name
	FlagInvalid bool   // write out-of-range rows with an empty timestamp instead of aborting
	Filter      *DomainFilter
	Registry    registry.Reader
	CreateSink  SinkFactory
	Reporter    Reporter
}

// Pipeline extracts history from a list of sources.
type Pipeline struct {
	opts Options
}

// New returns a Pipeline. Registry, CreateSink and Reporter are required.
func New(opts Options) *Pipeline {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.Driver == "" {
		opts.Driver = storage.DriverCGO
	}
	return &Pipeline{opts: opts}
}

// Run extracts every descriptor in order. It returns early only when ctx is
// cancelled; results cover the sources that were attempted.
func (p *Pipeline) Run(ctx context.Context, descs []source.Descriptor) []Result {
	results := make([]Result, 0, len(descs))
	for _, d := range descs {
		if ctx.Err() != nil {
			break
		}
		results = append(results, p.Extract(ctx, d))
	}
	return results
}

// Extract runs a single source.
func (p *Pipeline) Extract(ctx context.Context, d source.Descriptor) Result {
	p.opts.Reporter.Started(d)

	var res Result
	switch d.Kind {
	case source.KindSQLite:
		res = p.extractSQLite(ctx, d)
	case source.KindRegistry:
		res = p.extractRegistry(d)
	default:
		res = Result{Source: d, Status: StatusFailed, Err: fmt.Errorf("unknown source kind %q", d.Kind)}
	}

	switch res.Status {
	case StatusSaved:
		p.opts.Reporter.Saved(res)
	case StatusFailed:
		p.opts.Reporter.Failed(d, res.Err)
	}
	return res
}

func (p *Pipeline) extractSQLite(ctx context.Context, d source.Descriptor) Result {
	res := Result{Source: d}

	paths, err := d.Locate.Locate(p.opts.Env)
	if err != nil {
		res.Status, res.Err = StatusFailed, fmt.Errorf("locate store: %w", err)
		return res
	}
	if len(paths) == 0 {
		where := d.Locate.Describe(p.opts.Env)
		p.opts.Reporter.NotFound(d, where)
		res.Status, res.Err = StatusNotFound, fmt.Errorf("%w: %s", ErrNotFound, where)
		return res
	}

	w, err := p.openReport(d)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	for _, path := range paths {
		res.Stores = append(res.Stores, path)
		if err := p.drainStore(ctx, d, path, w, &res); err != nil {
			_ = w.sink.Remove()
			return abort(d, res, path, err, p.opts.Reporter)
		}
	}

	return p.finish(w, res)
}

func (p *Pipeline) drainStore(ctx context.Context, d source.Descriptor, path string, w *report, res *Result) error {
	r, err := storage.Open(ctx, p.opts.Driver, path)
	if err != nil {
		return err
	}
	defer r.Close()

	row := 0
	return r.Each(ctx, d.Query, func(got storage.Row) error {
		row++
		rec := storage.HistoryRecord{URL: got.URL, Title: got.Title}
		if got.Time.Valid {
			var t time.Time
			if got.Time.IsFloat {
				t, err = epoch.NormalizeFloat(got.Time.Float, d.Convention)
			} else {
				t, err = epoch.Normalize(got.Time.Int, d.Convention)
			}
			if err != nil {
				if err := p.invalid(d, &TimestampError{Store: path, Row: row, Err: err}, res); err != nil {
					return err
				}
			} else {
				rec.VisitedAt = t
			}
		}
		return p.write(w, rec, res)
	})
}

func (p *Pipeline) extractRegistry(d source.Descriptor) Result {
	res := Result{Source: d, Stores: []string{`HKCU\` + d.RegistryKey}}

	urls, err := p.opts.Registry.TypedURLs(d.RegistryKey)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			p.opts.Reporter.NotFound(d, res.Stores[0])
			res.Status, res.Err = StatusNotFound, fmt.Errorf("%w: %s", ErrNotFound, res.Stores[0])
			return res
		}
		res.Status, res.Err = StatusFailed, fmt.Errorf("read registry: %w", err)
		return res
	}

	w, err := p.openReport(d)
	if err != nil {
		res.Status, res.Err = StatusFailed, err
		return res
	}

	for i, u := range urls {
		rec := storage.HistoryRecord{URL: u.URL}
		if u.HasTime() {
			t, err := epoch.Normalize(u.WebKitMicros(), d.Convention)
			if err != nil {
				terr := &TimestampError{Store: res.Stores[0] + `\` + u.Name, Row: i + 1, Err: err}
				if err := p.invalid(d, terr, &res); err != nil {
					_ = w.sink.Remove()
					return abort(d, res, res.Stores[0], err, p.opts.Reporter)
				}
			} else {
				rec.VisitedAt = t
			}
		}
		if err := p.write(w, rec, &res); err != nil {
			_ = w.sink.Remove()
			return abort(d, res, res.Stores[0], err, p.opts.Reporter)
		}
	}

	return p.finish(w, res)
}

// invalid applies the out-of-range policy. A nil return means the row is
// kept with an empty timestamp.
func (p *Pipeline) invalid(d source.Descriptor, terr *TimestampError, res *Result) error {
	p.opts.Reporter.InvalidTimestamp(d, terr, p.opts.FlagInvalid)
	if !p.opts.FlagInvalid {
		return terr
	}
	res.Flagged++
	return nil
}

func (p *Pipeline) write(w *report, rec storage.HistoryRecord, res *Result) error {
	if p.opts.Filter.Excluded(rec.URL) {
		res.Filtered++
		return nil
	}
	if err := w.sink.Write(rec); err != nil {
		return err
	}
	res.Rows++
	return nil
}

type report struct {
	sink Sink
	path string
}

func (p *Pipeline) openReport(d source.Descriptor) (*report, error) {
	path := filepath.Join(p.opts.OutputDir, d.OutputFile)
	sink, err := p.opts.CreateSink(path, d.Header)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	return &report{sink: sink, path: path}, nil
}

func (p *Pipeline) finish(w *report, res Result) Result {
	if err := w.sink.Close(); err != nil {
		res.Status, res.Err = StatusFailed, fmt.Errorf("close report: %w", err)
		return res
	}
	res.Status, res.Output = StatusSaved, w.path
	return res
}

// abort classifies err for a source that could not be completed.
func abort(d source.Descriptor, res Result, store string, err error, rep Reporter) Result {
	res.Rows, res.Flagged, res.Filtered = 0, 0, 0
	if storage.IsLocked(err) {
		rep.Locked(d, store, err)
		res.Status, res.Err = StatusLocked, fmt.Errorf("%w: %s: %w", ErrLocked, store, err)
		return res
	}
	res.Status, res.Err = StatusFailed, err
	return res
}

// AnyFailed reports whether a source was locked or failed. Missing stores
// do not count.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Status == StatusLocked || r.Status == StatusFailed {
			return true
		}
	}
	return false
}
