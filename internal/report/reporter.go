// Package report turns pipeline and process events into levelled log
// records and renders end-of-run tables.
package report

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/runnerr0/historygrab/internal/extract"
	"github.com/runnerr0/historygrab/internal/procs"
	"github.com/runnerr0/historygrab/internal/source"
)

// NewLogger returns a text logger on w at the named level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps debug|info|warn|error to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Reporter logs extraction events. It implements extract.Reporter.
type Reporter struct {
	logger *slog.Logger
}

var _ extract.Reporter = (*Reporter)(nil)

// New returns a Reporter writing to logger.
func New(logger *slog.Logger) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{logger: logger}
}

// closeHint is the remediation shown for a locked store.
func closeHint(d source.Descriptor) string {
	return fmt.Sprintf("ensure %s is completely closed before running historygrab, or rerun with --kill", d.Browser)
}

func (r *Reporter) Started(d source.Descriptor) {
	r.logger.Debug("extracting history", "browser", d.Browser, "source", d.ID, "convention", d.Convention.String())
}

func (r *Reporter) NotFound(d source.Descriptor, where string) {
	r.logger.Info("history store not found", "browser", d.Browser, "location", where)
}

func (r *Reporter) Locked(d source.Descriptor, store string, err error) {
	r.logger.Error("history store is locked", "browser", d.Browser, "path", store, "error", err, "hint", closeHint(d))
}

func (r *Reporter) InvalidTimestamp(d source.Descriptor, err *extract.TimestampError, flagged bool) {
	if flagged {
		r.logger.Warn("timestamp out of range, row kept without visit time",
			"browser", d.Browser, "store", err.Store, "row", err.Row, "error", err.Err)
		return
	}
	r.logger.Error("timestamp out of range, source aborted",
		"browser", d.Browser, "store", err.Store, "row", err.Row, "error", err.Err)
}

func (r *Reporter) Saved(res extract.Result) {
	attrs := []any{"browser", res.Source.Browser, "output", res.Output, "rows", res.Rows}
	if len(res.Stores) > 1 {
		attrs = append(attrs, "stores", len(res.Stores))
	}
	if res.Flagged > 0 {
		attrs = append(attrs, "flagged", res.Flagged)
	}
	if res.Filtered > 0 {
		attrs = append(attrs, "filtered", res.Filtered)
	}
	r.logger.Info("history saved", attrs...)
}

func (r *Reporter) Failed(d source.Descriptor, err error) {
	r.logger.Error("extraction failed", "browser", d.Browser, "error", err)
}

// Terminated logs the outcome of a --kill pass.
func (r *Reporter) Terminated(outcomes []procs.Outcome) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			r.logger.Warn("could not terminate process", "process", o.Name, "error", o.Err)
		case o.Matched:
			r.logger.Info("terminated process", "process", o.Name)
		default:
			r.logger.Debug("process not running", "process", o.Name)
		}
	}
}
