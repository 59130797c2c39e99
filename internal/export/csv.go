// Package export writes normalized history records as CSV reports.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/historygrab/internal/epoch"
	"github.com/runnerr0/historygrab/internal/storage"
)

// CSVSink writes one browser's records to a UTF-8 CSV file. The column set
// follows the header: URL only, URL + time, or URL + title + time.
type CSVSink struct {
	path   string
	header []string
	loc    *time.Location

	f    *os.File
	w    *csv.Writer
	rows int
}

// Create truncates or creates path and writes header. Timestamps are
// rendered in loc (nil means local time).
func Create(path string, header []string, loc *time.Location) (*CSVSink, error) {
	if len(header) == 0 || len(header) > 3 {
		return nil, fmt.Errorf("unsupported header %v", header)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return &CSVSink{path: path, header: header, loc: loc, f: f, w: w}, nil
}

// Path returns the output file path.
func (s *CSVSink) Path() string { return s.path }

// Rows returns the number of records written, excluding the header.
func (s *CSVSink) Rows() int { return s.rows }

// Write appends rec.
func (s *CSVSink) Write(rec storage.HistoryRecord) error {
	ts := ""
	if !rec.VisitedAt.IsZero() {
		ts = epoch.Format(rec.VisitedAt, s.loc)
	}

	var row []string
	switch len(s.header) {
	case 1:
		row = []string{rec.URL}
	case 2:
		row = []string{rec.URL, ts}
	default:
		row = []string{rec.URL, rec.Title, ts}
	}

	if err := s.w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	s.rows++
	return nil
}

// Close flushes buffered rows and closes the file.
func (s *CSVSink) Close() error {
	if s.f == nil {
		return nil
	}
	s.w.Flush()
	werr := s.w.Error()
	cerr := s.f.Close()
	s.f = nil
	if werr != nil {
		return fmt.Errorf("flush %s: %w", s.path, werr)
	}
	return cerr
}

// Remove closes and deletes the file, discarding a partial report.
func (s *CSVSink) Remove() error {
	_ = s.Close()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}
