package storage

import "time"

// Raw is a timestamp cell as the browser stored it. Stores keep the value as
// INTEGER or REAL, and the column may be NULL.
type Raw struct {
	Valid   bool
	IsFloat bool
	Int     int64
	Float   float64
}

// Row is one (url, title, timestamp) projection from a browser store.
type Row struct {
	URL      string
	Title    string
	HasTitle bool
	Time     Raw
}

// HistoryRecord is a normalized history entry ready to be written.
// VisitedAt is the zero time when the source has no timestamp for the row.
type HistoryRecord struct {
	URL       string
	Title     string
	VisitedAt time.Time
}
