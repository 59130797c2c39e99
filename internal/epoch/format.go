package epoch

import "time"

const (
	layoutSeconds = "2006-01-02 15:04:05"
	layoutMicros  = "2006-01-02 15:04:05.000000"
)

// Format renders t in loc as "YYYY-MM-DD HH:MM:SS", adding a six digit
// fraction only when the instant has sub-second microseconds.
// A nil loc means time.Local.
func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	if t.Nanosecond()/1000 == 0 {
		return t.Format(layoutSeconds)
	}
	return t.Format(layoutMicros)
}
