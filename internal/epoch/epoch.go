// Package epoch converts raw browser timestamps into absolute instants.
//
// Browsers store visit times as integers counted from different origins and
// in different units. A Convention names one of those rules; Normalize applies
// it. Results are always UTC; rendering in a local zone is left to Format.
package epoch

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Convention identifies how a raw integer timestamp maps to an instant.
type Convention int

const (
	// WebKit counts microseconds since 1601-01-01T00:00:00Z (Chrome, Edge).
	WebKit Convention = iota + 1
	// Mozilla counts microseconds since the Unix epoch (Firefox).
	Mozilla
	// Cocoa counts seconds since 2001-01-01T00:00:00Z (Safari).
	Cocoa
)

const (
	// WebKitOffsetMicros is the distance from 1601-01-01 to 1970-01-01 in microseconds.
	WebKitOffsetMicros int64 = 11_644_473_600_000_000
	// CocoaOffsetSeconds is the distance from 1970-01-01 to 2001-01-01 in seconds.
	CocoaOffsetSeconds int64 = 978_307_200
)

// Representable range. Anything outside is a construction failure.
var (
	MinTime = time.Date(1601, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxTime = time.Date(9999, time.December, 31, 23, 59, 59, 999_999_000, time.UTC)

	minUnixMicro = MinTime.UnixMicro()
	maxUnixMicro = MaxTime.UnixMicro()
	minUnixSec   = MinTime.Unix()
	maxUnixSec   = MaxTime.Unix()
)

var (
	// ErrOutOfRange is wrapped by every RangeError.
	ErrOutOfRange = errors.New("timestamp out of range")
	// ErrUnknownConvention is returned for a Convention outside the defined set.
	ErrUnknownConvention = errors.New("unknown epoch convention")
)

// RangeError reports a raw value that does not map to a representable instant.
type RangeError struct {
	Raw        string
	Convention Convention
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s timestamp %s out of range [%s, %s]",
		e.Convention, e.Raw, MinTime.Format(time.RFC3339), MaxTime.Format(time.RFC3339))
}

func (e *RangeError) Unwrap() error { return ErrOutOfRange }

// String returns the lowercase convention name.
func (c Convention) String() string {
	switch c {
	case WebKit:
		return "webkit"
	case Mozilla:
		return "mozilla"
	case Cocoa:
		return "cocoa"
	default:
		return "convention(" + strconv.Itoa(int(c)) + ")"
	}
}

// ParseConvention accepts a convention name or the name of a browser that uses it.
func ParseConvention(name string) (Convention, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "webkit", "chrome", "chromium", "edge":
		return WebKit, nil
	case "mozilla", "firefox", "unix":
		return Mozilla, nil
	case "cocoa", "safari", "apple":
		return Cocoa, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, name)
}

// Normalize converts raw under convention c. It has no side effects and the
// same input always yields the same instant.
func Normalize(raw int64, c Convention) (time.Time, error) {
	switch c {
	case WebKit:
		// raw < 0 is before 1601; the upper bound fits in int64.
		if raw < 0 || raw > maxUnixMicro+WebKitOffsetMicros {
			return time.Time{}, rangeErr(raw, c)
		}
		return time.UnixMicro(raw - WebKitOffsetMicros).UTC(), nil
	case Mozilla:
		if raw < minUnixMicro || raw > maxUnixMicro {
			return time.Time{}, rangeErr(raw, c)
		}
		return time.UnixMicro(raw).UTC(), nil
	case Cocoa:
		if raw < minUnixSec-CocoaOffsetSeconds || raw > maxUnixSec-CocoaOffsetSeconds {
			return time.Time{}, rangeErr(raw, c)
		}
		return time.Unix(raw+CocoaOffsetSeconds, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownConvention, int(c))
}

// NormalizeFloat is Normalize for stores that keep the value as REAL, such as
// Safari's visit_time. Fractional units are kept to the microsecond.
func NormalizeFloat(raw float64, c Convention) (time.Time, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return time.Time{}, &RangeError{Raw: strconv.FormatFloat(raw, 'g', -1, 64), Convention: c}
	}
	if raw == math.Trunc(raw) && raw >= math.MinInt64 && raw < math.MaxInt64 {
		return Normalize(int64(raw), c)
	}

	var unixMicro float64
	switch c {
	case WebKit:
		unixMicro = math.Round(raw) - float64(WebKitOffsetMicros)
	case Mozilla:
		unixMicro = math.Round(raw)
	case Cocoa:
		unixMicro = math.Round(raw*1e6) + float64(CocoaOffsetSeconds)*1e6
	default:
		return time.Time{}, fmt.Errorf("%w: %d", ErrUnknownConvention, int(c))
	}

	if unixMicro < float64(minUnixMicro) || unixMicro > float64(maxUnixMicro) {
		return time.Time{}, &RangeError{Raw: strconv.FormatFloat(raw, 'f', -1, 64), Convention: c}
	}
	return time.UnixMicro(int64(unixMicro)).UTC(), nil
}

func rangeErr(raw int64, c Convention) error {
	return &RangeError{Raw: strconv.FormatInt(raw, 10), Convention: c}
}
