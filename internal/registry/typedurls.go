// Package registry reads the Internet Explorer typed URL list from the
// current user's registry hive.
//
// TypedURLs holds values url1..urlN (url1 most recent). Newer Windows builds
// keep a sibling TypedURLsTime key whose binary values of the same name are
// FILETIMEs: 100ns ticks since 1601-01-01, which is the WebKit epoch at ten
// times the resolution.
package registry

import (
	"encoding/binary"
	"errors"
	"sort"
	"strconv"
	"strings"
)

// ErrNotFound is returned when the typed URL key does not exist.
var ErrNotFound = errors.New("registry key not found")

// TypedURL is one entry from the typed URL list. Filetime is zero when no
// visit time was recorded.
type TypedURL struct {
	Name     string
	URL      string
	Filetime uint64
}

// HasTime reports whether a visit time was recorded.
func (u TypedURL) HasTime() bool {
	return u.Filetime != 0
}

// WebKitMicros converts the FILETIME to microseconds since 1601.
func (u TypedURL) WebKitMicros() int64 {
	return int64(u.Filetime / 10)
}

// Reader reads the typed URL list under an HKCU-relative key.
type Reader interface {
	TypedURLs(key string) ([]TypedURL, error)
}

// New returns the reader for this platform.
func New() Reader {
	return hkcuReader{}
}

// timeKey names the sibling key holding visit times.
func timeKey(key string) string {
	return key + "Time"
}

// parseFiletime decodes a little-endian FILETIME value. Short values are
// treated as absent.
func parseFiletime(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b[:8])
}

// sortByIndex orders entries url1, url2, ..., url10 numerically. Names
// without a numeric suffix go last in name order.
func sortByIndex(urls []TypedURL) {
	sort.SliceStable(urls, func(i, j int) bool {
		a, aok := nameIndex(urls[i].Name)
		b, bok := nameIndex(urls[j].Name)
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return urls[i].Name < urls[j].Name
		}
	})
}

func nameIndex(name string) (int, bool) {
	lower := strings.ToLower(name)
	if !strings.HasPrefix(lower, "url") {
		return 0, false
	}
	n, err := strconv.Atoi(lower[len("url"):])
	if err != nil {
		return 0, false
	}
	return n, true
}
