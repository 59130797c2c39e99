package source

import (
	"fmt"
	"sort"

	"github.com/runnerr0/historygrab/internal/epoch"
)

// Fixed projection queries. Each returns (url, title, timestamp).
const (
	ChromiumQuery = `SELECT url, title, last_visit_time FROM urls`
	FirefoxQuery  = `SELECT url, title, last_visit_date FROM moz_places`
	SafariQuery   = `SELECT i.url, v.title, v.visit_time
		FROM history_visits v
		JOIN history_items i ON i.id = v.history_item`
)

// TypedURLsKey is the Internet Explorer typed URL list under HKCU.
const TypedURLsKey = `Software\Microsoft\Internet Explorer\TypedURLs`

var (
	chromiumHeader = []string{"URL", "Title", "Last Visit Time"}
	firefoxHeader  = []string{"URL", "Title", "Visit Date"}
	safariHeader   = []string{"URL", "Title", "Visit Time"}
	typedHeader    = []string{"URL", "Visit Time"}
)

func chromium(id, browser string, p Platform, loc Locator, procs ...string) Descriptor {
	return Descriptor{
		ID:           id,
		Browser:      browser,
		Platform:     p,
		Kind:         KindSQLite,
		Locate:       loc,
		Query:        ChromiumQuery,
		Convention:   epoch.WebKit,
		OutputFile:   id + "_history.csv",
		Header:       chromiumHeader,
		ProcessNames: procs,
	}
}

func firefox(p Platform, loc ProfileWalk, procs ...string) Descriptor {
	loc.FileName = "places.sqlite"
	return Descriptor{
		ID:           "firefox",
		Browser:      "Firefox",
		Platform:     p,
		Kind:         KindSQLite,
		Locate:       loc,
		Query:        FirefoxQuery,
		Convention:   epoch.Mozilla,
		OutputFile:   "firefox_history.csv",
		Header:       firefoxHeader,
		ProcessNames: procs,
	}
}

// Table returns every known (browser, platform) descriptor in extraction order.
func Table() []Descriptor {
	return []Descriptor{
		// Windows
		chromium("chrome", "Google Chrome", Windows,
			FixedPath{Base: LocalAppData, Elems: []string{"Google", "Chrome", "User Data", "Default", "History"}},
			"chrome.exe"),
		chromium("edge", "Microsoft Edge", Windows,
			FixedPath{Base: LocalAppData, Elems: []string{"Microsoft", "Edge", "User Data", "Default", "History"}},
			"msedge.exe"),
		firefox(Windows, ProfileWalk{Base: AppData, Elems: []string{"Mozilla", "Firefox", "Profiles"}}, "firefox.exe"),
		{
			ID:           "ie",
			Browser:      "Internet Explorer",
			Platform:     Windows,
			Kind:         KindRegistry,
			RegistryKey:  TypedURLsKey,
			Convention:   epoch.WebKit,
			OutputFile:   "ie_history.csv",
			Header:       typedHeader,
			ProcessNames: []string{"iexplore.exe"},
		},

		// Linux
		chromium("chrome", "Google Chrome", Linux,
			FixedPath{Base: Home, Elems: []string{".config", "google-chrome", "Default", "History"}},
			"chrome"),
		firefox(Linux, ProfileWalk{Base: Home, Elems: []string{".mozilla", "firefox"}}, "firefox"),

		// macOS
		chromium("chrome", "Google Chrome", Darwin,
			FixedPath{Base: Home, Elems: []string{"Library", "Application Support", "Google", "Chrome", "Default", "History"}},
			"Google Chrome"),
		firefox(Darwin, ProfileWalk{Base: Home, Elems: []string{"Library", "Application Support", "Firefox", "Profiles"}}, "firefox"),
		{
			ID:           "safari",
			Browser:      "Safari",
			Platform:     Darwin,
			Kind:         KindSQLite,
			Locate:       FixedPath{Base: Home, Elems: []string{"Library", "Safari", "History.db"}},
			Query:        SafariQuery,
			Convention:   epoch.Cocoa,
			OutputFile:   "safari_history.csv",
			Header:       safariHeader,
			ProcessNames: []string{"Safari"},
		},
	}
}

// ForPlatform returns the descriptors that apply to p, in table order.
func ForPlatform(p Platform) []Descriptor {
	var out []Descriptor
	for _, d := range Table() {
		if d.Platform == p {
			out = append(out, d)
		}
	}
	return out
}

// Select narrows descs to the given ids, keeping table order. An empty id
// list selects everything. Unknown ids are an error.
func Select(descs []Descriptor, ids []string) ([]Descriptor, error) {
	if len(ids) == 0 {
		return descs, nil
	}

	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var out []Descriptor
	for _, d := range descs {
		if want[d.ID] {
			out = append(out, d)
			delete(want, d.ID)
		}
	}

	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for id := range want {
			unknown = append(unknown, id)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown browser %q for this platform", unknown[0])
	}
	return out, nil
}

// WithOverrides replaces the locator of every descriptor that has an entry
// in paths. Registry sources cannot be overridden.
func WithOverrides(descs []Descriptor, paths map[string]string) []Descriptor {
	out := make([]Descriptor, len(descs))
	for i, d := range descs {
		if p, ok := paths[d.ID]; ok && p != "" && d.Kind == KindSQLite {
			d.Locate = Override{Path: p, FileName: storeFileName(d)}
		}
		out[i] = d
	}
	return out
}

// ProcessNames lists the browser processes for descs without duplicates.
func ProcessNames(descs []Descriptor) []string {
	seen := make(map[string]bool)
	var names []string
	for _, d := range descs {
		for _, n := range d.ProcessNames {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

func storeFileName(d Descriptor) string {
	switch loc := d.Locate.(type) {
	case ProfileWalk:
		return loc.FileName
	case FixedPath:
		if len(loc.Elems) > 0 {
			return loc.Elems[len(loc.Elems)-1]
		}
	}
	return ""
}
