package source

import (
	"runtime"

	"github.com/runnerr0/historygrab/internal/epoch"
)

// Platform names an operating system the way runtime.GOOS does.
type Platform string

const (
	Windows Platform = "windows"
	Linux   Platform = "linux"
	Darwin  Platform = "darwin"
)

// Current returns the platform this binary runs on.
func Current() Platform {
	return Platform(runtime.GOOS)
}

// Kind distinguishes SQLite-backed stores from the registry list.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindRegistry Kind = "registry"
)

// Descriptor is everything the pipeline needs to extract one browser on one
// platform: where the store lives, how to query it and how to read its
// timestamp column.
type Descriptor struct {
	ID       string // short id used in flags and config, e.g. "chrome"
	Browser  string // display name used in reports
	Platform Platform
	Kind     Kind

	// Locate finds store files. Nil for registry sources.
	Locate Locator
	// RegistryKey is the HKCU-relative key for registry sources.
	RegistryKey string

	// Query projects exactly (url, title, timestamp).
	Query      string
	Convention epoch.Convention

	OutputFile   string
	Header       []string
	ProcessNames []string
}

// HasTitle reports whether the output carries a title column.
func (d Descriptor) HasTitle() bool {
	return len(d.Header) == 3
}
