package source

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Base selects the directory a store path is relative to.
type Base int

const (
	Home Base = iota
	AppData
	LocalAppData
)

// Env carries the user directories store paths are resolved against. Tests
// point these at temporary directories so no real browser is required.
type Env struct {
	Home         string
	UserProfile  string
	AppData      string
	LocalAppData string
}

// EnvFromOS reads the current user's directories.
func EnvFromOS() Env {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return Env{
		Home:         home,
		UserProfile:  os.Getenv("USERPROFILE"),
		AppData:      os.Getenv("APPDATA"),
		LocalAppData: os.Getenv("LOCALAPPDATA"),
	}
}

// Dir returns the directory for b, deriving the Windows roaming and local
// application data directories from the profile when they are unset.
func (e Env) Dir(b Base) string {
	profile := e.UserProfile
	if profile == "" {
		profile = e.Home
	}
	switch b {
	case AppData:
		if e.AppData != "" {
			return e.AppData
		}
		return filepath.Join(profile, "AppData", "Roaming")
	case LocalAppData:
		if e.LocalAppData != "" {
			return e.LocalAppData
		}
		return filepath.Join(profile, "AppData", "Local")
	default:
		return e.Home
	}
}

// Locator resolves zero or more store files. An empty result means the
// store is not present.
type Locator interface {
	Locate(env Env) ([]string, error)
	// Describe returns the unresolved location for listings.
	Describe(env Env) string
}

// FixedPath is a single well-known file.
type FixedPath struct {
	Base  Base
	Elems []string
}

func (p FixedPath) path(env Env) string {
	return filepath.Join(append([]string{env.Dir(p.Base)}, p.Elems...)...)
}

func (p FixedPath) Locate(env Env) ([]string, error) {
	path := p.path(env)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return nil, nil
	}
	return []string{path}, nil
}

func (p FixedPath) Describe(env Env) string { return p.path(env) }

// ProfileWalk finds every file called FileName below a profiles directory.
type ProfileWalk struct {
	Base     Base
	Elems    []string
	FileName string
}

func (w ProfileWalk) root(env Env) string {
	return filepath.Join(append([]string{env.Dir(w.Base)}, w.Elems...)...)
}

func (w ProfileWalk) Locate(env Env) ([]string, error) {
	return walkFor(w.root(env), w.FileName)
}

func (w ProfileWalk) Describe(env Env) string {
	return filepath.Join(w.root(env), "*", w.FileName)
}

// Override replaces a descriptor's location with a user supplied path. A
// directory is walked for fileName, a file is used as is.
type Override struct {
	Path     string
	FileName string
}

func (o Override) Locate(env Env) ([]string, error) {
	info, err := os.Stat(o.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if info.IsDir() {
		return walkFor(o.Path, o.FileName)
	}
	return []string{o.Path}, nil
}

func (o Override) Describe(env Env) string { return o.Path }

func walkFor(root, name string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable profiles
		}
		if !d.IsDir() && d.Name() == name {
			found = append(found, path)
		}
		return nil
	})
	return found, err
}
