package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/historygrab/internal/epoch"
)

func touch(t *testing.T, parts ...string) string {
	t.Helper()
	path := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}

func TestTable_OneConventionPerSource(t *testing.T) {
	for _, d := range Table() {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.OutputFile)
		assert.Contains(t, []epoch.Convention{epoch.WebKit, epoch.Mozilla, epoch.Cocoa}, d.Convention, d.ID)
		switch d.Kind {
		case KindSQLite:
			assert.NotNil(t, d.Locate, d.ID)
			assert.NotEmpty(t, d.Query, d.ID)
			assert.Len(t, d.Header, 3, d.ID)
		case KindRegistry:
			assert.Nil(t, d.Locate, d.ID)
			assert.Equal(t, []string{"URL", "Visit Time"}, d.Header)
		default:
			t.Fatalf("unexpected kind %q", d.Kind)
		}
	}
}

func TestForPlatform(t *testing.T) {
	ids := func(p Platform) []string {
		var out []string
		for _, d := range ForPlatform(p) {
			out = append(out, d.ID)
		}
		return out
	}

	assert.Equal(t, []string{"chrome", "edge", "firefox", "ie"}, ids(Windows))
	assert.Equal(t, []string{"chrome", "firefox"}, ids(Linux))
	assert.Equal(t, []string{"chrome", "firefox", "safari"}, ids(Darwin))
	assert.Empty(t, ids(Platform("plan9")))
}

func TestHeaders(t *testing.T) {
	byID := map[string]Descriptor{}
	for _, d := range ForPlatform(Darwin) {
		byID[d.ID] = d
	}
	assert.Equal(t, []string{"URL", "Title", "Last Visit Time"}, byID["chrome"].Header)
	assert.Equal(t, []string{"URL", "Title", "Visit Date"}, byID["firefox"].Header)
	assert.Equal(t, []string{"URL", "Title", "Visit Time"}, byID["safari"].Header)
	assert.True(t, byID["safari"].HasTitle())
}

func TestEnvDir_DerivesWindowsDirs(t *testing.T) {
	env := Env{Home: "/home/u", UserProfile: "/profile"}
	assert.Equal(t, filepath.Join("/profile", "AppData", "Local"), env.Dir(LocalAppData))
	assert.Equal(t, filepath.Join("/profile", "AppData", "Roaming"), env.Dir(AppData))
	assert.Equal(t, "/home/u", env.Dir(Home))

	env = Env{Home: "/home/u", AppData: "/roam", LocalAppData: "/local"}
	assert.Equal(t, "/roam", env.Dir(AppData))
	assert.Equal(t, "/local", env.Dir(LocalAppData))

	env = Env{Home: "/home/u"}
	assert.Equal(t, filepath.Join("/home/u", "AppData", "Local"), env.Dir(LocalAppData))
}

func TestFixedPath_Locate(t *testing.T) {
	home := t.TempDir()
	env := Env{Home: home}
	loc := FixedPath{Base: Home, Elems: []string{".config", "google-chrome", "Default", "History"}}

	paths, err := loc.Locate(env)
	require.NoError(t, err)
	assert.Empty(t, paths, "absent store is not an error")

	want := touch(t, home, ".config", "google-chrome", "Default", "History")
	paths, err = loc.Locate(env)
	require.NoError(t, err)
	assert.Equal(t, []string{want}, paths)
}

func TestFixedPath_DirectoryIsNotAStore(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(home, "History"), 0755))

	paths, err := FixedPath{Base: Home, Elems: []string{"History"}}.Locate(Env{Home: home})
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestProfileWalk_FindsEveryProfile(t *testing.T) {
	home := t.TempDir()
	env := Env{Home: home}
	loc := ProfileWalk{Base: Home, Elems: []string{".mozilla", "firefox"}, FileName: "places.sqlite"}

	paths, err := loc.Locate(env)
	require.NoError(t, err)
	assert.Empty(t, paths)

	a := touch(t, home, ".mozilla", "firefox", "abc.default", "places.sqlite")
	b := touch(t, home, ".mozilla", "firefox", "xyz.dev-edition", "places.sqlite")
	touch(t, home, ".mozilla", "firefox", "xyz.dev-edition", "cookies.sqlite")

	paths, err = loc.Locate(env)
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, paths)
	assert.Equal(t, filepath.Join(home, ".mozilla", "firefox", "*", "places.sqlite"), loc.Describe(env))
}

func TestSelect(t *testing.T) {
	descs := ForPlatform(Windows)

	all, err := Select(descs, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	picked, err := Select(descs, []string{"ie", "chrome"})
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "chrome", picked[0].ID, "table order is kept")
	assert.Equal(t, "ie", picked[1].ID)

	_, err = Select(descs, []string{"safari"})
	assert.ErrorContains(t, err, `unknown browser "safari"`)
}

func TestWithOverrides(t *testing.T) {
	dir := t.TempDir()
	file := touch(t, dir, "copy", "History")
	profile := touch(t, dir, "profiles", "p1", "places.sqlite")

	descs := WithOverrides(ForPlatform(Windows), map[string]string{
		"chrome":  file,
		"firefox": filepath.Join(dir, "profiles"),
		"ie":      "/ignored",
	})

	paths, err := descs[0].Locate.Locate(Env{})
	require.NoError(t, err)
	assert.Equal(t, []string{file}, paths)

	paths, err = descs[2].Locate.Locate(Env{})
	require.NoError(t, err)
	assert.Equal(t, []string{profile}, paths)

	assert.Nil(t, descs[3].Locate, "registry source keeps its key")
	assert.IsType(t, FixedPath{}, ForPlatform(Windows)[0].Locate, "table is not mutated")
}

func TestProcessNames(t *testing.T) {
	assert.Equal(t, []string{"chrome.exe", "msedge.exe", "firefox.exe", "iexplore.exe"}, ProcessNames(ForPlatform(Windows)))
	assert.Equal(t, []string{"chrome", "firefox"}, ProcessNames(ForPlatform(Linux)))
	assert.Equal(t, []string{"Google Chrome", "firefox", "Safari"}, ProcessNames(ForPlatform(Darwin)))
}
