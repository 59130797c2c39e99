// Package storagetest builds small browser history databases with the
// real Chrome, Firefox and Safari schemas for tests.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Visit is one fixture row. A nil Time stores NULL.
type Visit struct {
	URL   string
	Title *string
	Time  any
}

// Title returns a pointer for Visit.Title.
func Title(s string) *string { return &s }

const (
	chromeSchema = `CREATE TABLE urls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		typed_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL,
		hidden INTEGER DEFAULT 0 NOT NULL
	)`
	firefoxSchema = `CREATE TABLE moz_places (
		id INTEGER PRIMARY KEY,
		url LONGVARCHAR,
		title LONGVARCHAR,
		rev_host LONGVARCHAR,
		visit_count INTEGER DEFAULT 0,
		hidden INTEGER DEFAULT 0 NOT NULL,
		typed INTEGER DEFAULT 0 NOT NULL,
		frecency INTEGER DEFAULT -1 NOT NULL,
		last_visit_date INTEGER
	)`
	safariItemsSchema = `CREATE TABLE history_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL UNIQUE,
		domain_expansion TEXT NULL,
		visit_count INTEGER NOT NULL
	)`
	safariVisitsSchema = `CREATE TABLE history_visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		history_item INTEGER NOT NULL REFERENCES history_items(id) ON DELETE CASCADE,
		visit_time REAL NOT NULL,
		title TEXT NULL
	)`
)

func create(t *testing.T, path string, schema ...string) *sql.DB {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, stmt := range schema {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
	return db
}

// Chrome writes a Chromium History database (also used by Edge).
func Chrome(t *testing.T, path string, visits ...Visit) {
	t.Helper()
	db := create(t, path, chromeSchema)
	for _, v := range visits {
		_, err := db.Exec(`INSERT INTO urls (url, title, last_visit_time) VALUES (?, ?, ?)`, v.URL, v.Title, v.Time)
		require.NoError(t, err)
	}
}

// Firefox writes a places.sqlite database.
func Firefox(t *testing.T, path string, visits ...Visit) {
	t.Helper()
	db := create(t, path, firefoxSchema)
	for _, v := range visits {
		_, err := db.Exec(`INSERT INTO moz_places (url, title, last_visit_date) VALUES (?, ?, ?)`, v.URL, v.Title, v.Time)
		require.NoError(t, err)
	}
}

// Safari writes a History.db database with one history item per distinct URL.
func Safari(t *testing.T, path string, visits ...Visit) {
	t.Helper()
	db := create(t, path, safariItemsSchema, safariVisitsSchema)
	for _, v := range visits {
		_, err := db.Exec(`INSERT OR IGNORE INTO history_items (url, visit_count) VALUES (?, 0)`, v.URL)
		require.NoError(t, err)
		_, err = db.Exec(`UPDATE history_items SET visit_count = visit_count + 1 WHERE url = ?`, v.URL)
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO history_visits (history_item, visit_time, title)
			SELECT id, ?, ? FROM history_items WHERE url = ?`, v.Time, v.Title, v.URL)
		require.NoError(t, err)
	}
}

// Lock holds an exclusive lock on the database at path until the test ends,
// the way a running browser does. The lock is taken through mattn/go-sqlite3.
func Lock(t *testing.T, path string) {
	t.Helper()
	LockWith(t, "sqlite3", path)
}

// LockWith is Lock through the named driver. SQLite's POSIX locks are per
// process, so a reader in the same test binary only sees a lock taken by
// the same SQLite library it uses itself.
func LockWith(t *testing.T, driver, path string) {
	t.Helper()
	db, err := sql.Open(driver, path)
	require.NoError(t, err)

	conn, err := db.Conn(context.Background())
	require.NoError(t, err)
	_, err = conn.ExecContext(context.Background(), "BEGIN EXCLUSIVE")
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		db.Close()
	})
}
