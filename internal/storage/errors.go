package storage

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// Primary SQLite result codes for a store held by another process.
const (
	codeBusy   = 5
	codeLocked = 6
)

// IsLocked reports whether err means the store is held by another process,
// usually the browser itself. Both drivers are recognised.
func IsLocked(err error) bool {
	if err == nil {
		return false
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		return cgoErr.Code == sqlite3.ErrBusy || cgoErr.Code == sqlite3.ErrLocked
	}

	// modernc.org/sqlite reports extended codes through Code().
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		c := coded.Code() & 0xff
		return c == codeBusy || c == codeLocked
	}

	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}
