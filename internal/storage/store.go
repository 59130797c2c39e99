package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Driver names registered by the two SQLite implementations.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// Reader reads a browser history store. It never writes.
type Reader struct {
	db   *sql.DB
	path string
}

// Open opens path read-only with the named driver and forces the connection
// so a missing or unreadable file fails here rather than on first query.
func Open(ctx context.Context, driver, path string) (*Reader, error) {
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPureGo {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}

	db, err := sql.Open(driver, readOnlyDSN(driver, path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &Reader{db: db, path: path}, nil
}

// Path returns the store file this reader was opened on.
func (r *Reader) Path() string {
	return r.path
}

// Each runs query and calls fn for every row. The query must project
// (url, title, timestamp). Iteration stops at the first error from fn.
func (r *Reader) Each(ctx context.Context, query string, fn func(Row) error) error {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			url, title sql.NullString
			ts         any
		)
		if err := rows.Scan(&url, &title, &ts); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		raw, err := rawFrom(ts)
		if err != nil {
			return fmt.Errorf("scan row: %w", err)
		}

		if err := fn(Row{URL: url.String, Title: title.String, HasTitle: title.Valid, Time: raw}); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("read rows: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (r *Reader) Close() error {
	return r.db.Close()
}

func rawFrom(v any) (Raw, error) {
	switch t := v.(type) {
	case nil:
		return Raw{}, nil
	case int64:
		return Raw{Valid: true, Int: t}, nil
	case float64:
		return Raw{Valid: true, IsFloat: true, Float: t}, nil
	case []byte:
		return rawFromText(string(t))
	case string:
		return rawFromText(t)
	default:
		return Raw{}, fmt.Errorf("unsupported timestamp type %T", v)
	}
}

func rawFromText(s string) (Raw, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Raw{}, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Raw{Valid: true, Int: n}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Raw{}, fmt.Errorf("timestamp %q is not numeric", s)
	}
	return Raw{Valid: true, IsFloat: true, Float: f}, nil
}

// readOnlyDSN builds a SQLite URI filename opening path with mode=ro.
func readOnlyDSN(driver, path string) string {
	p := filepath.ToSlash(path)
	p = strings.NewReplacer("%", "%25", "?", "%3f", "#", "%23", " ", "%20").Replace(p)
	if len(p) >= 2 && p[1] == ':' {
		// Windows drive letter
		p = "///" + p
	}

	dsn := "file:" + p + "?mode=ro"
	if driver == DriverCGO {
		// go-sqlite3 defaults to a 5s busy wait; a locked store should fail now.
		dsn += "&_busy_timeout=0"
	}
	return dsn
}
