package extract

import (
	"errors"
	"fmt"
)

// Error taxonomy. NotFound skips a source; Locked and timestamp range
// failures abort it; none of them stop the run.
var (
	ErrNotFound = errors.New("history store not found")
	ErrLocked   = errors.New("history store is locked")
)

// TimestampError locates a timestamp that could not be normalized.
type TimestampError struct {
	Store string // file path or registry key
	Row   int    // 1-based row within the store
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("%s row %d: %v", e.Store, e.Row, e.Err)
}

func (e *TimestampError) Unwrap() error { return e.Err }
