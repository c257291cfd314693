package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound signals that a lookup or delete targeted an absent entry.
var ErrNotFound = errors.New("not found")

// ExternalSourceError reports that a remote data source could not be fetched.
// Source identifies the failing feed ("countries" or "rates").
type ExternalSourceError struct {
	Source string
	Err    error
}

func (e *ExternalSourceError) Error() string {
	return fmt.Sprintf("external source %q unavailable: %v", e.Source, e.Err)
}

func (e *ExternalSourceError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a single unprocessable record.
// It is absorbed at the fetch stage; it never aborts a batch.
type MalformedRecordError struct {
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return "malformed record: " + e.Reason
}

// PersistenceError reports a failed transactional write. The whole batch
// the write belonged to has been rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
