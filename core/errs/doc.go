// Package errs defines the error taxonomy shared across features.
//
// It distinguishes failures by the stage that produced them so the HTTP layer
// can map them to distinct statuses:
//
//   - ExternalSourceError: a remote feed could not be fetched (upstream unavailable).
//   - MalformedRecordError: a single record could not be processed (dropped, never fatal).
//   - PersistenceError: a transactional write failed (batch rolled back).
//   - ErrNotFound: a read or delete targeted an absent entry (normal negative result).
//
// All typed errors support errors.As, and wrapped causes unwrap with errors.Is.
package errs
