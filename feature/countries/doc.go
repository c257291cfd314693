// Package countries implements the country catalog feature: the
// refresh-and-reconcile pipeline that merges the external country and
// exchange-rate feeds into the persisted catalog, plus the filtered/sorted
// read surface served over HTTP.
//
// Subpackages:
//   - models:  persisted and ephemeral data shapes
//   - fetch:   the two external feed clients and the record normalizer
//   - refresh: the reconciliation engine (join, derive, transactional upsert)
//   - report:  post-refresh summary artifact kept in object storage
//
// The service layer in this package owns catalog reads, collapses concurrent
// refresh invocations to a single writer, and schedules summary regeneration
// after every successful refresh.
package countries
