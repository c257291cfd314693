// Package refresh implements the reconciliation engine at the heart of the
// catalog: fetch both external feeds concurrently, join countries with
// exchange rates on currency code, derive the estimated GDP, and upsert the
// whole batch against the persisted catalog in a single transaction.
//
// # Failure model
//
// Either feed failing aborts the refresh before any write (the tagged
// ExternalSourceError propagates). A persistence failure anywhere in the
// batch rolls back every pending change; partial upserts never survive.
// Individual malformed feed records were already absorbed at the fetch stage.
//
// # Identity
//
// The catalog is keyed by case-insensitive country name. Refresh creates an
// entry on first sighting of a name, overwrites all mutable fields on every
// subsequent sighting, and never deletes entries that dropped out of the
// feed — removal is an explicit out-of-band operation.
package refresh
