// Package utils provides lenient type coercion for values of unknown shape.
//
// The external country feed returns heterogeneous records; these helpers turn
// arbitrary JSON values into the concrete types the catalog stores, defaulting
// rather than failing on surprises (a non-numeric population becomes 0, an
// absent capital becomes nil).
package utils
