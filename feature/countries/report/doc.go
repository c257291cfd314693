// Package report generates the post-refresh summary artifact: total catalog
// size, last refresh time, and the top entries by estimated GDP, serialized
// to JSON and kept in object storage. Generation is scheduled out-of-band
// after a successful refresh and never fails the refresh itself.
package report
