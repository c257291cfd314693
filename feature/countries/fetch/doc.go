// Package fetch retrieves the two external feeds the catalog is built from:
// the raw country list and the USD-relative exchange rate table.
//
// Each client carries its own bounded-timeout HTTP client. Feed-level
// failures (network, timeout, non-2xx) surface as errs.ExternalSourceError
// tagged with the failing source so the caller can abort the refresh before
// touching the store. Record-level failures in the country feed are absorbed:
// the normalizer rejects the record, the client drops and logs it, and the
// fetch succeeds with the remainder.
package fetch
