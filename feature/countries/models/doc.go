// Package models defines the persisted and ephemeral data shapes of the
// countries feature: the GORM-mapped catalog entry, the normalized form of a
// raw feed record, and aggregate statistics.
package models
