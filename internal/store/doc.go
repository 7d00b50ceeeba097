// Package store defines the persistence contracts (the Record Store)
// consumed by the workout core, together with the sentinel errors all
// implementations return and a helper for running multi-step operations
// inside a database transaction.
package store
