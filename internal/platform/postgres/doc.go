// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so the same code runs
// against the shared pool or a caller-managed transaction.
package postgres
