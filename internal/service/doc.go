// Package service implements the workout core: materializing workouts
// from exercise selections (workout builder), deriving read-only
// progress metrics (progress aggregator), picking the next muscle group,
// and triggering streak notifications. Services orchestrate the store
// interfaces and own no durable state of their own.
package service
