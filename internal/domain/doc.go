// Package domain contains the core entities of the FitTrack application:
// users, exercise categories, exercises, workouts, and the append-only
// progress log. Entities validate themselves; persistence concerns live
// in the store and platform packages.
package domain
