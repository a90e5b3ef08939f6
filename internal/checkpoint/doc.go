// Package checkpoint implements the project checkpoint pipeline: a snapshot
// copy of the project directory, a version-control commit, a dependency
// snapshot, and a file manifest, all correlated by one timestamp token and
// executed as an ordered list of operations that halt only on fatal failures.
package checkpoint
