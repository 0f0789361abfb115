// Package archive copies deployment snapshots to object storage.
//
// Each change of the observed state is written twice: once as the project's
// latest.json and once under history/ with the poll time in the key, so a
// deployment can be replayed after the watcher exits.
package archive
