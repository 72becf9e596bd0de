// Package store holds PackageStore, the single writer of route state, and
// the Snapshot values it hands out to readers.
package store
