// Package parcel models a single delivery package and its lifecycle.
//
// The package includes:
//   - Package: an entity with identity, address, recipient, status and the
//     timestamp of its last lifecycle change
//   - Status: the Pending -> Delivered state machine
//
// Key business rules:
//   - the dedup key of a package is its normalized address and recipient
//   - delivering moves the timestamp to the delivery instant
//   - delivered packages expire after RetentionWindow (12 hours)
package parcel
