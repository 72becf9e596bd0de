// Package kernel holds the value objects shared by the route aggregates.
//
// The package includes:
//   - PackageID: opaque package identifier whose prefix records how the package was created
//   - Address: free-text delivery address with the canonical normalization used for
//     deduplication and stop grouping
//
// Both types are immutable and their zero values fail Validate.
package kernel
