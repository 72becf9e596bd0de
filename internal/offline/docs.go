// Package offline keeps the application shell available without network.
//
// A Worker owns one versioned cache generation. Install fills it with the
// asset manifest, Activate deletes every other generation and takes control,
// and Fetch answers GET requests from the cache, then the network, falling
// back to the cached main document for navigations.
//
// The package shares no state with the route store.
package offline
