// Package services provides the pure domain services of the route engine.
//
// The package includes:
//   - StopAggregator: derives the ordered list of stops from pending packages
//   - RouteMerger: merges an externally suggested ordering into the pending
//     packages without ever losing one
//
// Both services are stateless and side-effect free.
package services
