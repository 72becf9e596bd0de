package services

import (
	"routekeeper/internal/core/domain/model/parcel"
)

// Stop is a physical drop-off point: the pending packages sharing one
// normalized address. Stops are derived on every read and never stored.
type Stop struct {
	// Address is the normalized address shared by all packages of the stop.
	Address string

	// Street is Address without house numbers.
	Street string

	// SameStreetAsPrevious tells the driver the stop continues on the street
	// of the stop before it.
	SameStreetAsPrevious bool

	// Packages in store order. They are shared with the caller's slice.
	Packages []*parcel.Package
}

// StopAggregator groups pending packages into stops.
//
// Business rules:
//   - only pending packages take part
//   - a normalized address maps to exactly one stop per aggregation
//   - stops are ordered by the first occurrence of their address, which is
//     the current route sequence
//   - packages inside a stop keep their store order
//
// StopAggregator holds no state and never mutates its input, so it can be
// called as often as the presentation needs.
type StopAggregator struct{}

func NewStopAggregator() StopAggregator {
	return StopAggregator{}
}

// Aggregate derives the ordered stops from packages in store order.
func (StopAggregator) Aggregate(packages []*parcel.Package) []Stop {
	stops := make([]Stop, 0)
	index := make(map[string]int)

	for _, p := range packages {
		if !p.IsPending() {
			continue
		}
		key := p.Address().Normalized()
		if i, ok := index[key]; ok {
			stops[i].Packages = append(stops[i].Packages, p)
			continue
		}

		stop := Stop{
			Address:  key,
			Street:   p.Address().Street(),
			Packages: []*parcel.Package{p},
		}
		if n := len(stops); n > 0 && stop.Street != "" {
			stop.SameStreetAsPrevious = stops[n-1].Street == stop.Street
		}
		index[key] = len(stops)
		stops = append(stops, stop)
	}

	return stops
}
