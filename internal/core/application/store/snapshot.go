package store

import (
	"routekeeper/internal/core/domain/model/parcel"
)

// Snapshot is an immutable view of the store at one generation. The
// packages are clones and may be read freely by any goroutine.
type Snapshot struct {
	Generation uint64
	Packages   []*parcel.Package
}

// Pending returns the pending packages in route order.
func (s Snapshot) Pending() []*parcel.Package {
	return s.filter((*parcel.Package).IsPending)
}

// Delivered returns the delivered packages in route order.
func (s Snapshot) Delivered() []*parcel.Package {
	return s.filter((*parcel.Package).IsDelivered)
}

func (s Snapshot) filter(keep func(*parcel.Package) bool) []*parcel.Package {
	out := make([]*parcel.Package, 0, len(s.Packages))
	for _, p := range s.Packages {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
