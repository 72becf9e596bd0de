package route

import (
	"errors"
	"fmt"
	"time"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/pkg/errs"
	"routekeeper/internal/pkg/guard"
)

var (
	ErrRouteIsNotConstructed = errors.New("Route must be created via NewRoute or RestoreRoute")

	// ErrDuplicatePackage is returned by Add when a package with the same
	// normalized address and recipient is already on the route.
	ErrDuplicatePackage = errors.New("package already exists")
)

// Route is the aggregate root holding every package of the working day in
// route order: pending packages first in the sequence they should be
// visited, followed by delivered packages.
//
// Route follows these invariants:
//   - package ids are unique
//   - no two packages added through Add share a dedup key
//   - new packages are inserted at the head, newest first
//   - reordering touches only the pending packages; delivered packages keep
//     their relative order
//
// Route is not safe for concurrent use; the application store serializes
// access to it.
type Route struct {
	packages []*parcel.Package
	guard    guard.ConstructorGuard
}

// NewRoute creates an empty route.
func NewRoute() *Route {
	return &Route{guard: guard.NewConstructorGuard()}
}

// RestoreRoute rebuilds a route from persisted packages, keeping their order.
// When the same id appears more than once only the first record is kept.
func RestoreRoute(packages []*parcel.Package) (*Route, error) {
	r := NewRoute()
	seen := make(map[string]struct{}, len(packages))

	var joined error
	for i, p := range packages {
		if err := p.Validate(); err != nil {
			joined = errors.Join(joined, fmt.Errorf("package %d: %w", i, err))
			continue
		}
		if _, dup := seen[p.ID().String()]; dup {
			continue
		}
		seen[p.ID().String()] = struct{}{}
		r.packages = append(r.packages, p)
	}
	if joined != nil {
		return nil, joined
	}
	return r, nil
}

// Validate ensures the route was built through a constructor.
func (r *Route) Validate() error {
	if r == nil {
		return ErrRouteIsNotConstructed
	}
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// Add inserts p at the head of the route.
//
// Returns ErrDuplicatePackage, leaving the route unchanged, when a package
// with the same dedup key or the same id is already present.
func (r *Route) Add(p *parcel.Package) error {
	if err := p.Validate(); err != nil {
		return err
	}
	key := p.DedupKey()
	for _, existing := range r.packages {
		if existing.DedupKey() == key || existing.ID().IsEqual(p.ID()) {
			return ErrDuplicatePackage
		}
	}

	r.packages = append([]*parcel.Package{p}, r.packages...)
	return nil
}

// Find looks a package up by id.
func (r *Route) Find(id kernel.PackageID) (*parcel.Package, bool) {
	for _, p := range r.packages {
		if p.ID().IsEqual(id) {
			return p, true
		}
	}
	return nil, false
}

// RemoveAddress removes every package, pending or delivered, whose
// normalized address matches address. It returns how many were removed.
func (r *Route) RemoveAddress(address string) int {
	kept := make([]*parcel.Package, 0, len(r.packages))
	for _, p := range r.packages {
		if !p.Address().Matches(address) {
			kept = append(kept, p)
		}
	}
	removed := len(r.packages) - len(kept)
	r.packages = kept
	return removed
}

// MarkDelivered delivers the package with the given id at now. It reports
// false, without error, when no such package exists.
func (r *Route) MarkDelivered(id kernel.PackageID, now time.Time) (bool, error) {
	p, ok := r.Find(id)
	if !ok {
		return false, nil
	}
	if err := p.Deliver(now); err != nil {
		return false, err
	}
	return true, nil
}

// Clear drops every package and returns how many there were.
func (r *Route) Clear() int {
	n := len(r.packages)
	r.packages = nil
	return n
}

// ReplacePending reorders the pending packages to follow order, which must
// name every pending package exactly once. Delivered packages are placed
// after the pending ones in their existing relative order.
func (r *Route) ReplacePending(order []kernel.PackageID) error {
	pending := make(map[string]*parcel.Package)
	var delivered []*parcel.Package
	for _, p := range r.packages {
		if p.IsPending() {
			pending[p.ID().String()] = p
		} else {
			delivered = append(delivered, p)
		}
	}

	if len(order) != len(pending) {
		return errs.NewValueIsInvalidErrorWithCause("order",
			fmt.Errorf("got %d ids for %d pending packages", len(order), len(pending)))
	}

	next := make([]*parcel.Package, 0, len(r.packages))
	for _, id := range order {
		p, ok := pending[id.String()]
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause("order",
				fmt.Errorf("%s is not a pending package or is repeated", id))
		}
		delete(pending, id.String())
		next = append(next, p)
	}

	r.packages = append(next, delivered...)
	return nil
}

// PruneExpired drops delivered packages that outlived the retention window
// at now and returns how many were dropped.
func (r *Route) PruneExpired(now time.Time) int {
	kept := make([]*parcel.Package, 0, len(r.packages))
	for _, p := range r.packages {
		if !p.IsExpired(now) {
			kept = append(kept, p)
		}
	}
	pruned := len(r.packages) - len(kept)
	r.packages = kept
	return pruned
}

// Len returns the number of packages on the route.
func (r *Route) Len() int {
	return len(r.packages)
}

// Packages returns clones of all packages in route order.
func (r *Route) Packages() []*parcel.Package {
	return cloneWhere(r.packages, func(*parcel.Package) bool { return true })
}

// Pending returns clones of the pending packages in route order.
func (r *Route) Pending() []*parcel.Package {
	return cloneWhere(r.packages, (*parcel.Package).IsPending)
}

// Delivered returns clones of the delivered packages in route order.
func (r *Route) Delivered() []*parcel.Package {
	return cloneWhere(r.packages, (*parcel.Package).IsDelivered)
}

func cloneWhere(packages []*parcel.Package, keep func(*parcel.Package) bool) []*parcel.Package {
	out := make([]*parcel.Package, 0, len(packages))
	for _, p := range packages {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
