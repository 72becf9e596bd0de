package services

import (
	"routekeeper/internal/core/domain/model/parcel"
)

// RouteMerger reconciles an ordering suggested by the reordering
// collaborator with the authoritative list of pending packages.
//
// Merge policy:
//   - returned ids are mapped, in order, to snapshot packages
//   - ids that are unknown to the snapshot, or already placed, are dropped
//   - every snapshot package the suggestion did not mention is appended in
//     its snapshot order
//
// The result is therefore always a permutation of the snapshot: no package
// is lost or duplicated whatever the collaborator returned.
type RouteMerger struct{}

func NewRouteMerger() RouteMerger {
	return RouteMerger{}
}

// Merge applies the merge policy to snapshot and the suggested ids.
func (RouteMerger) Merge(snapshot []*parcel.Package, suggested []string) []*parcel.Package {
	byID := make(map[string]*parcel.Package, len(snapshot))
	for _, p := range snapshot {
		byID[p.ID().String()] = p
	}

	merged := make([]*parcel.Package, 0, len(snapshot))
	placed := make(map[string]struct{}, len(snapshot))
	for _, id := range suggested {
		p, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := placed[id]; dup {
			continue
		}
		placed[id] = struct{}{}
		merged = append(merged, p)
	}

	for _, p := range snapshot {
		if _, ok := placed[p.ID().String()]; !ok {
			merged = append(merged, p)
		}
	}

	return merged
}
