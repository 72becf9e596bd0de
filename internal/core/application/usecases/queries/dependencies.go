// Package queries contains read operations over the route.
// Queries never mutate state: they read a store snapshot and project it
// into read models for the presentation layer.
package queries

import (
	"time"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/parcel"
)

// RouteReader is the read side of the package store.
type RouteReader interface {
	Snapshot() store.Snapshot
}

// PackageResponse is the read model of a package.
type PackageResponse struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	Recipient string    `json:"recipient"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

func toPackageResponse(p *parcel.Package) PackageResponse {
	return PackageResponse{
		ID:        p.ID().String(),
		Address:   p.Address().Raw(),
		Recipient: p.Recipient(),
		Status:    p.Status().String(),
		Timestamp: p.Timestamp(),
	}
}

func toPackageResponses(packages []*parcel.Package) []PackageResponse {
	out := make([]PackageResponse, 0, len(packages))
	for _, p := range packages {
		out = append(out, toPackageResponse(p))
	}
	return out
}
