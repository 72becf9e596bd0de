package ports

import (
	"context"
	"errors"

	"routekeeper/internal/core/domain/model/parcel"
)

// ErrMalformedState is wrapped by repositories when the persisted route
// exists but cannot be decoded into valid packages.
var ErrMalformedState = errors.New("persisted state is malformed")

// RouteRepository persists the whole package list of the route as one
// record, in route order.
type RouteRepository interface {
	// Load returns the persisted packages, or an empty slice when nothing
	// was saved yet. Undecodable data is reported with ErrMalformedState.
	Load(ctx context.Context) ([]*parcel.Package, error)

	// Save replaces the persisted packages with packages.
	Save(ctx context.Context, packages []*parcel.Package) error
}
