package optimizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/services"
	"routekeeper/internal/core/ports"
	"routekeeper/internal/pkg/obs"
)

// RouteOptimizer asks the reordering collaborator for a better visiting
// order and merges the answer back into the snapshot it was given.
//
// RouteOptimizer does not serialize requests; callers that may trigger
// overlapping passes are expected to collapse them.
type RouteOptimizer struct {
	reorderer ports.RouteReorderer
	merger    services.RouteMerger
	logger    *slog.Logger
}

func NewRouteOptimizer(reorderer ports.RouteReorderer, logger *slog.Logger) (*RouteOptimizer, error) {
	if reorderer == nil {
		return nil, errors.New("route reorderer is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteOptimizer{
		reorderer: reorderer,
		merger:    services.NewRouteMerger(),
		logger:    logger.With("component", "route_optimizer"),
	}, nil
}

// Request returns pending in the order suggested by the collaborator.
//
// With fewer than two packages the input is returned as is and the
// collaborator is not called. When the collaborator fails the input is
// returned unchanged together with the error, so callers can keep the
// last known good order.
func (o *RouteOptimizer) Request(ctx context.Context, pending []*parcel.Package) (_ []*parcel.Package, err error) {
	if len(pending) < 2 {
		return pending, nil
	}
	defer obs.Time(ctx, o.logger, "reorder")(&err)

	stops := make([]ports.ReorderStop, 0, len(pending))
	for _, p := range pending {
		stops = append(stops, ports.ReorderStop{ID: p.ID().String(), Address: p.Address().Raw()})
	}

	order, err := o.reorderer.Reorder(ctx, stops)
	if err != nil {
		return pending, fmt.Errorf("reorder %d packages: %w", len(pending), err)
	}

	return o.merger.Merge(pending, order), nil
}
