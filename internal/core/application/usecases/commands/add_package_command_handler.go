package commands

import (
	"context"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/pkg/clock"
)

// AddPackageCommandHandler inserts a manually entered package and schedules
// an optimization pass.
type AddPackageCommandHandler struct {
	store   RouteStore
	trigger OptimizationTrigger
	clock   clock.Clock
}

// NewAddPackageCommandHandler creates the handler. A nil trigger disables
// automatic optimization.
func NewAddPackageCommandHandler(s RouteStore, trigger OptimizationTrigger, clk clock.Clock) AddPackageCommandHandler {
	if trigger == nil {
		trigger = noopTrigger{}
	}
	return AddPackageCommandHandler{store: s, trigger: trigger, clock: clk}
}

// Handle returns route.ErrDuplicatePackage when the package is already on the route.
func (h AddPackageCommandHandler) Handle(ctx context.Context, cmd AddPackageCommand) (store.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, err
	}

	p, err := parcel.NewPackage(cmd.PackageID(), cmd.Address(), cmd.Recipient(), h.clock.Now())
	if err != nil {
		return store.Snapshot{}, err
	}

	snap, err := h.store.Add(ctx, p)
	if err != nil {
		return snap, err
	}

	h.trigger.Schedule()
	return snap, nil
}
