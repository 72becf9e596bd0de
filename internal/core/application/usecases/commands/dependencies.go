// Package commands contains the operations that change route state.
// Every command is validated on construction and handled by a dedicated
// handler that goes through the package store, which persists the change
// before the handler returns.
package commands

import (
	"context"
	"errors"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
)

var (
	// ErrConfirmationRequired is returned when a destructive command was not
	// confirmed by the driver.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrLabelNotRecognized is returned when a label photo produced no usable address.
	ErrLabelNotRecognized = errors.New("label not recognized")
)

type (
	// RouteStore is the write side of the package store.
	RouteStore interface {
		Add(ctx context.Context, p *parcel.Package) (store.Snapshot, error)
		Remove(ctx context.Context, address string) (store.Snapshot, int, error)
		MarkDelivered(ctx context.Context, id kernel.PackageID) (store.Snapshot, bool, error)
		Clear(ctx context.Context) (store.Snapshot, error)
		Prune(ctx context.Context) (store.Snapshot, int, error)
		ApplyOrder(ctx context.Context, generation uint64, order []string) (store.Snapshot, error)
		Snapshot() store.Snapshot
	}

	// OptimizationTrigger schedules a deferred optimization pass.
	OptimizationTrigger interface {
		Schedule()
	}

	// RouteOptimizer reorders a pending snapshot.
	RouteOptimizer interface {
		Request(ctx context.Context, pending []*parcel.Package) ([]*parcel.Package, error)
	}
)

type noopTrigger struct{}

func (noopTrigger) Schedule() {}
