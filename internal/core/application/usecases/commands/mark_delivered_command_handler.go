package commands

import (
	"context"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/pkg/errs"
)

type MarkDeliveredCommandHandler struct {
	store RouteStore
}

func NewMarkDeliveredCommandHandler(s RouteStore) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{store: s}
}

// Handle delivers the package. The store treats an unknown id as a no-op;
// the handler reports it as errs.ErrObjectNotFound so callers can tell.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) (store.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, err
	}

	snap, found, err := h.store.MarkDelivered(ctx, cmd.PackageID())
	if err != nil {
		return snap, err
	}
	if !found {
		return snap, errs.NewObjectNotFoundError("packageID", cmd.PackageID().String())
	}
	return snap, nil
}
