package commands

import (
	"context"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/pkg/errs"
)

type RemoveStopCommandHandler struct {
	store RouteStore
}

func NewRemoveStopCommandHandler(s RouteStore) RemoveStopCommandHandler {
	return RemoveStopCommandHandler{store: s}
}

// Handle reports errs.ErrObjectNotFound when no package matched the address.
func (h RemoveStopCommandHandler) Handle(ctx context.Context, cmd RemoveStopCommand) (store.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, err
	}

	snap, removed, err := h.store.Remove(ctx, cmd.Address())
	if err != nil {
		return snap, err
	}
	if removed == 0 {
		return snap, errs.NewObjectNotFoundError("address", cmd.Address())
	}
	return snap, nil
}
