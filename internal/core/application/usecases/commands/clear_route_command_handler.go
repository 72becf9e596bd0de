package commands

import (
	"context"

	"routekeeper/internal/core/application/store"
)

type ClearRouteCommandHandler struct {
	store RouteStore
}

func NewClearRouteCommandHandler(s RouteStore) ClearRouteCommandHandler {
	return ClearRouteCommandHandler{store: s}
}

func (h ClearRouteCommandHandler) Handle(ctx context.Context, cmd ClearRouteCommand) (store.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, err
	}
	return h.store.Clear(ctx)
}
