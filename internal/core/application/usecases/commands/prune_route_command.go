package commands

import (
	"context"
	"errors"
	"log/slog"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/pkg/guard"
)

var ErrPruneRouteCommandIsNotConstructed = errors.New(
	"PruneRouteCommand must be created via NewPruneRouteCommand constructor",
)

// PruneRouteCommand drops delivered packages older than the retention window.
type PruneRouteCommand struct {
	guard guard.ConstructorGuard
}

func NewPruneRouteCommand() PruneRouteCommand {
	return PruneRouteCommand{guard: guard.NewConstructorGuard()}
}

func (c PruneRouteCommand) Validate() error {
	return c.guard.Validate(ErrPruneRouteCommandIsNotConstructed)
}

type PruneRouteCommandHandler struct {
	store  RouteStore
	logger *slog.Logger
}

func NewPruneRouteCommandHandler(s RouteStore, logger *slog.Logger) PruneRouteCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return PruneRouteCommandHandler{store: s, logger: logger.With("component", "prune_route_handler")}
}

// Handle returns the number of packages dropped.
func (h PruneRouteCommandHandler) Handle(ctx context.Context, cmd PruneRouteCommand) (store.Snapshot, int, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, 0, err
	}

	snap, pruned, err := h.store.Prune(ctx)
	if err != nil {
		return snap, pruned, err
	}
	if pruned > 0 {
		h.logger.InfoContext(ctx, "expired deliveries pruned", "count", pruned)
	}
	return snap, pruned, nil
}
