package commands

import (
	"context"
	"errors"
	"log/slog"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/pkg/guard"
)

var ErrOptimizeRouteCommandIsNotConstructed = errors.New(
	"OptimizeRouteCommand must be created via NewOptimizeRouteCommand constructor",
)

// OptimizeRouteCommand runs one optimization pass over the pending packages.
type OptimizeRouteCommand struct {
	guard guard.ConstructorGuard
}

func NewOptimizeRouteCommand() OptimizeRouteCommand {
	return OptimizeRouteCommand{guard: guard.NewConstructorGuard()}
}

func (c OptimizeRouteCommand) Validate() error {
	return c.guard.Validate(ErrOptimizeRouteCommandIsNotConstructed)
}

// OptimizeRouteResult tells whether a new order was applied. Applied is
// false when there was nothing to reorder or the collaborator failed; the
// route then keeps its previous order.
type OptimizeRouteResult struct {
	Snapshot store.Snapshot
	Applied  bool
}

type OptimizeRouteCommandHandler struct {
	store     RouteStore
	optimizer RouteOptimizer
	logger    *slog.Logger
}

func NewOptimizeRouteCommandHandler(s RouteStore, optimizer RouteOptimizer, logger *slog.Logger) OptimizeRouteCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return OptimizeRouteCommandHandler{
		store:     s,
		optimizer: optimizer,
		logger:    logger.With("component", "optimize_route_handler"),
	}
}

// Handle takes a snapshot, asks the optimizer for an order outside of any
// lock and applies it through the store. Collaborator failures are logged
// and leave the route untouched; only store failures are returned.
func (h OptimizeRouteCommandHandler) Handle(ctx context.Context, cmd OptimizeRouteCommand) (OptimizeRouteResult, error) {
	if err := cmd.Validate(); err != nil {
		return OptimizeRouteResult{}, err
	}

	snap := h.store.Snapshot()
	pending := snap.Pending()
	if len(pending) < 2 {
		return OptimizeRouteResult{Snapshot: snap}, nil
	}

	ordered, err := h.optimizer.Request(ctx, pending)
	if err != nil {
		h.logger.WarnContext(ctx, "route optimization failed, keeping current order", "error", err)
		return OptimizeRouteResult{Snapshot: h.store.Snapshot()}, nil
	}

	order := make([]string, 0, len(ordered))
	for _, p := range ordered {
		order = append(order, p.ID().String())
	}

	applied, err := h.store.ApplyOrder(ctx, snap.Generation, order)
	if err != nil {
		return OptimizeRouteResult{Snapshot: applied}, err
	}
	return OptimizeRouteResult{Snapshot: applied, Applied: true}, nil
}
