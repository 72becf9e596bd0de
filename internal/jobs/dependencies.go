package jobs

import (
	"context"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/application/usecases/commands"
)

type (
	// OptimizeRouteHandler runs one optimization pass.
	OptimizeRouteHandler interface {
		Handle(ctx context.Context, cmd commands.OptimizeRouteCommand) (commands.OptimizeRouteResult, error)
	}

	// PruneRouteHandler drops expired deliveries.
	PruneRouteHandler interface {
		Handle(ctx context.Context, cmd commands.PruneRouteCommand) (store.Snapshot, int, error)
	}
)
