package queries

import (
	"context"
	"errors"
	"math"

	"routekeeper/internal/core/domain/services"
	"routekeeper/internal/pkg/guard"
)

var ErrGetRouteStatsQueryIsNotConstructed = errors.New(
	"GetRouteStatsQuery must be created via NewGetRouteStatsQuery constructor",
)

// GetRouteStatsQuery summarizes the progress of the working day.
type GetRouteStatsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetRouteStatsQuery() GetRouteStatsQuery {
	return GetRouteStatsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetRouteStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRouteStatsQueryIsNotConstructed)
}

// RouteStatsResponse counts packages and stops. Progress is the delivered
// share of all packages as a whole percentage.
type RouteStatsResponse struct {
	Total     int
	Pending   int
	Delivered int
	Stops     int
	Progress  int
}

type GetRouteStatsQueryHandler struct {
	reader     RouteReader
	aggregator services.StopAggregator
}

func NewGetRouteStatsQueryHandler(reader RouteReader) GetRouteStatsQueryHandler {
	return GetRouteStatsQueryHandler{reader: reader, aggregator: services.NewStopAggregator()}
}

func (h GetRouteStatsQueryHandler) Handle(_ context.Context, query GetRouteStatsQuery) (RouteStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return RouteStatsResponse{}, err
	}

	snap := h.reader.Snapshot()
	stats := RouteStatsResponse{
		Total:     len(snap.Packages),
		Pending:   len(snap.Pending()),
		Delivered: len(snap.Delivered()),
		Stops:     len(h.aggregator.Aggregate(snap.Packages)),
	}
	if stats.Total > 0 {
		stats.Progress = int(math.Round(float64(stats.Delivered) / float64(stats.Total) * 100))
	}
	return stats, nil
}
