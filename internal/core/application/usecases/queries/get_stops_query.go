package queries

import (
	"context"
	"errors"

	"routekeeper/internal/core/domain/services"
	"routekeeper/internal/pkg/guard"
)

var ErrGetStopsQueryIsNotConstructed = errors.New(
	"GetStopsQuery must be created via NewGetStopsQuery constructor",
)

// GetStopsQuery lists the stops of the current route in visiting order.
type GetStopsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStopsQuery() GetStopsQuery {
	return GetStopsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStopsQuery) Validate() error {
	return q.guard.Validate(ErrGetStopsQueryIsNotConstructed)
}

// StopResponse is the read model of a stop. Position starts at 1.
type StopResponse struct {
	Position             int               `json:"position"`
	Address              string            `json:"address"`
	Street               string            `json:"street"`
	SameStreetAsPrevious bool              `json:"sameStreetAsPrevious"`
	Packages             []PackageResponse `json:"packages"`
}

type GetStopsQueryHandler struct {
	reader     RouteReader
	aggregator services.StopAggregator
}

func NewGetStopsQueryHandler(reader RouteReader) GetStopsQueryHandler {
	return GetStopsQueryHandler{reader: reader, aggregator: services.NewStopAggregator()}
}

func (h GetStopsQueryHandler) Handle(_ context.Context, query GetStopsQuery) ([]StopResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stops := h.aggregator.Aggregate(h.reader.Snapshot().Packages)
	out := make([]StopResponse, 0, len(stops))
	for i, stop := range stops {
		out = append(out, StopResponse{
			Position:             i + 1,
			Address:              stop.Address,
			Street:               stop.Street,
			SameStreetAsPrevious: stop.SameStreetAsPrevious,
			Packages:             toPackageResponses(stop.Packages),
		})
	}
	return out, nil
}
