package queries

import (
	"context"
	"errors"

	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/pkg/guard"
)

var ErrGetPackagesQueryIsNotConstructed = errors.New(
	"GetPackagesQuery must be created via NewGetPackagesQuery constructor",
)

// GetPackagesQuery lists packages in route order, optionally filtered by status.
type GetPackagesQuery struct {
	status parcel.Status
	guard  guard.ConstructorGuard
}

// NewGetPackagesQuery builds the query. An empty status lists every package.
func NewGetPackagesQuery(status string) (GetPackagesQuery, error) {
	q := GetPackagesQuery{guard: guard.NewConstructorGuard()}
	if status == "" {
		return q, nil
	}
	s, err := parcel.ParseStatus(status)
	if err != nil {
		return GetPackagesQuery{}, err
	}
	q.status = s
	return q, nil
}

func (q GetPackagesQuery) Validate() error {
	return q.guard.Validate(ErrGetPackagesQueryIsNotConstructed)
}

type GetPackagesQueryHandler struct {
	reader RouteReader
}

func NewGetPackagesQueryHandler(reader RouteReader) GetPackagesQueryHandler {
	return GetPackagesQueryHandler{reader: reader}
}

func (h GetPackagesQueryHandler) Handle(_ context.Context, query GetPackagesQuery) ([]PackageResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	snap := h.reader.Snapshot()
	switch query.status {
	case parcel.Pending:
		return toPackageResponses(snap.Pending()), nil
	case parcel.Delivered:
		return toPackageResponses(snap.Delivered()), nil
	default:
		return toPackageResponses(snap.Packages), nil
	}
}
