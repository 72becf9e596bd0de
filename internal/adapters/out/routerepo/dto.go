// Package routerepo persists the route as a JSON array in one slot of a
// key-value store, handling the conversion between the package aggregate
// and its stored record.
package routerepo

import (
	"errors"
	"time"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
)

// PackageDTO is the stored shape of a package. Timestamp is epoch milliseconds.
type PackageDTO struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	Recipient string `json:"recipient"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

func fromDomain(p *parcel.Package) PackageDTO {
	return PackageDTO{
		ID:        p.ID().String(),
		Address:   p.Address().Raw(),
		Recipient: p.Recipient(),
		Status:    p.Status().String(),
		Timestamp: p.Timestamp().UnixMilli(),
	}
}

func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, idErr := kernel.PackageIDFromString(dto.ID)
	address, addressErr := kernel.NewAddress(dto.Address)
	status, statusErr := parcel.ParseStatus(dto.Status)
	if err := errors.Join(idErr, addressErr, statusErr); err != nil {
		return nil, err
	}

	return parcel.RestorePackage(id, address, dto.Recipient, status, time.UnixMilli(dto.Timestamp))
}
