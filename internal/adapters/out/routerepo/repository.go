package routerepo

import (
	"context"
	"encoding/json"
	"fmt"

	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/ports"
)

// SlotKey is the versioned key the route is stored under.
const SlotKey = "packages_v4"

// Repository implements ports.RouteRepository over a key-value slot.
type Repository struct {
	kv ports.KeyValueStore
}

func NewRepository(kv ports.KeyValueStore) *Repository {
	return &Repository{kv: kv}
}

// Load returns an empty slice when the slot was never written.
func (r *Repository) Load(ctx context.Context) ([]*parcel.Package, error) {
	raw, found, err := r.kv.Get(ctx, SlotKey)
	if err != nil {
		return nil, fmt.Errorf("load route: %w", err)
	}
	if !found || len(raw) == 0 {
		return []*parcel.Package{}, nil
	}

	var dtos []PackageDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrMalformedState, err)
	}

	packages := make([]*parcel.Package, 0, len(dtos))
	for i, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ports.ErrMalformedState, i, err)
		}
		packages = append(packages, p)
	}

	return packages, nil
}

func (r *Repository) Save(ctx context.Context, packages []*parcel.Package) error {
	dtos := make([]PackageDTO, 0, len(packages))
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}

	raw, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("encode route: %w", err)
	}
	if err := r.kv.Put(ctx, SlotKey, raw); err != nil {
		return fmt.Errorf("save route: %w", err)
	}
	return nil
}
