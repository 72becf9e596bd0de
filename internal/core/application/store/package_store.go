package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/model/route"
	"routekeeper/internal/core/domain/services"
	"routekeeper/internal/core/ports"
	"routekeeper/internal/pkg/clock"
)

// PackageStore owns the canonical route and is its only writer.
//
// Every mutating method applies the change to the route, bumps the
// generation and saves the whole route synchronously before returning the
// new Snapshot. A failed save is returned to the caller; the in-memory
// change is kept so the next successful save persists it.
type PackageStore struct {
	mu         sync.Mutex
	repo       ports.RouteRepository
	clock      clock.Clock
	merger     services.RouteMerger
	route      *route.Route
	generation uint64
	logger     *slog.Logger
}

func NewPackageStore(repo ports.RouteRepository, clk clock.Clock, logger *slog.Logger) (*PackageStore, error) {
	if repo == nil {
		return nil, errors.New("route repository is required")
	}
	if clk == nil {
		return nil, errors.New("clock is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PackageStore{
		repo:   repo,
		clock:  clk,
		merger: services.NewRouteMerger(),
		route:  route.NewRoute(),
		logger: logger.With("component", "package_store"),
	}, nil
}

// Load replaces the in-memory route with the persisted one and applies the
// retention filter. Malformed persisted data resets the store to an empty
// route instead of failing; repository I/O errors are returned.
func (s *PackageStore) Load(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	packages, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, ports.ErrMalformedState):
		s.logger.WarnContext(ctx, "persisted route is malformed, starting empty", "error", err)
		packages = nil
	case err != nil:
		return Snapshot{}, fmt.Errorf("load route: %w", err)
	}

	r, err := route.RestoreRoute(packages)
	if err != nil {
		s.logger.WarnContext(ctx, "persisted route is invalid, starting empty", "error", err)
		r = route.NewRoute()
	}
	s.route = r
	s.generation++

	if pruned := s.route.PruneExpired(s.clock.Now()); pruned > 0 {
		s.logger.InfoContext(ctx, "dropped expired deliveries on load", "count", pruned)
		if err := s.save(ctx); err != nil {
			return s.snapshot(), err
		}
	}

	s.logger.InfoContext(ctx, "route loaded", "packages", s.route.Len())
	return s.snapshot(), nil
}

// Add inserts p at the head of the route. A duplicate leaves the store
// unchanged and returns route.ErrDuplicatePackage.
func (s *PackageStore) Add(ctx context.Context, p *parcel.Package) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.route.Add(p); err != nil {
		return s.snapshot(), err
	}
	return s.commit(ctx)
}

// Remove drops every package whose normalized address matches address.
// Callers are responsible for confirming the removal with the driver.
func (s *PackageStore) Remove(ctx context.Context, address string) (Snapshot, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.route.RemoveAddress(address)
	if removed == 0 {
		return s.snapshot(), 0, nil
	}
	snap, err := s.commit(ctx)
	return snap, removed, err
}

// MarkDelivered delivers the package with the given id at the current time.
// An unknown id is a no-op.
func (s *PackageStore) MarkDelivered(ctx context.Context, id kernel.PackageID) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.route.MarkDelivered(id, s.clock.Now())
	if err != nil {
		return s.snapshot(), false, err
	}
	if !found {
		return s.snapshot(), false, nil
	}
	snap, err := s.commit(ctx)
	return snap, true, err
}

// Clear empties the store unconditionally.
func (s *PackageStore) Clear(ctx context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.route.Clear()
	return s.commit(ctx)
}

// Prune applies the retention filter to the live route.
func (s *PackageStore) Prune(ctx context.Context) (Snapshot, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pruned := s.route.PruneExpired(s.clock.Now())
	if pruned == 0 {
		return s.snapshot(), 0, nil
	}
	snap, err := s.commit(ctx)
	return snap, pruned, err
}

// ApplyOrder reorders the pending packages following order, a list of
// package ids computed from the snapshot taken at generation.
//
// The order is always passed through the merge policy against the current
// pending packages, so packages removed or delivered since the snapshot are
// never resurrected and packages added since are never dropped. When the
// store moved past generation the result is logged as rebased.
func (s *PackageStore) ApplyOrder(ctx context.Context, generation uint64, order []string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		s.logger.InfoContext(ctx, "rebasing stale route order",
			"order_generation", generation, "current_generation", s.generation)
	}

	merged := s.merger.Merge(s.route.Pending(), order)
	ids := make([]kernel.PackageID, 0, len(merged))
	for _, p := range merged {
		ids = append(ids, p.ID())
	}
	if err := s.route.ReplacePending(ids); err != nil {
		return s.snapshot(), fmt.Errorf("apply route order: %w", err)
	}
	return s.commit(ctx)
}

// Snapshot returns the current state without mutating it.
func (s *PackageStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *PackageStore) commit(ctx context.Context) (Snapshot, error) {
	s.generation++
	if err := s.save(ctx); err != nil {
		return s.snapshot(), err
	}
	return s.snapshot(), nil
}

func (s *PackageStore) save(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.route.Packages()); err != nil {
		s.logger.ErrorContext(ctx, "failed to save route", "error", err)
		return fmt.Errorf("save route: %w", err)
	}
	return nil
}

func (s *PackageStore) snapshot() Snapshot {
	return Snapshot{Generation: s.generation, Packages: s.route.Packages()}
}
