package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/ports"
	"routekeeper/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

type memoryRouteRepository struct {
	mu       sync.Mutex
	packages []*parcel.Package
	saves    int
}

func (r *memoryRouteRepository) Load(_ context.Context) ([]*parcel.Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.packages, nil
}

func (r *memoryRouteRepository) Save(_ context.Context, packages []*parcel.Package) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.packages = packages
	r.saves++
	return nil
}

type MockTrigger struct{ mock.Mock }

func (m *MockTrigger) Schedule() { m.Called() }

type MockLabelReader struct{ mock.Mock }

func (m *MockLabelReader) Read(ctx context.Context, image string) (ports.Label, error) {
	args := m.Called(ctx, image)
	return args.Get(0).(ports.Label), args.Error(1)
}

type MockRouteOptimizer struct{ mock.Mock }

func (m *MockRouteOptimizer) Request(ctx context.Context, pending []*parcel.Package) ([]*parcel.Package, error) {
	args := m.Called(ctx, pending)
	out, _ := args.Get(0).([]*parcel.Package)
	return out, args.Error(1)
}

type MockPreferencesRepository struct{ mock.Mock }

func (m *MockPreferencesRepository) OnboardingCompleted(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockPreferencesRepository) SetOnboardingCompleted(ctx context.Context, completed bool) error {
	args := m.Called(ctx, completed)
	return args.Error(0)
}

func newStore(t *testing.T, seed ...*parcel.Package) (*store.PackageStore, *memoryRouteRepository, *clock.FakeClock) {
	t.Helper()
	repo := &memoryRouteRepository{packages: seed}
	clk := clock.NewFakeClock(now)
	s, err := store.NewPackageStore(repo, clk, nil)
	require.NoError(t, err)
	_, err = s.Load(t.Context())
	require.NoError(t, err)
	return s, repo, clk
}

func newPackage(t *testing.T, id, address, recipient string) *parcel.Package {
	t.Helper()
	pid, err := kernel.PackageIDFromString(id)
	require.NoError(t, err)
	a, err := kernel.NewAddress(address)
	require.NoError(t, err)
	p, err := parcel.NewPackage(pid, a, recipient, now)
	require.NoError(t, err)
	return p
}

func ids(packages []*parcel.Package) []string {
	out := make([]string, 0, len(packages))
	for _, p := range packages {
		out = append(out, p.ID().String())
	}
	return out
}

func pid(t *testing.T, s string) kernel.PackageID {
	t.Helper()
	id, err := kernel.PackageIDFromString(s)
	require.NoError(t, err)
	return id
}
