package queries_test

import (
	"context"
	"testing"
	"time"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

type MockRouteReader struct{ mock.Mock }

func (m *MockRouteReader) Snapshot() store.Snapshot {
	args := m.Called()
	return args.Get(0).(store.Snapshot)
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

func newPackage(t *testing.T, id, address string, delivered bool) *parcel.Package {
	t.Helper()
	pid, err := kernel.PackageIDFromString(id)
	require.NoError(t, err)
	a, err := kernel.NewAddress(address)
	require.NoError(t, err)
	p, err := parcel.NewPackage(pid, a, "X", now)
	require.NoError(t, err)
	if delivered {
		require.NoError(t, p.Deliver(now.Add(time.Minute)))
	}
	return p
}

func readerWith(t *testing.T, packages ...*parcel.Package) *MockRouteReader {
	t.Helper()
	r := new(MockRouteReader)
	r.On("Snapshot").Return(store.Snapshot{Generation: 1, Packages: packages})
	return r
}
