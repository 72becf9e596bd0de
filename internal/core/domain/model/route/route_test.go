package route_test

import (
	"testing"
	"time"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/model/route"
	"routekeeper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

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

func delivered(t *testing.T, id, address string, at time.Time) *parcel.Package {
	t.Helper()
	pid, err := kernel.PackageIDFromString(id)
	require.NoError(t, err)
	a, err := kernel.NewAddress(address)
	require.NoError(t, err)
	p, err := parcel.RestorePackage(pid, a, "X", parcel.Delivered, at)
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

func TestRoute_Add(t *testing.T) {
	t.Run("inserts_newest_first", func(t *testing.T) {
		// Given
		r := route.NewRoute()

		// When
		require.NoError(t, r.Add(newPackage(t, "a", "1 First Ave", "Ana")))
		require.NoError(t, r.Add(newPackage(t, "b", "2 Second Ave", "Bo")))
		require.NoError(t, r.Add(newPackage(t, "c", "3 Third Ave", "Cy")))

		// Then
		assert.Equal(t, []string{"c", "b", "a"}, ids(r.Packages()))
	})

	t.Run("rejects_normalized_duplicate", func(t *testing.T) {
		// Given
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

		// When
		err := r.Add(newPackage(t, "b", " 5 MAIN ST ", "ana"))

		// Then
		require.ErrorIs(t, err, route.ErrDuplicatePackage)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("same_address_other_recipient_is_allowed", func(t *testing.T) {
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

		require.NoError(t, r.Add(newPackage(t, "b", "5 Main St", "Bea")))
		assert.Equal(t, 2, r.Len())
	})

	t.Run("rejects_repeated_id", func(t *testing.T) {
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

		require.ErrorIs(t, r.Add(newPackage(t, "a", "6 Main St", "Bea")), route.ErrDuplicatePackage)
	})

	t.Run("rejects_unconstructed_package", func(t *testing.T) {
		r := route.NewRoute()

		require.ErrorIs(t, r.Add(&parcel.Package{}), parcel.ErrPackageIsNotConstructed)
	})
}

func TestRoute_RemoveAddress(t *testing.T) {
	// Given
	r := route.NewRoute()
	require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))
	require.NoError(t, r.Add(newPackage(t, "b", "9 High St", "Bo")))
	require.NoError(t, r.Add(newPackage(t, "c", "5 MAIN ST", "Cy")))

	// When
	removed := r.RemoveAddress(" 5 main st")

	// Then
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"b"}, ids(r.Packages()))
	assert.Equal(t, 0, r.RemoveAddress("nowhere"))
}

func TestRoute_MarkDelivered(t *testing.T) {
	t.Run("delivers_existing_package", func(t *testing.T) {
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

		ok, err := r.MarkDelivered(pid(t, "a"), now.Add(time.Minute))

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []string{"a"}, ids(r.Delivered()))
		assert.Empty(t, r.Pending())
	})

	t.Run("absent_id_is_noop", func(t *testing.T) {
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

		ok, err := r.MarkDelivered(pid(t, "zzz"), now)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, r.Pending(), 1)
	})

	t.Run("twice_keeps_status_and_moves_timestamp_forward", func(t *testing.T) {
		r := route.NewRoute()
		require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))
		first := now.Add(time.Minute)

		_, err := r.MarkDelivered(pid(t, "a"), first)
		require.NoError(t, err)
		_, err = r.MarkDelivered(pid(t, "a"), first.Add(time.Second))
		require.NoError(t, err)

		p, ok := r.Find(pid(t, "a"))
		require.True(t, ok)
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.False(t, p.Timestamp().Before(first))
	})
}

func TestRoute_Clear(t *testing.T) {
	r := route.NewRoute()
	require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))
	require.NoError(t, r.Add(newPackage(t, "b", "6 Main St", "Bo")))

	assert.Equal(t, 2, r.Clear())
	assert.Equal(t, 0, r.Len())
}

func TestRoute_ReplacePending(t *testing.T) {
	newRoute := func(t *testing.T) *route.Route {
		r, err := route.RestoreRoute([]*parcel.Package{
			newPackage(t, "a", "1 A St", "X"),
			delivered(t, "d1", "7 D St", now),
			newPackage(t, "b", "2 B St", "X"),
			newPackage(t, "c", "3 C St", "X"),
			delivered(t, "d2", "8 D St", now),
		})
		require.NoError(t, err)
		return r
	}

	t.Run("permutes_pending_and_keeps_delivered_tail", func(t *testing.T) {
		r := newRoute(t)

		err := r.ReplacePending([]kernel.PackageID{pid(t, "c"), pid(t, "a"), pid(t, "b")})

		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b", "d1", "d2"}, ids(r.Packages()))
	})

	t.Run("rejects_incomplete_order", func(t *testing.T) {
		r := newRoute(t)

		err := r.ReplacePending([]kernel.PackageID{pid(t, "c"), pid(t, "a")})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, []string{"a", "d1", "b", "c", "d2"}, ids(r.Packages()))
	})

	t.Run("rejects_delivered_or_repeated_ids", func(t *testing.T) {
		r := newRoute(t)

		require.ErrorIs(t, r.ReplacePending([]kernel.PackageID{pid(t, "c"), pid(t, "a"), pid(t, "d1")}), errs.ErrValueIsInvalid)
		require.ErrorIs(t, r.ReplacePending([]kernel.PackageID{pid(t, "c"), pid(t, "c"), pid(t, "a")}), errs.ErrValueIsInvalid)
	})
}

func TestRoute_PruneExpired(t *testing.T) {
	// Given
	r, err := route.RestoreRoute([]*parcel.Package{
		newPackage(t, "p", "1 A St", "X"),
		delivered(t, "fresh", "2 B St", now.Add(-12*time.Hour+time.Millisecond)),
		delivered(t, "stale", "3 C St", now.Add(-12*time.Hour-time.Millisecond)),
	})
	require.NoError(t, err)

	// When
	pruned := r.PruneExpired(now)

	// Then
	assert.Equal(t, 1, pruned)
	assert.Equal(t, []string{"p", "fresh"}, ids(r.Packages()))
}

func TestRestoreRoute(t *testing.T) {
	t.Run("drops_repeated_ids", func(t *testing.T) {
		r, err := route.RestoreRoute([]*parcel.Package{
			newPackage(t, "a", "1 A St", "X"),
			newPackage(t, "a", "2 B St", "Y"),
		})

		require.NoError(t, err)
		assert.Equal(t, 1, r.Len())
	})

	t.Run("rejects_unconstructed_packages", func(t *testing.T) {
		_, err := route.RestoreRoute([]*parcel.Package{{}})

		require.ErrorIs(t, err, parcel.ErrPackageIsNotConstructed)
	})

	t.Run("zero_value_route_is_invalid", func(t *testing.T) {
		var r route.Route

		assert.Equal(t, route.ErrRouteIsNotConstructed, r.Validate())
	})
}

func TestRoute_ReturnsClones(t *testing.T) {
	r := route.NewRoute()
	require.NoError(t, r.Add(newPackage(t, "a", "5 Main St", "Ana")))

	outside := r.Pending()[0]
	require.NoError(t, outside.Deliver(now.Add(time.Hour)))

	assert.Len(t, r.Pending(), 1)
}
