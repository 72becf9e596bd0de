package services_test

import (
	"testing"
	"time"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.UnixMilli(1_700_000_000_000)

func pending(t *testing.T, id, address string) *parcel.Package {
	t.Helper()
	pid, err := kernel.PackageIDFromString(id)
	require.NoError(t, err)
	a, err := kernel.NewAddress(address)
	require.NoError(t, err)
	p, err := parcel.NewPackage(pid, a, "X", now)
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

func TestStopAggregator_Aggregate(t *testing.T) {
	aggregator := services.NewStopAggregator()

	t.Run("groups_normalized_addresses_in_insertion_order", func(t *testing.T) {
		// Given
		packages := []*parcel.Package{
			pending(t, "a", "5 Main St"),
			pending(t, "b", "9 High St"),
			pending(t, "c", "5 MAIN ST"),
		}

		// When
		stops := aggregator.Aggregate(packages)

		// Then
		require.Len(t, stops, 2)
		assert.Equal(t, "5 MAIN ST", stops[0].Address)
		assert.Equal(t, []string{"a", "c"}, ids(stops[0].Packages))
		assert.Equal(t, "9 HIGH ST", stops[1].Address)
		assert.Equal(t, []string{"b"}, ids(stops[1].Packages))
	})

	t.Run("skips_delivered_packages", func(t *testing.T) {
		done := pending(t, "d", "7 Low St")
		require.NoError(t, done.Deliver(now.Add(time.Minute)))

		stops := aggregator.Aggregate([]*parcel.Package{done, pending(t, "e", "8 Low St")})

		require.Len(t, stops, 1)
		assert.Equal(t, "8 LOW ST", stops[0].Address)
	})

	t.Run("flags_same_street", func(t *testing.T) {
		stops := aggregator.Aggregate([]*parcel.Package{
			pending(t, "a", "10 Rua Augusta"),
			pending(t, "b", "12 Rua Augusta"),
			pending(t, "c", "3 Rua Garrett"),
		})

		require.Len(t, stops, 3)
		assert.False(t, stops[0].SameStreetAsPrevious)
		assert.True(t, stops[1].SameStreetAsPrevious)
		assert.False(t, stops[2].SameStreetAsPrevious)
		assert.Equal(t, "RUA AUGUSTA", stops[1].Street)
	})

	t.Run("empty_input", func(t *testing.T) {
		assert.Empty(t, aggregator.Aggregate(nil))
	})

	t.Run("does_not_mutate_input", func(t *testing.T) {
		packages := []*parcel.Package{pending(t, "a", "5 Main St"), pending(t, "b", "5 main st")}

		first := aggregator.Aggregate(packages)
		second := aggregator.Aggregate(packages)

		assert.Equal(t, []string{"a", "b"}, ids(packages))
		assert.Equal(t, first, second)
	})
}
