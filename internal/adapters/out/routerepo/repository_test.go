package routerepo_test

import (
	"testing"
	"time"

	"routekeeper/internal/adapters/out/filekv"
	"routekeeper/internal/adapters/out/routerepo"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPackage(t *testing.T, id, address, recipient string, createdAt time.Time) *parcel.Package {
	t.Helper()
	pid, err := kernel.PackageIDFromString(id)
	require.NoError(t, err)
	addr, err := kernel.NewAddress(address)
	require.NoError(t, err)
	p, err := parcel.NewPackage(pid, addr, recipient, createdAt)
	require.NoError(t, err)
	return p
}

func TestRepository(t *testing.T) {
	createdAt := time.UnixMilli(1_700_000_000_000)

	t.Run("empty_slot_loads_empty_route", func(t *testing.T) {
		repo := routerepo.NewRepository(filekv.NewStore(t.TempDir()))

		packages, err := repo.Load(t.Context())

		require.NoError(t, err)
		assert.Empty(t, packages)
	})

	t.Run("save_and_load_keep_order_and_fields", func(t *testing.T) {
		repo := routerepo.NewRepository(filekv.NewStore(t.TempDir()))
		first := newPackage(t, "pkg-1", "5 Main St", "Ana", createdAt)
		second := newPackage(t, "man-2", "7 Oak Ave", "", createdAt)
		require.NoError(t, second.Deliver(createdAt.Add(time.Minute)))

		require.NoError(t, repo.Save(t.Context(), []*parcel.Package{first, second}))
		loaded, err := repo.Load(t.Context())

		require.NoError(t, err)
		require.Len(t, loaded, 2)
		assert.Equal(t, "pkg-1", loaded[0].ID().String())
		assert.Equal(t, "Ana", loaded[0].Recipient())
		assert.True(t, loaded[0].IsPending())
		assert.Equal(t, "man-2", loaded[1].ID().String())
		assert.Equal(t, parcel.ManualRecipientPlaceholder, loaded[1].Recipient())
		assert.True(t, loaded[1].IsDelivered())
		assert.Equal(t, createdAt.Add(time.Minute).UnixMilli(), loaded[1].Timestamp().UnixMilli())
	})

	t.Run("stored_record_format", func(t *testing.T) {
		kv := filekv.NewStore(t.TempDir())
		repo := routerepo.NewRepository(kv)

		require.NoError(t, repo.Save(t.Context(), []*parcel.Package{
			newPackage(t, "pkg-1", "5 Main St", "Ana", createdAt),
		}))

		raw, found, err := kv.Get(t.Context(), routerepo.SlotKey)
		require.NoError(t, err)
		require.True(t, found)
		assert.JSONEq(t,
			`[{"id":"pkg-1","address":"5 Main St","recipient":"Ana","status":"pending","timestamp":1700000000000}]`,
			string(raw))
	})

	t.Run("undecodable_slot_is_malformed", func(t *testing.T) {
		kv := filekv.NewStore(t.TempDir())
		require.NoError(t, kv.Put(t.Context(), routerepo.SlotKey, []byte(`{not json`)))

		_, err := routerepo.NewRepository(kv).Load(t.Context())

		require.ErrorIs(t, err, ports.ErrMalformedState)
	})

	t.Run("invalid_record_is_malformed", func(t *testing.T) {
		kv := filekv.NewStore(t.TempDir())
		require.NoError(t, kv.Put(t.Context(), routerepo.SlotKey,
			[]byte(`[{"id":"pkg-1","address":"  ","recipient":"","status":"lost","timestamp":0}]`)))

		_, err := routerepo.NewRepository(kv).Load(t.Context())

		require.ErrorIs(t, err, ports.ErrMalformedState)
	})
}
