package commands_test

import (
	"testing"

	"routekeeper/internal/core/application/usecases/commands"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/model/route"
	"routekeeper/internal/pkg/clock"
	"routekeeper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddPackageCommand(t *testing.T) {
	t.Run("trims_input", func(t *testing.T) {
		cmd, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), "  5 Main St ", "  Ana ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "5 Main St", cmd.Address().Raw())
		assert.Equal(t, "Ana", cmd.Recipient())
	})

	t.Run("rejects_blank_address", func(t *testing.T) {
		_, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), "   ", "Ana")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var cmd commands.AddPackageCommand

		require.ErrorIs(t, cmd.Validate(), commands.ErrAddPackageCommandIsNotConstructed)
	})
}

func TestAddPackageCommandHandler_Handle(t *testing.T) {
	t.Run("adds_and_schedules_optimization", func(t *testing.T) {
		// Given
		s, repo, _ := newStore(t)
		trigger := new(MockTrigger)
		trigger.On("Schedule").Return().Once()
		h := commands.NewAddPackageCommandHandler(s, trigger, clock.NewFakeClock(now))
		cmd, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), "5 Main St", "")
		require.NoError(t, err)

		// When
		snap, err := h.Handle(t.Context(), cmd)

		// Then
		require.NoError(t, err)
		require.Len(t, snap.Packages, 1)
		assert.Equal(t, parcel.ManualRecipientPlaceholder, snap.Packages[0].Recipient())
		assert.Equal(t, 1, repo.saves)
		trigger.AssertExpectations(t)
	})

	t.Run("duplicate_is_rejected_without_scheduling", func(t *testing.T) {
		// Given
		s, _, _ := newStore(t, newPackage(t, "a", "5 Main St", "Ana"))
		trigger := new(MockTrigger)
		h := commands.NewAddPackageCommandHandler(s, trigger, clock.NewFakeClock(now))
		cmd, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), " 5 MAIN ST ", "ana")
		require.NoError(t, err)

		// When
		snap, err := h.Handle(t.Context(), cmd)

		// Then
		require.ErrorIs(t, err, route.ErrDuplicatePackage)
		assert.Len(t, snap.Packages, 1)
		trigger.AssertNotCalled(t, "Schedule")
	})

	t.Run("nil_trigger_is_allowed", func(t *testing.T) {
		s, _, _ := newStore(t)
		h := commands.NewAddPackageCommandHandler(s, nil, clock.NewFakeClock(now))
		cmd, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), "5 Main St", "Ana")
		require.NoError(t, err)

		_, err = h.Handle(t.Context(), cmd)

		require.NoError(t, err)
	})

	t.Run("unconstructed_command_is_rejected", func(t *testing.T) {
		s, _, _ := newStore(t)
		h := commands.NewAddPackageCommandHandler(s, nil, clock.NewFakeClock(now))

		_, err := h.Handle(t.Context(), commands.AddPackageCommand{})

		require.ErrorIs(t, err, commands.ErrAddPackageCommandIsNotConstructed)
	})
}
