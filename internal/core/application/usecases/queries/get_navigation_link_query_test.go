package queries_test

import (
	"testing"

	"routekeeper/internal/core/application/usecases/queries"
	"routekeeper/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetNavigationLinkQueryHandler_Handle(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"", "https://www.google.com/maps/dir/?api=1&destination=5%20Main%20St%20%26%20Co"},
		{"google", "https://www.google.com/maps/dir/?api=1&destination=5%20Main%20St%20%26%20Co"},
		{"WAZE", "waze://?q=5%20Main%20St%20%26%20Co&navigate=yes"},
		{"apple", "maps://?daddr=5%20Main%20St%20%26%20Co"},
	}

	h := queries.NewGetNavigationLinkQueryHandler()
	for _, tt := range tests {
		t.Run("provider_"+tt.provider, func(t *testing.T) {
			q, err := queries.NewGetNavigationLinkQuery(" 5 Main St & Co ", tt.provider)
			require.NoError(t, err)

			link, err := h.Handle(t.Context(), q)

			require.NoError(t, err)
			assert.Equal(t, tt.want, link.URL)
		})
	}
}

func TestNewGetNavigationLinkQuery_Validation(t *testing.T) {
	_, err := queries.NewGetNavigationLinkQuery("", "google")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetNavigationLinkQuery("5 Main St", "here")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
