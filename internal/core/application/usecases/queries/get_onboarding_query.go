package queries

import (
	"context"

	"routekeeper/internal/core/ports"
)

// GetOnboardingQueryHandler tells whether the driver already completed onboarding.
type GetOnboardingQueryHandler struct {
	prefs ports.PreferencesRepository
}

func NewGetOnboardingQueryHandler(prefs ports.PreferencesRepository) GetOnboardingQueryHandler {
	return GetOnboardingQueryHandler{prefs: prefs}
}

func (h GetOnboardingQueryHandler) Handle(ctx context.Context) (bool, error) {
	return h.prefs.OnboardingCompleted(ctx)
}
