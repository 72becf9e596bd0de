package ports

import (
	"context"
)

// PreferencesRepository persists device-level flags that live outside the route.
type PreferencesRepository interface {
	OnboardingCompleted(ctx context.Context) (bool, error)
	SetOnboardingCompleted(ctx context.Context, completed bool) error
}
