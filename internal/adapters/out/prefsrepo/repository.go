// Package prefsrepo persists device preferences in their own key-value slots.
package prefsrepo

import (
	"context"
	"encoding/json"
	"fmt"

	"routekeeper/internal/core/ports"
)

// OnboardingKey is the versioned key of the onboarding flag.
const OnboardingKey = "onboarding_v4"

// Repository implements ports.PreferencesRepository.
type Repository struct {
	kv ports.KeyValueStore
}

func NewRepository(kv ports.KeyValueStore) *Repository {
	return &Repository{kv: kv}
}

// OnboardingCompleted reports false when the flag was never written or
// cannot be decoded.
func (r *Repository) OnboardingCompleted(ctx context.Context) (bool, error) {
	raw, found, err := r.kv.Get(ctx, OnboardingKey)
	if err != nil {
		return false, fmt.Errorf("load onboarding flag: %w", err)
	}
	if !found {
		return false, nil
	}

	var completed bool
	if err := json.Unmarshal(raw, &completed); err != nil {
		return false, nil
	}
	return completed, nil
}

func (r *Repository) SetOnboardingCompleted(ctx context.Context, completed bool) error {
	raw, err := json.Marshal(completed)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, OnboardingKey, raw); err != nil {
		return fmt.Errorf("save onboarding flag: %w", err)
	}
	return nil
}
