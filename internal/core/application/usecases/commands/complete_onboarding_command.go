package commands

import (
	"context"

	"routekeeper/internal/core/ports"
)

// CompleteOnboardingCommand records whether the driver finished onboarding.
type CompleteOnboardingCommand struct {
	completed bool
}

func NewCompleteOnboardingCommand(completed bool) CompleteOnboardingCommand {
	return CompleteOnboardingCommand{completed: completed}
}

func (c CompleteOnboardingCommand) Completed() bool {
	return c.completed
}

type CompleteOnboardingCommandHandler struct {
	prefs ports.PreferencesRepository
}

func NewCompleteOnboardingCommandHandler(prefs ports.PreferencesRepository) CompleteOnboardingCommandHandler {
	return CompleteOnboardingCommandHandler{prefs: prefs}
}

func (h CompleteOnboardingCommandHandler) Handle(ctx context.Context, cmd CompleteOnboardingCommand) error {
	return h.prefs.SetOnboardingCompleted(ctx, cmd.Completed())
}
