package commands

import (
	"errors"

	"routekeeper/internal/pkg/guard"
)

var ErrClearRouteCommandIsNotConstructed = errors.New(
	"ClearRouteCommand must be created via NewClearRouteCommand constructor",
)

// ClearRouteCommand drops every package. The driver must have confirmed it.
type ClearRouteCommand struct {
	guard guard.ConstructorGuard
}

func NewClearRouteCommand(confirmed bool) (ClearRouteCommand, error) {
	if !confirmed {
		return ClearRouteCommand{}, ErrConfirmationRequired
	}
	return ClearRouteCommand{guard: guard.NewConstructorGuard()}, nil
}

func (c ClearRouteCommand) Validate() error {
	return c.guard.Validate(ErrClearRouteCommandIsNotConstructed)
}
