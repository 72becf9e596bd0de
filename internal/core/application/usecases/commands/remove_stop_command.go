package commands

import (
	"errors"
	"strings"

	"routekeeper/internal/pkg/errs"
	"routekeeper/internal/pkg/guard"
)

var ErrRemoveStopCommandIsNotConstructed = errors.New(
	"RemoveStopCommand must be created via NewRemoveStopCommand constructor",
)

// RemoveStopCommand removes every package delivered to one address.
// The driver must have confirmed the removal.
type RemoveStopCommand struct {
	address string
	guard   guard.ConstructorGuard
}

func NewRemoveStopCommand(address string, confirmed bool) (RemoveStopCommand, error) {
	var joined error
	if strings.TrimSpace(address) == "" {
		joined = errs.NewValueIsRequiredError("address")
	}
	if !confirmed {
		joined = errors.Join(joined, ErrConfirmationRequired)
	}
	if joined != nil {
		return RemoveStopCommand{}, joined
	}
	return RemoveStopCommand{address: address, guard: guard.NewConstructorGuard()}, nil
}

func (c RemoveStopCommand) Validate() error {
	return c.guard.Validate(ErrRemoveStopCommandIsNotConstructed)
}

func (c RemoveStopCommand) Address() string {
	return c.address
}
