package commands

import (
	"errors"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand records the delivery of one package.
type MarkDeliveredCommand struct {
	packageID kernel.PackageID
	guard     guard.ConstructorGuard
}

func NewMarkDeliveredCommand(packageID kernel.PackageID) (MarkDeliveredCommand, error) {
	if err := packageID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}
	return MarkDeliveredCommand{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) PackageID() kernel.PackageID {
	return c.packageID
}
