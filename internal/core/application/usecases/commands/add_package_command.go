package commands

import (
	"errors"
	"strings"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/pkg/guard"
)

var ErrAddPackageCommandIsNotConstructed = errors.New(
	"AddPackageCommand must be created via NewAddPackageCommand constructor",
)

// AddPackageCommand registers a package typed in by the driver.
// Address and recipient are trimmed; the address must not be blank.
type AddPackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.PackageID
	address   kernel.Address
	recipient string

	guard guard.ConstructorGuard
}

func NewAddPackageCommand(packageID kernel.PackageID, address, recipient string) (AddPackageCommand, error) {
	cmd := AddPackageCommand{
		recipient: strings.TrimSpace(recipient),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setAddress(address),
	); err != nil {
		return AddPackageCommand{}, err
	}

	return cmd, nil
}

func (c AddPackageCommand) Validate() error {
	return c.guard.Validate(ErrAddPackageCommandIsNotConstructed)
}

func (c AddPackageCommand) PackageID() kernel.PackageID {
	return c.packageID
}

func (c AddPackageCommand) Address() kernel.Address {
	return c.address
}

func (c AddPackageCommand) Recipient() string {
	return c.recipient
}

func (c *AddPackageCommand) setPackageID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *AddPackageCommand) setAddress(address string) error {
	a, err := kernel.NewAddress(strings.TrimSpace(address))
	if err != nil {
		return err
	}
	c.address = a
	return nil
}
