package commands

import (
	"errors"
	"strings"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/pkg/errs"
	"routekeeper/internal/pkg/guard"
)

var ErrScanLabelCommandIsNotConstructed = errors.New(
	"ScanLabelCommand must be created via NewScanLabelCommand constructor",
)

// ScanLabelCommand turns a photographed shipping label into a package.
// The image is a base64 payload, optionally prefixed with a data URL header.
type ScanLabelCommand struct { //nolint:recvcheck //using for validation
	packageID   kernel.PackageID
	imageBase64 string

	guard guard.ConstructorGuard
}

func NewScanLabelCommand(packageID kernel.PackageID, imageBase64 string) (ScanLabelCommand, error) {
	cmd := ScanLabelCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setPackageID(packageID),
		cmd.setImage(imageBase64),
	); err != nil {
		return ScanLabelCommand{}, err
	}

	return cmd, nil
}

func (c ScanLabelCommand) Validate() error {
	return c.guard.Validate(ErrScanLabelCommandIsNotConstructed)
}

func (c ScanLabelCommand) PackageID() kernel.PackageID {
	return c.packageID
}

// ImageBase64 returns the bare base64 payload without any data URL header.
func (c ScanLabelCommand) ImageBase64() string {
	return c.imageBase64
}

func (c *ScanLabelCommand) setPackageID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.packageID = id
	return nil
}

func (c *ScanLabelCommand) setImage(image string) error {
	image = strings.TrimSpace(image)
	if i := strings.Index(image, ","); strings.HasPrefix(image, "data:") && i >= 0 {
		image = image[i+1:]
	}
	if image == "" {
		return errs.NewValueIsRequiredError("image")
	}
	c.imageBase64 = image
	return nil
}
