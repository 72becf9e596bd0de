package kernel

import (
	"strings"

	"routekeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrPackageIDIsNotConstructed is returned when validating a zero-value PackageID.
var ErrPackageIDIsNotConstructed = errs.NewValueIsRequiredError("PackageID must be created via NewScannedPackageID, NewManualPackageID or PackageIDFromString")

// Origin tells how a package entered the route. It is encoded as the id prefix.
type Origin int

const (
	OriginUnknown Origin = iota
	OriginScanned
	OriginManual
)

const (
	scannedPrefix = "pkg-"
	manualPrefix  = "man-"
)

// PackageID is the opaque identifier of a package. Newly created ids carry a
// prefix naming their origin followed by a random UUID; ids read back from
// storage are accepted verbatim as long as they are not blank.
type PackageID struct {
	value string
}

// NewScannedPackageID generates an id for a package created from a label scan.
func NewScannedPackageID() PackageID {
	return PackageID{value: scannedPrefix + uuid.NewString()}
}

// NewManualPackageID generates an id for a package typed in by the driver.
func NewManualPackageID() PackageID {
	return PackageID{value: manualPrefix + uuid.NewString()}
}

// PackageIDFromString restores an id from its persisted or transported form.
func PackageIDFromString(s string) (PackageID, error) {
	if strings.TrimSpace(s) == "" {
		return PackageID{}, errs.NewValueIsRequiredError("packageID")
	}
	return PackageID{value: s}, nil
}

func (id PackageID) String() string {
	return id.value
}

// Origin derives the creation channel from the id prefix.
func (id PackageID) Origin() Origin {
	switch {
	case strings.HasPrefix(id.value, scannedPrefix):
		return OriginScanned
	case strings.HasPrefix(id.value, manualPrefix):
		return OriginManual
	default:
		return OriginUnknown
	}
}

func (id PackageID) IsEqual(other PackageID) bool {
	return id.value == other.value
}

func (id PackageID) Validate() error {
	if id.value == "" {
		return ErrPackageIDIsNotConstructed
	}
	return nil
}
