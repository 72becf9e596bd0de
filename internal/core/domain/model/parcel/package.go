package parcel

import (
	"errors"
	"strings"
	"time"

	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/pkg/errs"
	"routekeeper/internal/pkg/guard"
)

const (
	// ScannedRecipientPlaceholder stands in for a recipient the label reader could not find.
	ScannedRecipientPlaceholder = "CLIENTE"

	// ManualRecipientPlaceholder stands in for a recipient left empty on manual entry.
	ManualRecipientPlaceholder = "S/N"

	// RetentionWindow is how long a delivered package is kept after delivery.
	RetentionWindow = 43_200_000 * time.Millisecond
)

var ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage")

// Package is a single parcel on the route.
//
// Package follows these invariants:
//   - id and address are always valid
//   - recipient is never blank; a placeholder is used when none is given
//   - timestamp is the creation instant until the package is delivered, then
//     the instant of the latest delivery
//
// Packages are owned by the route aggregate. Callers outside the aggregate
// receive clones.
type Package struct {
	id        kernel.PackageID
	address   kernel.Address
	recipient string
	status    Status
	timestamp time.Time
	guard     guard.ConstructorGuard
}

// NewPackage creates a pending package created at createdAt.
//
// A blank recipient is replaced by the placeholder matching the id origin:
// ScannedRecipientPlaceholder for scanned labels, ManualRecipientPlaceholder
// otherwise.
func NewPackage(id kernel.PackageID, address kernel.Address, recipient string, createdAt time.Time) (*Package, error) {
	p := &Package{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setAddress(address),
		p.setTimestamp(createdAt),
	); err != nil {
		return nil, err
	}
	p.setRecipient(recipient)

	return p, nil
}

// RestorePackage rebuilds a package read back from storage.
func RestorePackage(
	id kernel.PackageID,
	address kernel.Address,
	recipient string,
	status Status,
	timestamp time.Time,
) (*Package, error) {
	p := &Package{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setAddress(address),
		p.setStatus(status),
		p.setTimestamp(timestamp),
	); err != nil {
		return nil, err
	}
	p.setRecipient(recipient)

	return p, nil
}

// Validate ensures the package was built through a constructor.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) ID() kernel.PackageID {
	return p.id
}

func (p *Package) Address() kernel.Address {
	return p.address
}

func (p *Package) Recipient() string {
	return p.recipient
}

func (p *Package) Status() Status {
	return p.status
}

func (p *Package) Timestamp() time.Time {
	return p.timestamp
}

func (p *Package) IsPending() bool {
	return p.status == Pending
}

func (p *Package) IsDelivered() bool {
	return p.status == Delivered
}

// DedupKey identifies packages that are the same parcel entered twice:
// normalized address and normalized recipient joined by "|".
func (p *Package) DedupKey() string {
	return p.address.Normalized() + "|" + kernel.NormalizeText(p.recipient)
}

// Deliver marks the package delivered at now. Calling it again on a
// delivered package only moves the timestamp forward, never back.
func (p *Package) Deliver(now time.Time) error {
	wasDelivered := p.status == Delivered
	next, err := p.status.Deliver()
	if err != nil {
		return err
	}
	p.status = next
	if !wasDelivered || now.After(p.timestamp) {
		p.timestamp = now
	}
	return nil
}

// IsExpired reports whether a delivered package has outlived the retention
// window at now. Pending packages never expire.
func (p *Package) IsExpired(now time.Time) bool {
	return p.status == Delivered && now.Sub(p.timestamp) >= RetentionWindow
}

// Clone returns a copy that shares no mutable state with p.
func (p *Package) Clone() *Package {
	c := *p
	return &c
}

func (p *Package) setID(id kernel.PackageID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Package) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	p.address = address
	return nil
}

func (p *Package) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	p.status = status
	return nil
}

func (p *Package) setTimestamp(ts time.Time) error {
	if ts.IsZero() {
		return errs.NewValueIsRequiredErrorWithCause("timestamp", errors.New("zero time"))
	}
	p.timestamp = ts
	return nil
}

func (p *Package) setRecipient(recipient string) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		recipient = placeholderFor(p.id)
	}
	p.recipient = recipient
}

func placeholderFor(id kernel.PackageID) string {
	if id.Origin() == kernel.OriginScanned {
		return ScannedRecipientPlaceholder
	}
	return ManualRecipientPlaceholder
}
