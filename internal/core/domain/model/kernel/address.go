package kernel

import (
	"strings"
	"unicode"

	"routekeeper/internal/pkg/errs"
)

// ErrAddressIsNotConstructed is returned when validating a zero-value Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress")

// Address is a free-text delivery address. The raw text is kept for display
// while Normalized gives the canonical form used for grouping and dedup:
// surrounding whitespace trimmed and letters upper-cased. Digits and inner
// spacing are retained as typed, so "5 Main St" and " 5 MAIN ST " compare
// equal but "5 Main  St" does not.
type Address struct {
	raw        string
	normalized string
}

// NewAddress validates that the text is not blank after trimming.
func NewAddress(raw string) (Address, error) {
	normalized := NormalizeText(raw)
	if normalized == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	return Address{raw: raw, normalized: normalized}, nil
}

// NormalizeText trims surrounding whitespace and folds letters to upper case.
func NormalizeText(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func (a Address) Raw() string {
	return a.raw
}

func (a Address) Normalized() string {
	return a.normalized
}

// Street drops the digits from the normalized address, leaving the street
// name. Two stops on the same street differ only by house number.
func (a Address) Street() string {
	withoutDigits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, a.normalized)
	return strings.Join(strings.Fields(withoutDigits), " ")
}

// Matches reports whether the address refers to the same stop as text.
func (a Address) Matches(text string) bool {
	return a.normalized == NormalizeText(text)
}

func (a Address) IsEqual(other Address) bool {
	return a.normalized == other.normalized
}

func (a Address) Validate() error {
	if a.normalized == "" {
		return ErrAddressIsNotConstructed
	}
	return nil
}
