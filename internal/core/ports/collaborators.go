package ports

import (
	"context"
	"errors"
)

// ErrCollaboratorUnavailable is wrapped by collaborator adapters on network
// failures, error responses and responses that fail structural validation.
var ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

// ReorderStop is what the reordering collaborator learns about a package.
type ReorderStop struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// RouteReorderer suggests a visiting order for pending packages.
type RouteReorderer interface {
	// Reorder returns package ids in suggested order. The list may be
	// partial, contain unknown ids or be empty.
	Reorder(ctx context.Context, stops []ReorderStop) ([]string, error)
}

// Label is the address and recipient read from a shipping label.
type Label struct {
	Address   string
	Recipient string
}

// LabelReader extracts a Label from a base64-encoded label photo.
type LabelReader interface {
	// Read returns an error when nothing usable was recognized. A returned
	// Label always has a non-blank Address.
	Read(ctx context.Context, imageBase64 string) (Label, error)
}
