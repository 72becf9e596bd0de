package collaborators

import (
	"context"
	"fmt"

	"routekeeper/internal/core/ports"
)

// Unconfigured stands in for a collaborator whose endpoint is not set.
// Every call fails with ports.ErrCollaboratorUnavailable.
type Unconfigured struct {
	Name string
}

func (u Unconfigured) Reorder(context.Context, []ports.ReorderStop) ([]string, error) {
	return nil, u.err()
}

func (u Unconfigured) Read(context.Context, string) (ports.Label, error) {
	return ports.Label{}, u.err()
}

func (u Unconfigured) err() error {
	return fmt.Errorf("%w: %s is not configured", ports.ErrCollaboratorUnavailable, u.Name)
}
