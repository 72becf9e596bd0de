package collaborators

import (
	"context"
	"encoding/json"
	"net/http"

	"routekeeper/internal/core/ports"
)

type reorderRequest struct {
	Stops []ports.ReorderStop `json:"stops"`
}

// ReorderClient implements ports.RouteReorderer. The service receives
// {"stops":[{"id","address"}...]} and answers with a JSON array of ids.
type ReorderClient struct {
	c *client
}

// NewReorderClient returns an error when endpoint is empty. A nil session
// uses an http.Client with a 20 s timeout.
func NewReorderClient(endpoint, apiKey string, session *http.Client) (*ReorderClient, error) {
	c, err := newClient(endpoint, apiKey, session)
	if err != nil {
		return nil, err
	}
	return &ReorderClient{c: c}, nil
}

func (r *ReorderClient) Reorder(ctx context.Context, stops []ports.ReorderStop) ([]string, error) {
	raw, err := r.c.postJSON(ctx, reorderRequest{Stops: stops})
	if err != nil {
		return nil, err
	}
	return parseOrder(raw)
}

// parseOrder accepts only an array whose elements are all strings.
func parseOrder(raw []byte) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil, malformed("expected an array of ids")
	}

	ids := make([]string, 0, len(items))
	for i, item := range items {
		var id string
		if err := json.Unmarshal(item, &id); err != nil {
			return nil, malformed("element %d is not a string", i)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
