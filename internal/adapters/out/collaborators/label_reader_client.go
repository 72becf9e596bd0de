package collaborators

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"routekeeper/internal/core/ports"
)

type labelRequest struct {
	Image string `json:"image"`
}

// LabelReaderClient implements ports.LabelReader. The service receives
// {"image": "<base64>"} and answers with {"address": "...", "recipient": "..."}.
type LabelReaderClient struct {
	c *client
}

func NewLabelReaderClient(endpoint, apiKey string, session *http.Client) (*LabelReaderClient, error) {
	c, err := newClient(endpoint, apiKey, session)
	if err != nil {
		return nil, err
	}
	return &LabelReaderClient{c: c}, nil
}

func (l *LabelReaderClient) Read(ctx context.Context, imageBase64 string) (ports.Label, error) {
	raw, err := l.c.postJSON(ctx, labelRequest{Image: imageBase64})
	if err != nil {
		return ports.Label{}, err
	}
	return parseLabel(raw)
}

// parseLabel requires a non-blank string address; recipient may be absent,
// null or a string.
func parseLabel(raw []byte) (ports.Label, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return ports.Label{}, malformed("expected an object")
	}

	var label ports.Label
	if err := json.Unmarshal(fields["address"], &label.Address); err != nil {
		return ports.Label{}, malformed("address is not a string")
	}
	label.Address = strings.TrimSpace(label.Address)
	if label.Address == "" {
		return ports.Label{}, malformed("address is empty")
	}

	if recipient, ok := fields["recipient"]; ok && string(recipient) != "null" {
		if err := json.Unmarshal(recipient, &label.Recipient); err != nil {
			return ports.Label{}, malformed("recipient is not a string")
		}
		label.Recipient = strings.TrimSpace(label.Recipient)
	}

	return label, nil
}
