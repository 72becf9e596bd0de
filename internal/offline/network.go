package offline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Network fetches assets from where they are served.
type Network interface {
	Get(ctx context.Context, key string) (Response, error)
}

// Origin fetches assets over HTTP from a base URL.
type Origin struct {
	baseURL string
	session *http.Client
}

// NewOrigin builds an Origin for baseURL. A nil session uses an
// http.Client with a 10 s timeout.
func NewOrigin(baseURL string, session *http.Client) *Origin {
	if session == nil {
		session = &http.Client{Timeout: 10 * time.Second}
	}
	return &Origin{baseURL: strings.TrimRight(baseURL, "/"), session: session}
}

// Get returns any HTTP response, including error statuses. Only transport
// failures are errors.
func (o *Origin) Get(ctx context.Context, key string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+key, nil)
	if err != nil {
		return Response{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read %s: %w", key, err)
	}

	header := http.Header{}
	for _, name := range []string{"Content-Type", "Cache-Control", "ETag"} {
		if v := resp.Header.Get(name); v != "" {
			header.Set(name, v)
		}
	}
	return Response{Status: resp.StatusCode, Header: header, Body: body}, nil
}
