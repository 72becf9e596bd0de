// Package collaborators holds the HTTP clients of the external reordering
// and label-reading services. Every failure, including a response of the
// wrong shape, is reported wrapped in ports.ErrCollaboratorUnavailable.
package collaborators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"routekeeper/internal/core/ports"
)

const (
	defaultTimeout = 20 * time.Second
	maxAttempts    = 4
	maxBodyBytes   = 1 << 20
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

// client posts JSON to one endpoint with an optional API key.
type client struct {
	endpoint string
	apiKey   string
	session  *http.Client
	backoff  time.Duration
}

func newClient(endpoint, apiKey string, session *http.Client) (*client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("missing collaborator endpoint")
	}
	if session == nil {
		session = &http.Client{Timeout: defaultTimeout}
	}
	return &client{
		endpoint: endpoint,
		apiKey:   apiKey,
		session:  session,
		backoff:  200 * time.Millisecond,
	}, nil
}

// postJSON sends payload and returns the raw response body.
func (c *client) postJSON(ctx context.Context, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodPost, bytes.NewReader(body))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ports.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ports.ErrCollaboratorUnavailable, err)
	}
	return raw, nil
}

func (c *client) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	return resp, nil
}

// doWithRetry retries network errors and 429/5xx responses with
// exponential backoff until ctx is done.
func (c *client) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := c.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err) || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}

func retryable(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		switch he.Code {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: malformed response: %s", ports.ErrCollaboratorUnavailable, fmt.Sprintf(format, args...))
}
