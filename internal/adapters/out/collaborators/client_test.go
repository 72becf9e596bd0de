package collaborators

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"routekeeper/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReorderServer(t *testing.T, handler http.HandlerFunc) *ReorderClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rc, err := NewReorderClient(srv.URL, "secret", srv.Client())
	require.NoError(t, err)
	rc.c.backoff = time.Millisecond
	return rc
}

func TestReorderClient(t *testing.T) {
	stops := []ports.ReorderStop{{ID: "a", Address: "5 Main St"}, {ID: "b", Address: "7 Oak Ave"}}

	t.Run("sends_stops_and_returns_ids", func(t *testing.T) {
		var got reorderRequest
		rc := newReorderServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte(`["b","a","zzz"]`))
		})

		ids, err := rc.Reorder(t.Context(), stops)

		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "zzz"}, ids)
		assert.Equal(t, stops, got.Stops)
	})

	t.Run("empty_array_is_valid", func(t *testing.T) {
		rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		})

		ids, err := rc.Reorder(t.Context(), stops)

		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("null_body_is_unavailable", func(t *testing.T) {
		rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`null`))
		})

		ids, err := rc.Reorder(t.Context(), stops)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
		assert.Nil(t, ids)
	})

	t.Run("wrong_shapes_are_unavailable", func(t *testing.T) {
		for _, body := range []string{`{"ids":["a"]}`, `["a",1]`, `not json`, `null`} {
			rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			_, err := rc.Reorder(t.Context(), stops)

			require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable, body)
		}
	})

	t.Run("retries_server_errors", func(t *testing.T) {
		var calls atomic.Int32
		rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`["a"]`))
		})

		ids, err := rc.Reorder(t.Context(), stops)

		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids)
		assert.EqualValues(t, 3, calls.Load())
	})

	t.Run("client_errors_are_not_retried", func(t *testing.T) {
		var calls atomic.Int32
		rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := rc.Reorder(t.Context(), stops)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
		assert.EqualValues(t, 1, calls.Load())
	})

	t.Run("gives_up_after_max_attempts", func(t *testing.T) {
		var calls atomic.Int32
		rc := newReorderServer(t, func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := rc.Reorder(t.Context(), stops)

		require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
		var he *httpStatusError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadGateway, he.Code)
		assert.EqualValues(t, maxAttempts, calls.Load())
	})

	t.Run("requires_endpoint", func(t *testing.T) {
		_, err := NewReorderClient(" ", "", nil)
		require.Error(t, err)
	})
}

func TestLabelReaderClient(t *testing.T) {
	newLabelReader := func(t *testing.T, body string) *LabelReaderClient {
		t.Helper()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req labelRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "aGVsbG8=", req.Image)
			_, _ = w.Write([]byte(body))
		}))
		t.Cleanup(srv.Close)

		lr, err := NewLabelReaderClient(srv.URL, "", srv.Client())
		require.NoError(t, err)
		return lr
	}

	t.Run("reads_address_and_recipient", func(t *testing.T) {
		lr := newLabelReader(t, `{"address":" 5 Main St ","recipient":"Ana"}`)

		label, err := lr.Read(t.Context(), "aGVsbG8=")

		require.NoError(t, err)
		assert.Equal(t, ports.Label{Address: "5 Main St", Recipient: "Ana"}, label)
	})

	t.Run("recipient_is_optional", func(t *testing.T) {
		for _, body := range []string{`{"address":"5 Main St"}`, `{"address":"5 Main St","recipient":null}`} {
			lr := newLabelReader(t, body)

			label, err := lr.Read(t.Context(), "aGVsbG8=")

			require.NoError(t, err, body)
			assert.Empty(t, label.Recipient)
		}
	})

	t.Run("unusable_responses_are_unavailable", func(t *testing.T) {
		bodies := []string{
			`null`,
			`[]`,
			`{}`,
			`{"address":""}`,
			`{"address":42}`,
			`{"address":"5 Main St","recipient":7}`,
		}
		for _, body := range bodies {
			lr := newLabelReader(t, body)

			_, err := lr.Read(t.Context(), "aGVsbG8=")

			require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable, body)
		}
	})
}

func TestUnconfigured(t *testing.T) {
	u := Unconfigured{Name: "reorder service"}

	_, err := u.Reorder(t.Context(), nil)
	require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)

	_, err = u.Read(t.Context(), "aGVsbG8=")
	require.ErrorIs(t, err, ports.ErrCollaboratorUnavailable)
}
