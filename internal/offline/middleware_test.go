package offline_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"routekeeper/internal/offline"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newShellServer(t *testing.T) (*echo.Echo, *fakeNetwork) {
	t.Helper()
	network := newFakeNetwork()
	w := activeWorker(t, offline.NewMemoryStorage(), network, "v1")

	e := echo.New()
	e.Use(offline.Middleware(w, func(c echo.Context) bool {
		return strings.HasPrefix(c.Request().URL.Path, "/api/")
	}))
	e.Any("/*", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "passed through")
	})
	return e, network
}

func TestMiddleware(t *testing.T) {
	t.Run("serves_cached_shell", func(t *testing.T) {
		e, network := newShellServer(t)
		network.setDown(true)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "<html>index</html>", rec.Body.String())
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	})

	t.Run("offline_subresource_is_gateway_timeout", func(t *testing.T) {
		e, network := newShellServer(t)
		network.setDown(true)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))

		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	})

	t.Run("post_and_skipped_paths_pass_through", func(t *testing.T) {
		e, _ := newShellServer(t)

		for _, req := range []*http.Request{
			httptest.NewRequest(http.MethodPost, "/index.html", nil),
			httptest.NewRequest(http.MethodGet, "/api/v1/stops", nil),
		} {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			require.Equal(t, http.StatusTeapot, rec.Code, req.URL.Path)
		}
	})
}
