package offline

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Middleware routes requests through w. Requests the worker does not
// intercept, and those skipper selects, reach next unchanged.
func Middleware(w *Worker, skipper middleware.Skipper) echo.MiddlewareFunc {
	if skipper == nil {
		skipper = middleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper(c) {
				return next(c)
			}

			resp, err := w.Fetch(c.Request().Context(), NewRequest(c.Request()))
			switch {
			case errors.Is(err, ErrNotIntercepted):
				return next(c)
			case errors.Is(err, ErrNetworkUnavailable):
				return echo.NewHTTPError(http.StatusGatewayTimeout, "offline and not cached").SetInternal(err)
			case err != nil:
				return err
			}

			for name, values := range resp.Header {
				for _, v := range values {
					c.Response().Header().Add(name, v)
				}
			}
			contentType := resp.Header.Get(echo.HeaderContentType)
			if contentType == "" {
				contentType = http.DetectContentType(resp.Body)
			}
			return c.Blob(resp.Status, contentType, resp.Body)
		}
	}
}
