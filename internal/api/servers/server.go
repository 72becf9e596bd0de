package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// GET /api/v1/packages
	GetPackages(ctx echo.Context, params GetPackagesParams) error
	// POST /api/v1/packages
	CreatePackage(ctx echo.Context) error
	// POST /api/v1/packages/{id}/deliver
	DeliverPackage(ctx echo.Context, id string) error
	// POST /api/v1/scans
	ScanLabel(ctx echo.Context) error
	// GET /api/v1/stops
	GetStops(ctx echo.Context) error
	// DELETE /api/v1/stops
	RemoveStop(ctx echo.Context, params RemoveStopParams) error
	// DELETE /api/v1/route
	ClearRoute(ctx echo.Context, params ClearRouteParams) error
	// POST /api/v1/route/optimize
	OptimizeRoute(ctx echo.Context) error
	// POST /api/v1/route/prune
	PruneRoute(ctx echo.Context) error
	// GET /api/v1/stats
	GetStats(ctx echo.Context) error
	// GET /api/v1/navigation
	GetNavigationLink(ctx echo.Context, params GetNavigationLinkParams) error
	// GET /api/v1/onboarding
	GetOnboarding(ctx echo.Context) error
	// PUT /api/v1/onboarding
	SetOnboarding(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func badParam(name string, err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}

func (w *ServerInterfaceWrapper) GetPackages(ctx echo.Context) error {
	var params GetPackagesParams
	if err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status); err != nil {
		return badParam("status", err)
	}
	return w.Handler.GetPackages(ctx, params)
}

func (w *ServerInterfaceWrapper) CreatePackage(ctx echo.Context) error {
	return w.Handler.CreatePackage(ctx)
}

func (w *ServerInterfaceWrapper) DeliverPackage(ctx echo.Context) error {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return badParam("id", err)
	}
	return w.Handler.DeliverPackage(ctx, id)
}

func (w *ServerInterfaceWrapper) ScanLabel(ctx echo.Context) error {
	return w.Handler.ScanLabel(ctx)
}

func (w *ServerInterfaceWrapper) GetStops(ctx echo.Context) error {
	return w.Handler.GetStops(ctx)
}

func (w *ServerInterfaceWrapper) RemoveStop(ctx echo.Context) error {
	var params RemoveStopParams
	if err := runtime.BindQueryParameter("form", true, true, "address", ctx.QueryParams(), &params.Address); err != nil {
		return badParam("address", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "confirm", ctx.QueryParams(), &params.Confirm); err != nil {
		return badParam("confirm", err)
	}
	return w.Handler.RemoveStop(ctx, params)
}

func (w *ServerInterfaceWrapper) ClearRoute(ctx echo.Context) error {
	var params ClearRouteParams
	if err := runtime.BindQueryParameter("form", true, false, "confirm", ctx.QueryParams(), &params.Confirm); err != nil {
		return badParam("confirm", err)
	}
	return w.Handler.ClearRoute(ctx, params)
}

func (w *ServerInterfaceWrapper) OptimizeRoute(ctx echo.Context) error {
	return w.Handler.OptimizeRoute(ctx)
}

func (w *ServerInterfaceWrapper) PruneRoute(ctx echo.Context) error {
	return w.Handler.PruneRoute(ctx)
}

func (w *ServerInterfaceWrapper) GetStats(ctx echo.Context) error {
	return w.Handler.GetStats(ctx)
}

func (w *ServerInterfaceWrapper) GetNavigationLink(ctx echo.Context) error {
	var params GetNavigationLinkParams
	if err := runtime.BindQueryParameter("form", true, true, "address", ctx.QueryParams(), &params.Address); err != nil {
		return badParam("address", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "provider", ctx.QueryParams(), &params.Provider); err != nil {
		return badParam("provider", err)
	}
	return w.Handler.GetNavigationLink(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOnboarding(ctx echo.Context) error {
	return w.Handler.GetOnboarding(ctx)
}

func (w *ServerInterfaceWrapper) SetOnboarding(ctx echo.Context) error {
	return w.Handler.SetOnboarding(ctx)
}

// EchoRouter is satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/packages", w.GetPackages)
	router.POST(baseURL+"/api/v1/packages", w.CreatePackage)
	router.POST(baseURL+"/api/v1/packages/:id/deliver", w.DeliverPackage)
	router.POST(baseURL+"/api/v1/scans", w.ScanLabel)
	router.GET(baseURL+"/api/v1/stops", w.GetStops)
	router.DELETE(baseURL+"/api/v1/stops", w.RemoveStop)
	router.DELETE(baseURL+"/api/v1/route", w.ClearRoute)
	router.POST(baseURL+"/api/v1/route/optimize", w.OptimizeRoute)
	router.POST(baseURL+"/api/v1/route/prune", w.PruneRoute)
	router.GET(baseURL+"/api/v1/stats", w.GetStats)
	router.GET(baseURL+"/api/v1/navigation", w.GetNavigationLink)
	router.GET(baseURL+"/api/v1/onboarding", w.GetOnboarding)
	router.PUT(baseURL+"/api/v1/onboarding", w.SetOnboarding)
}
