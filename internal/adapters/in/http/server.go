package http

import (
	"errors"
	"log/slog"
	"net/http"

	"routekeeper/internal/api/servers"
	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/application/usecases/commands"
	"routekeeper/internal/core/application/usecases/queries"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/domain/model/route"
	"routekeeper/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the HTTP API exposes.
type Handlers struct {
	AddPackage         commands.AddPackageCommandHandler
	ScanLabel          commands.ScanLabelCommandHandler
	MarkDelivered      commands.MarkDeliveredCommandHandler
	RemoveStop         commands.RemoveStopCommandHandler
	ClearRoute         commands.ClearRouteCommandHandler
	OptimizeRoute      commands.OptimizeRouteCommandHandler
	PruneRoute         commands.PruneRouteCommandHandler
	CompleteOnboarding commands.CompleteOnboardingCommandHandler

	GetPackages       queries.GetPackagesQueryHandler
	GetStops          queries.GetStopsQueryHandler
	GetRouteStats     queries.GetRouteStatsQueryHandler
	GetNavigationLink queries.GetNavigationLinkQueryHandler
	GetOnboarding     queries.GetOnboardingQueryHandler
}

// Server implements servers.ServerInterface on top of the use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{h: h, logger: logger.With("component", "http_server")}
}

// GetPackages handles GET /api/v1/packages.
func (s *Server) GetPackages(ctx echo.Context, params servers.GetPackagesParams) error {
	status := ""
	if params.Status != nil {
		status = *params.Status
	}
	query, err := queries.NewGetPackagesQuery(status)
	if err != nil {
		return s.fail(ctx, err)
	}

	packages, err := s.h.GetPackages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, fromResponses(packages))
}

// CreatePackage handles POST /api/v1/packages (manual entry).
func (s *Server) CreatePackage(ctx echo.Context) error {
	var body servers.NewPackage
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	recipient := ""
	if body.Recipient != nil {
		recipient = *body.Recipient
	}
	cmd, err := commands.NewAddPackageCommand(kernel.NewManualPackageID(), body.Address, recipient)
	if err != nil {
		return s.fail(ctx, err)
	}

	snap, err := s.h.AddPackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRouteState(snap))
}

// ScanLabel handles POST /api/v1/scans.
func (s *Server) ScanLabel(ctx echo.Context) error {
	var body servers.Scan
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewScanLabelCommand(kernel.NewScannedPackageID(), body.Image)
	if err != nil {
		return s.fail(ctx, err)
	}

	snap, err := s.h.ScanLabel.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toRouteState(snap))
}

// DeliverPackage handles POST /api/v1/packages/{id}/deliver.
func (s *Server) DeliverPackage(ctx echo.Context, id string) error {
	packageID, err := kernel.PackageIDFromString(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewMarkDeliveredCommand(packageID)
	if err != nil {
		return s.fail(ctx, err)
	}

	snap, err := s.h.MarkDelivered.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRouteState(snap))
}

// GetStops handles GET /api/v1/stops.
func (s *Server) GetStops(ctx echo.Context) error {
	stops, err := s.h.GetStops.Handle(ctx.Request().Context(), queries.NewGetStopsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Stop, len(stops))
	for i, stop := range stops {
		response[i] = servers.Stop{
			Position:             stop.Position,
			Address:              stop.Address,
			Street:               stop.Street,
			SameStreetAsPrevious: stop.SameStreetAsPrevious,
			Packages:             fromResponses(stop.Packages),
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// RemoveStop handles DELETE /api/v1/stops.
func (s *Server) RemoveStop(ctx echo.Context, params servers.RemoveStopParams) error {
	cmd, err := commands.NewRemoveStopCommand(params.Address, isTrue(params.Confirm))
	if err != nil {
		return s.fail(ctx, err)
	}

	snap, err := s.h.RemoveStop.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRouteState(snap))
}

// ClearRoute handles DELETE /api/v1/route.
func (s *Server) ClearRoute(ctx echo.Context, params servers.ClearRouteParams) error {
	cmd, err := commands.NewClearRouteCommand(isTrue(params.Confirm))
	if err != nil {
		return s.fail(ctx, err)
	}

	snap, err := s.h.ClearRoute.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toRouteState(snap))
}

// OptimizeRoute handles POST /api/v1/route/optimize.
func (s *Server) OptimizeRoute(ctx echo.Context) error {
	result, err := s.h.OptimizeRoute.Handle(ctx.Request().Context(), commands.NewOptimizeRouteCommand())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.OptimizeResult{
		Applied: result.Applied,
		Route:   toRouteState(result.Snapshot),
	})
}

// PruneRoute handles POST /api/v1/route/prune.
func (s *Server) PruneRoute(ctx echo.Context) error {
	snap, pruned, err := s.h.PruneRoute.Handle(ctx.Request().Context(), commands.NewPruneRouteCommand())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.PruneResult{Pruned: pruned, Route: toRouteState(snap)})
}

// GetStats handles GET /api/v1/stats.
func (s *Server) GetStats(ctx echo.Context) error {
	stats, err := s.h.GetRouteStats.Handle(ctx.Request().Context(), queries.NewGetRouteStatsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Stats{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Delivered: stats.Delivered,
		Stops:     stats.Stops,
		Progress:  stats.Progress,
	})
}

// GetNavigationLink handles GET /api/v1/navigation.
func (s *Server) GetNavigationLink(ctx echo.Context, params servers.GetNavigationLinkParams) error {
	provider := ""
	if params.Provider != nil {
		provider = *params.Provider
	}
	query, err := queries.NewGetNavigationLinkQuery(params.Address, provider)
	if err != nil {
		return s.fail(ctx, err)
	}

	link, err := s.h.GetNavigationLink.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.NavigationLink{Provider: string(link.Provider), Url: link.URL})
}

// GetOnboarding handles GET /api/v1/onboarding.
func (s *Server) GetOnboarding(ctx echo.Context) error {
	completed, err := s.h.GetOnboarding.Handle(ctx.Request().Context())
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Onboarding{Completed: completed})
}

// SetOnboarding handles PUT /api/v1/onboarding.
func (s *Server) SetOnboarding(ctx echo.Context) error {
	var body servers.Onboarding
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd := commands.NewCompleteOnboardingCommand(body.Completed)
	if err := s.h.CompleteOnboarding.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// fail maps use case errors to status codes.
func (s *Server) fail(ctx echo.Context, err error) error {
	code := statusFor(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = "Internal error"
	}
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, route.ErrDuplicatePackage):
		return http.StatusConflict
	case errors.Is(err, commands.ErrLabelNotRecognized):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, commands.ErrConfirmationRequired),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func toRouteState(snap store.Snapshot) servers.RouteState {
	packages := make([]servers.Package, len(snap.Packages))
	for i, p := range snap.Packages {
		packages[i] = toPackage(p)
	}
	return servers.RouteState{Generation: snap.Generation, Packages: packages}
}

func toPackage(p *parcel.Package) servers.Package {
	return servers.Package{
		Id:        p.ID().String(),
		Address:   p.Address().Raw(),
		Recipient: p.Recipient(),
		Status:    servers.PackageStatus(p.Status().String()),
		Timestamp: p.Timestamp().UnixMilli(),
	}
}

func fromResponses(packages []queries.PackageResponse) []servers.Package {
	out := make([]servers.Package, len(packages))
	for i, p := range packages {
		out[i] = servers.Package{
			Id:        p.ID,
			Address:   p.Address,
			Recipient: p.Recipient,
			Status:    servers.PackageStatus(p.Status),
			Timestamp: p.Timestamp.UnixMilli(),
		}
	}
	return out
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
