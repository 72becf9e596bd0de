package commands

import (
	"context"
	"fmt"
	"log/slog"

	"routekeeper/internal/core/application/store"
	"routekeeper/internal/core/domain/model/kernel"
	"routekeeper/internal/core/domain/model/parcel"
	"routekeeper/internal/core/ports"
	"routekeeper/internal/pkg/clock"
)

// ScanLabelCommandHandler reads a label through the label reader and adds
// the resulting package. A failed read never creates a package.
type ScanLabelCommandHandler struct {
	reader  ports.LabelReader
	store   RouteStore
	trigger OptimizationTrigger
	clock   clock.Clock
	logger  *slog.Logger
}

func NewScanLabelCommandHandler(
	reader ports.LabelReader,
	s RouteStore,
	trigger OptimizationTrigger,
	clk clock.Clock,
	logger *slog.Logger,
) ScanLabelCommandHandler {
	if trigger == nil {
		trigger = noopTrigger{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return ScanLabelCommandHandler{
		reader:  reader,
		store:   s,
		trigger: trigger,
		clock:   clk,
		logger:  logger.With("component", "scan_label_handler"),
	}
}

// Handle returns ErrLabelNotRecognized when the reader fails, and
// route.ErrDuplicatePackage when the label was already scanned.
func (h ScanLabelCommandHandler) Handle(ctx context.Context, cmd ScanLabelCommand) (store.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return store.Snapshot{}, err
	}

	label, err := h.reader.Read(ctx, cmd.ImageBase64())
	if err != nil {
		h.logger.WarnContext(ctx, "label not recognized", "error", err)
		return h.store.Snapshot(), fmt.Errorf("%w: %w", ErrLabelNotRecognized, err)
	}

	address, err := kernel.NewAddress(label.Address)
	if err != nil {
		return h.store.Snapshot(), fmt.Errorf("%w: %w", ErrLabelNotRecognized, err)
	}

	p, err := parcel.NewPackage(cmd.PackageID(), address, label.Recipient, h.clock.Now())
	if err != nil {
		return h.store.Snapshot(), err
	}

	snap, err := h.store.Add(ctx, p)
	if err != nil {
		return snap, err
	}

	h.trigger.Schedule()
	return snap, nil
}
