package target

import (
	"context"
	"fmt"

	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// DocumentEventHandler subscribes to document lifecycle events and feeds
// them to the event matcher so the covering targets stay current.
type DocumentEventHandler struct {
	matcher      *EventMatcher
	documentRepo document.DocumentRepository
	achievement  *AchievementService
	logger       *zap.Logger
}

// NewDocumentEventHandler creates a new DocumentEventHandler
func NewDocumentEventHandler(matcher *EventMatcher, documentRepo document.DocumentRepository, achievement *AchievementService, logger *zap.Logger) *DocumentEventHandler {
	return &DocumentEventHandler{
		matcher:      matcher,
		documentRepo: documentRepo,
		achievement:  achievement,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *DocumentEventHandler) EventTypes() []string {
	return []string{
		document.EventTypeOrderConfirmed,
		document.EventTypeInvoiceValidated,
		document.EventTypeInvoicePaid,
		document.EventTypeDocumentCancelled,
	}
}

// Handle routes a document lifecycle event to the matching targets
func (h *DocumentEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *document.OrderConfirmedEvent:
		return h.matcher.Match(ctx, e.BusinessEvent(target.MetricOrderConfirmed))
	case *document.InvoiceValidatedEvent:
		return h.matcher.Match(ctx, e.BusinessEvent(target.MetricInvoiceValidated))
	case *document.InvoicePaidEvent:
		return h.matcher.Match(ctx, e.BusinessEvent(target.MetricInvoicePaid))
	case *document.DocumentCancelledEvent:
		return h.handleCancelled(ctx, e)
	default:
		h.logger.Error("unexpected event type",
			zap.String("actual", event.EventType()))
		return fmt.Errorf("unexpected event type: %s", event.EventType())
	}
}

// handleCancelled removes the cancelled document's contribution. The
// back-reference is cleared first; if the document had ever been finalized
// its amount just left the aggregation base, so every target that could
// have counted it is recomputed from scratch.
func (h *DocumentEventHandler) handleCancelled(ctx context.Context, e *document.DocumentCancelledEvent) error {
	if e.TargetID != nil {
		if err := h.documentRepo.SetTargetRef(ctx, e.DocumentID, nil); err != nil {
			h.logger.Warn("failed to clear target back-reference",
				zap.String("document_id", e.DocumentID.String()),
				zap.Error(err))
		}
	}

	if !e.WasFinalized {
		return nil
	}

	var metrics []target.Metric
	switch e.Kind {
	case document.KindOrder:
		metrics = []target.Metric{target.MetricOrderConfirmed}
	case document.KindInvoice:
		metrics = []target.Metric{target.MetricInvoiceValidated, target.MetricInvoicePaid}
	}

	for _, metric := range metrics {
		if err := h.matcher.Match(ctx, e.BusinessEvent(metric)); err != nil {
			return err
		}
	}

	if e.TargetID != nil {
		// The recorded match may no longer be open; refresh it directly so
		// its stored rollup does not keep counting the cancelled amount.
		if err := h.achievement.RecomputeByID(ctx, *e.TargetID); err != nil {
			h.logger.Warn("failed to refresh previously matched target",
				zap.String("target_id", e.TargetID.String()),
				zap.Error(err))
		}
	}

	return nil
}

// Ensure DocumentEventHandler implements shared.EventHandler
var _ shared.EventHandler = (*DocumentEventHandler)(nil)
