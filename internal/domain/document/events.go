package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSalesDocument = "SalesDocument"

// Event type constants
const (
	EventTypeOrderConfirmed    = "OrderConfirmed"
	EventTypeInvoiceValidated  = "InvoiceValidated"
	EventTypeInvoicePaid       = "InvoicePaid"
	EventTypeDocumentCancelled = "DocumentCancelled"
)

// lifecycleEvent carries the fields shared by all document lifecycle events
type lifecycleEvent struct {
	shared.BaseDomainEvent
	DocumentID uuid.UUID       `json:"document_id"`
	Number     string          `json:"number"`
	Kind       DocumentKind    `json:"kind"`
	Actor      target.ActorRef `json:"actor"`
	DocDate    *time.Time      `json:"doc_date,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

func newLifecycleEvent(eventType string, d *SalesDocument) lifecycleEvent {
	return lifecycleEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSalesDocument, d.ID),
		DocumentID:      d.ID,
		Number:          d.Number,
		Kind:            d.Kind,
		Actor:           d.Actor,
		DocDate:         d.DocDate,
		Amount:          d.Amount,
	}
}

// BusinessEvent converts the lifecycle event into the matcher's uniform
// input shape for the given metric
func (e *lifecycleEvent) BusinessEvent(metric target.Metric) target.BusinessEvent {
	return target.BusinessEvent{
		Actor:            e.Actor,
		Metric:           metric,
		EventDate:        e.DocDate,
		Amount:           e.Amount,
		SourceDocumentID: e.DocumentID,
	}
}

// OrderConfirmedEvent is raised when a sales order is confirmed
type OrderConfirmedEvent struct {
	lifecycleEvent
}

// NewOrderConfirmedEvent creates a new OrderConfirmedEvent
func NewOrderConfirmedEvent(d *SalesDocument) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{lifecycleEvent: newLifecycleEvent(EventTypeOrderConfirmed, d)}
}

// EventType returns the event type name
func (e *OrderConfirmedEvent) EventType() string {
	return EventTypeOrderConfirmed
}

// InvoiceValidatedEvent is raised when an invoice is posted
type InvoiceValidatedEvent struct {
	lifecycleEvent
}

// NewInvoiceValidatedEvent creates a new InvoiceValidatedEvent
func NewInvoiceValidatedEvent(d *SalesDocument) *InvoiceValidatedEvent {
	return &InvoiceValidatedEvent{lifecycleEvent: newLifecycleEvent(EventTypeInvoiceValidated, d)}
}

// EventType returns the event type name
func (e *InvoiceValidatedEvent) EventType() string {
	return EventTypeInvoiceValidated
}

// InvoicePaidEvent is raised when a posted invoice is fully paid
type InvoicePaidEvent struct {
	lifecycleEvent
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(d *SalesDocument) *InvoicePaidEvent {
	return &InvoicePaidEvent{lifecycleEvent: newLifecycleEvent(EventTypeInvoicePaid, d)}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}

// DocumentCancelledEvent is raised when a document is cancelled. If the
// document was finalized its amount just left the aggregation base and the
// matched target (if any) needs to be recomputed.
type DocumentCancelledEvent struct {
	lifecycleEvent
	TargetID     *uuid.UUID `json:"target_id,omitempty"`
	WasFinalized bool       `json:"was_finalized"`
}

// NewDocumentCancelledEvent creates a new DocumentCancelledEvent
func NewDocumentCancelledEvent(d *SalesDocument, wasFinalized bool) *DocumentCancelledEvent {
	return &DocumentCancelledEvent{
		lifecycleEvent: newLifecycleEvent(EventTypeDocumentCancelled, d),
		TargetID:       d.TargetID,
		WasFinalized:   wasFinalized,
	}
}

// EventType returns the event type name
func (e *DocumentCancelledEvent) EventType() string {
	return EventTypeDocumentCancelled
}
