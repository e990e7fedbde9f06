package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
)

// DocumentKind distinguishes the business document types whose lifecycles
// drive target matching
type DocumentKind string

const (
	KindOrder   DocumentKind = "ORDER"
	KindInvoice DocumentKind = "INVOICE"
)

// IsValid checks if the kind is a known DocumentKind
func (k DocumentKind) IsValid() bool {
	switch k {
	case KindOrder, KindInvoice:
		return true
	}
	return false
}

// String returns the string representation of DocumentKind
func (k DocumentKind) String() string {
	return string(k)
}

// ParseDocumentKind converts a string to a DocumentKind
func ParseDocumentKind(s string) (DocumentKind, error) {
	k := DocumentKind(s)
	if !k.IsValid() {
		return "", fmt.Errorf("unknown document kind: %q", s)
	}
	return k, nil
}

// DocumentStatus represents the lifecycle state of a sales document
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "DRAFT"
	StatusConfirmed DocumentStatus = "CONFIRMED" // orders
	StatusPosted    DocumentStatus = "POSTED"    // invoices: validated
	StatusPaid      DocumentStatus = "PAID"      // invoices: fully paid
	StatusCancelled DocumentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirmed, StatusPosted, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// StatusesForMetric returns the document statuses that count as finalized
// for a given target metric. A paid invoice stays a validated one, so the
// validation metric counts both posted and paid invoices.
func StatusesForMetric(metric target.Metric) (DocumentKind, []DocumentStatus) {
	switch metric {
	case target.MetricOrderConfirmed:
		return KindOrder, []DocumentStatus{StatusConfirmed}
	case target.MetricInvoiceValidated:
		return KindInvoice, []DocumentStatus{StatusPosted, StatusPaid}
	case target.MetricInvoicePaid:
		return KindInvoice, []DocumentStatus{StatusPaid}
	}
	return "", nil
}

// SalesDocument is a normalized business document (sales order or customer
// invoice) as seen by the target engine: an actor, a date, an amount and a
// lifecycle. The TargetID back-reference is informational traceability
// only; achievement aggregation always re-derives from queries, never from
// back-references.
type SalesDocument struct {
	shared.BaseAggregateRoot
	Number   string               `gorm:"type:varchar(50);index"`
	Kind     DocumentKind         `gorm:"type:varchar(20);index"`
	Actor    target.ActorRef      `gorm:"embedded;embeddedPrefix:actor_"`
	DocDate  *time.Time           `gorm:"type:date"`
	Amount   decimal.Decimal      `gorm:"type:decimal(18,2)"`
	Currency valueobject.Currency `gorm:"type:varchar(3)"`
	Status   DocumentStatus       `gorm:"type:varchar(20);index"`
	TargetID *uuid.UUID           `gorm:"type:uuid;index"`

	ConfirmedAt *time.Time
	PostedAt    *time.Time
	PaidAt      *time.Time
	CancelledAt *time.Time
}

// TableName returns the database table name
func (SalesDocument) TableName() string {
	return "sales_documents"
}

// NewSalesDocument creates a new sales document in draft state.
// Actor and date may legitimately be absent at creation time; documents
// without them simply never produce matchable business events.
func NewSalesDocument(kind DocumentKind, number string, actor target.ActorRef, docDate *time.Time, amount decimal.Decimal, currency valueobject.Currency) (*SalesDocument, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown document kind")
	}
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Document amount cannot be negative")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	var date *time.Time
	if docDate != nil {
		d := valueobject.TruncateToDay(*docDate)
		date = &d
	}

	return &SalesDocument{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Kind:              kind,
		Actor:             actor,
		DocDate:           date,
		Amount:            amount,
		Currency:          currency,
		Status:            StatusDraft,
	}, nil
}

// Confirm marks an order as confirmed. Only orders confirm.
func (d *SalesDocument) Confirm() error {
	if d.Kind != KindOrder {
		return shared.NewDomainError("INVALID_KIND", "Only orders can be confirmed")
	}
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm document in %s status", d.Status))
	}

	now := time.Now()
	d.Status = StatusConfirmed
	d.ConfirmedAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewOrderConfirmedEvent(d))

	return nil
}

// Post validates an invoice (draft -> posted)
func (d *SalesDocument) Post() error {
	if d.Kind != KindInvoice {
		return shared.NewDomainError("INVALID_KIND", "Only invoices can be posted")
	}
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot post document in %s status", d.Status))
	}

	now := time.Now()
	d.Status = StatusPosted
	d.PostedAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewInvoiceValidatedEvent(d))

	return nil
}

// MarkPaid registers full payment of a posted invoice
func (d *SalesDocument) MarkPaid() error {
	if d.Kind != KindInvoice {
		return shared.NewDomainError("INVALID_KIND", "Only invoices can be paid")
	}
	if d.Status != StatusPosted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay document in %s status", d.Status))
	}

	now := time.Now()
	d.Status = StatusPaid
	d.PaidAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewInvoicePaidEvent(d))

	return nil
}

// Cancel cancels a document. Finalized amounts leave the aggregation base,
// so matched targets must be recomputed afterwards.
func (d *SalesDocument) Cancel() error {
	if d.Status == StatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Document is already cancelled")
	}

	wasFinalized := d.Status == StatusConfirmed || d.Status == StatusPosted || d.Status == StatusPaid

	now := time.Now()
	d.Status = StatusCancelled
	d.CancelledAt = &now
	d.UpdatedAt = now

	d.AddDomainEvent(NewDocumentCancelledEvent(d, wasFinalized))

	return nil
}

// SetActor changes the owning actor of a draft document
func (d *SalesDocument) SetActor(actor target.ActorRef) error {
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be modified")
	}
	d.Actor = actor
	d.UpdatedAt = time.Now()
	return nil
}

// SetDocDate changes the business date of a draft document
func (d *SalesDocument) SetDocDate(docDate *time.Time) error {
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be modified")
	}
	if docDate == nil {
		d.DocDate = nil
	} else {
		day := valueobject.TruncateToDay(*docDate)
		d.DocDate = &day
	}
	d.UpdatedAt = time.Now()
	return nil
}

// SetAmount changes the amount of a draft document
func (d *SalesDocument) SetAmount(amount decimal.Decimal) error {
	if d.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be modified")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Document amount cannot be negative")
	}
	d.Amount = amount
	d.UpdatedAt = time.Now()
	return nil
}

// SetTargetRef sets the back-reference to the matched target
func (d *SalesDocument) SetTargetRef(targetID *uuid.UUID) {
	d.TargetID = targetID
	d.UpdatedAt = time.Now()
}

// BusinessEventFor builds the uniform business event this document emits
// for the given metric
func (d *SalesDocument) BusinessEventFor(metric target.Metric) target.BusinessEvent {
	return target.BusinessEvent{
		Actor:            d.Actor,
		Metric:           metric,
		EventDate:        d.DocDate,
		Amount:           d.Amount,
		SourceDocumentID: d.ID,
	}
}
