package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BusinessEvent is the uniform input shape of the event matcher. Each
// document-kind adapter constructs one explicitly whenever a document
// reaches a metric-relevant status, instead of the matcher probing
// document-specific date or user fields.
type BusinessEvent struct {
	Actor            ActorRef
	Metric           Metric
	EventDate        *time.Time
	Amount           decimal.Decimal
	SourceDocumentID uuid.UUID
}

// IsMatchable reports whether the event carries enough information to be
// matched. Documents frequently lack an assigned actor or date when they
// fire; such events are silently ignored, not rejected.
func (e BusinessEvent) IsMatchable() bool {
	return !e.Actor.IsZero() && e.EventDate != nil && e.Metric.IsValid()
}
