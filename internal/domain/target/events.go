package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeTarget = "SalesTarget"

// Event type constants
const (
	EventTypeTargetCreated   = "SalesTargetCreated"
	EventTypeTargetConfirmed = "SalesTargetConfirmed"
	EventTypeTargetClosed    = "SalesTargetClosed"
)

// TargetCreatedEvent is raised when a new target is created in draft
type TargetCreatedEvent struct {
	shared.BaseDomainEvent
	TargetID uuid.UUID `json:"target_id"`
	Actor    ActorRef  `json:"actor"`
	Metric   Metric    `json:"metric"`
}

// NewTargetCreatedEvent creates a new TargetCreatedEvent
func NewTargetCreatedEvent(t *Target) *TargetCreatedEvent {
	return &TargetCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTargetCreated, AggregateTypeTarget, t.ID),
		TargetID:        t.ID,
		Actor:           t.Actor,
		Metric:          t.Metric,
	}
}

// EventType returns the event type name
func (e *TargetCreatedEvent) EventType() string {
	return EventTypeTargetCreated
}

// TargetConfirmedEvent is raised when a target transitions from draft to open
type TargetConfirmedEvent struct {
	shared.BaseDomainEvent
	TargetID     uuid.UUID       `json:"target_id"`
	Reference    string          `json:"reference"`
	Actor        ActorRef        `json:"actor"`
	Metric       Metric          `json:"metric"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	TargetAmount decimal.Decimal `json:"target_amount"`
}

// NewTargetConfirmedEvent creates a new TargetConfirmedEvent
func NewTargetConfirmedEvent(t *Target) *TargetConfirmedEvent {
	var start, end time.Time
	if t.StartDate != nil {
		start = *t.StartDate
	}
	if t.EndDate != nil {
		end = *t.EndDate
	}
	return &TargetConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTargetConfirmed, AggregateTypeTarget, t.ID),
		TargetID:        t.ID,
		Reference:       t.Reference,
		Actor:           t.Actor,
		Metric:          t.Metric,
		StartDate:       start,
		EndDate:         end,
		TargetAmount:    t.TargetAmount,
	}
}

// EventType returns the event type name
func (e *TargetConfirmedEvent) EventType() string {
	return EventTypeTargetConfirmed
}

// TargetClosedEvent is raised when a target is closed, carrying the final rollups
type TargetClosedEvent struct {
	shared.BaseDomainEvent
	TargetID           uuid.UUID       `json:"target_id"`
	Reference          string          `json:"reference"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	AchievementAmount  decimal.Decimal `json:"achievement_amount"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
}

// NewTargetClosedEvent creates a new TargetClosedEvent
func NewTargetClosedEvent(t *Target) *TargetClosedEvent {
	return &TargetClosedEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeTargetClosed, AggregateTypeTarget, t.ID),
		TargetID:           t.ID,
		Reference:          t.Reference,
		TargetAmount:       t.TargetAmount,
		AchievementAmount:  t.AchievementAmount,
		AchievementPercent: t.AchievementPercent,
	}
}

// EventType returns the event type name
func (e *TargetClosedEvent) EventType() string {
	return EventTypeTargetClosed
}
