package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TargetStatus represents the lifecycle state of a sales target
type TargetStatus string

const (
	TargetStatusDraft  TargetStatus = "DRAFT"
	TargetStatusOpen   TargetStatus = "OPEN"
	TargetStatusClosed TargetStatus = "CLOSED"
)

// IsValid checks if the status is a valid TargetStatus
func (s TargetStatus) IsValid() bool {
	switch s {
	case TargetStatusDraft, TargetStatusOpen, TargetStatusClosed:
		return true
	}
	return false
}

// String returns the string representation of TargetStatus
func (s TargetStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s TargetStatus) CanTransitionTo(target TargetStatus) bool {
	switch s {
	case TargetStatusDraft:
		return target == TargetStatusOpen
	case TargetStatusOpen:
		return target == TargetStatusClosed || target == TargetStatusDraft
	case TargetStatusClosed:
		return false // Terminal for the lifecycle; closed targets never reopen
	}
	return false
}

// ReferencePlaceholder is the display reference used until the numbering
// collaborator assigns a real one, and the fallback when it is unavailable.
const ReferencePlaceholder = "New"

// Target is a time-boxed sales quota for one actor and one metric.
// It is the aggregate root of the target context. Achievement, difference
// and percentage are derived fields: they are always recomputable from the
// matching business documents and never independently authoritative.
type Target struct {
	shared.BaseAggregateRoot
	Reference          string               `gorm:"type:varchar(50);index"`
	Actor              ActorRef             `gorm:"embedded;embeddedPrefix:actor_"`
	Metric             Metric               `gorm:"type:varchar(30);index"`
	StartDate          *time.Time           `gorm:"type:date"`
	EndDate            *time.Time           `gorm:"type:date"`
	TargetAmount       decimal.Decimal      `gorm:"type:decimal(18,2)"`
	AchievementAmount  decimal.Decimal      `gorm:"type:decimal(18,2)"`
	DifferenceAmount   decimal.Decimal      `gorm:"type:decimal(18,2)"`
	AchievementPercent decimal.Decimal      `gorm:"type:decimal(9,4)"`
	Currency           valueobject.Currency `gorm:"type:varchar(3)"`
	ResponsibleID      *uuid.UUID           `gorm:"type:uuid"`
	Status             TargetStatus         `gorm:"type:varchar(20);index"`
	ConfirmedAt        *time.Time
	ClosedAt           *time.Time
}

// TableName returns the database table name
func (Target) TableName() string {
	return "sales_targets"
}

// NewTarget creates a new sales target in draft state
func NewTarget(actor ActorRef, metric Metric, currency valueobject.Currency) (*Target, error) {
	if actor.IsZero() {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Target actor cannot be empty")
	}
	if !actor.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Unknown actor kind")
	}
	if !metric.IsValid() {
		return nil, shared.NewDomainError("INVALID_METRIC", "Unknown target metric")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}

	t := &Target{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Reference:          ReferencePlaceholder,
		Actor:              actor,
		Metric:             metric,
		TargetAmount:       decimal.Zero,
		AchievementAmount:  decimal.Zero,
		DifferenceAmount:   decimal.Zero,
		AchievementPercent: decimal.Zero,
		Currency:           currency,
		Status:             TargetStatusDraft,
	}

	t.AddDomainEvent(NewTargetCreatedEvent(t))

	return t, nil
}

// DisplayReference returns the assigned reference, or the placeholder
func (t *Target) DisplayReference() string {
	if t.Reference == "" {
		return ReferencePlaceholder
	}
	return t.Reference
}

// Window returns the target's date window. The second return value is false
// while either bound is still unset (draft targets may lack dates).
func (t *Target) Window() (valueobject.DateRange, bool) {
	if t.StartDate == nil || t.EndDate == nil {
		return valueobject.DateRange{}, false
	}
	w, err := valueobject.NewDateRange(*t.StartDate, *t.EndDate)
	if err != nil {
		return valueobject.DateRange{}, false
	}
	return w, true
}

// SetWindow sets the target's date window, validating start <= end.
// The registry re-validates window changes against the overlap rule before
// they are persisted.
func (t *Target) SetWindow(start, end time.Time) error {
	w, err := valueobject.NewDateRange(start, end)
	if err != nil {
		return shared.NewDomainError("INVALID_WINDOW", "Start date must not be after end date")
	}
	s := w.Start()
	e := w.End()
	t.StartDate = &s
	t.EndDate = &e
	t.UpdatedAt = time.Now()
	return nil
}

// SetDates merges new bounds into the window. Draft targets may carry a
// single bound; ordering is validated as soon as both bounds are known.
func (t *Target) SetDates(start, end *time.Time) error {
	newStart := t.StartDate
	newEnd := t.EndDate
	if start != nil {
		s := valueobject.TruncateToDay(*start)
		newStart = &s
	}
	if end != nil {
		e := valueobject.TruncateToDay(*end)
		newEnd = &e
	}
	if newStart != nil && newEnd != nil {
		return t.SetWindow(*newStart, *newEnd)
	}
	t.StartDate = newStart
	t.EndDate = newEnd
	t.UpdatedAt = time.Now()
	return nil
}

// SetTargetAmount sets the quota amount. The positivity constraint is
// enforced unconditionally on any mutation, not only at confirm.
func (t *Target) SetTargetAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	t.TargetAmount = amount
	t.recalculateDerived()
	t.UpdatedAt = time.Now()
	return nil
}

// SetMetric changes the measured metric. The registry re-validates metric
// changes against the overlap rule.
func (t *Target) SetMetric(metric Metric) error {
	if !metric.IsValid() {
		return shared.NewDomainError("INVALID_METRIC", "Unknown target metric")
	}
	t.Metric = metric
	t.UpdatedAt = time.Now()
	return nil
}

// SetActor changes the measured actor. The registry re-validates actor
// changes against the overlap rule.
func (t *Target) SetActor(actor ActorRef) error {
	if actor.IsZero() || !actor.Kind.IsValid() {
		return shared.NewDomainError("INVALID_ACTOR", "Target actor cannot be empty")
	}
	t.Actor = actor
	t.UpdatedAt = time.Now()
	return nil
}

// SetResponsible sets the responsible user reference
func (t *Target) SetResponsible(userID *uuid.UUID) {
	t.ResponsibleID = userID
	t.UpdatedAt = time.Now()
}

// MissingRequiredField returns the name of the first required field that is
// still absent, or "" when the target is complete enough to confirm.
func (t *Target) MissingRequiredField() string {
	if t.StartDate == nil {
		return "start_date"
	}
	if t.EndDate == nil {
		return "end_date"
	}
	if t.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return "target_amount"
	}
	return ""
}

// Confirm transitions the target from DRAFT to OPEN.
// The overlap invariant against other targets of the same actor and metric
// is the registry's responsibility; the reference comes from the numbering
// collaborator (callers pass the placeholder when numbering fails).
func (t *Target) Confirm(reference string) error {
	if !t.Status.CanTransitionTo(TargetStatusOpen) {
		return NewInvalidStateTransitionError(t.Status, TargetStatusOpen)
	}
	if field := t.MissingRequiredField(); field != "" {
		return NewMissingRequiredFieldError(field)
	}

	if reference == "" {
		reference = ReferencePlaceholder
	}

	now := time.Now()
	t.Reference = reference
	t.Status = TargetStatusOpen
	t.ConfirmedAt = &now
	t.UpdatedAt = now

	t.AddDomainEvent(NewTargetConfirmedEvent(t))

	return nil
}

// Close transitions the target from OPEN to CLOSED. Closed targets no
// longer accept event matches.
func (t *Target) Close() error {
	if !t.Status.CanTransitionTo(TargetStatusClosed) {
		return NewInvalidStateTransitionError(t.Status, TargetStatusClosed)
	}

	now := time.Now()
	t.Status = TargetStatusClosed
	t.ClosedAt = &now
	t.UpdatedAt = now

	t.AddDomainEvent(NewTargetClosedEvent(t))

	return nil
}

// ResetToDraft moves an OPEN target back to DRAFT. Never permitted from CLOSED.
func (t *Target) ResetToDraft() error {
	if !t.Status.CanTransitionTo(TargetStatusDraft) {
		return NewInvalidStateTransitionError(t.Status, TargetStatusDraft)
	}

	t.Status = TargetStatusDraft
	t.ConfirmedAt = nil
	t.UpdatedAt = time.Now()

	return nil
}

// ApplyAchievement replaces the derived rollup fields from a freshly
// recomputed achievement total. It never touches the lifecycle state.
func (t *Target) ApplyAchievement(total decimal.Decimal) {
	t.AchievementAmount = total
	t.recalculateDerived()
	t.UpdatedAt = time.Now()
}

// recalculateDerived keeps difference and percentage consistent with the
// current target and achievement amounts
func (t *Target) recalculateDerived() {
	t.DifferenceAmount = t.TargetAmount.Sub(t.AchievementAmount)
	if t.TargetAmount.IsZero() {
		t.AchievementPercent = decimal.Zero
		return
	}
	t.AchievementPercent = t.AchievementAmount.Div(t.TargetAmount).Mul(decimal.NewFromInt(100))
}

// AcceptsEventOn returns true if an event dated on the given day can be
// matched to this target: the target is open and the date falls inside the
// closed window (events dated exactly on a bound match).
func (t *Target) AcceptsEventOn(date time.Time) bool {
	if !t.IsOpen() {
		return false
	}
	w, ok := t.Window()
	if !ok {
		return false
	}
	return w.Contains(date)
}

// TargetAmountMoney returns the quota as a Money value object
func (t *Target) TargetAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(t.TargetAmount, t.Currency)
	return m
}

// AchievementAmountMoney returns the achievement as a Money value object
func (t *Target) AchievementAmountMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(t.AchievementAmount, t.Currency)
	return m
}

// IsDraft returns true if the target is in draft status
func (t *Target) IsDraft() bool {
	return t.Status == TargetStatusDraft
}

// IsOpen returns true if the target is open
func (t *Target) IsOpen() bool {
	return t.Status == TargetStatusOpen
}

// IsClosed returns true if the target is closed
func (t *Target) IsClosed() bool {
	return t.Status == TargetStatusClosed
}

// CanModify returns true if quota-defining fields may change without an
// overlap re-validation (draft targets only)
func (t *Target) CanModify() bool {
	return t.IsDraft()
}
