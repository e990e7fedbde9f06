package target

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
)

// Domain error codes surfaced by the target context
const (
	ErrCodeOverlappingTarget      = "OVERLAPPING_TARGET"
	ErrCodeInvalidAmount          = "INVALID_AMOUNT"
	ErrCodeMissingRequiredField   = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidStateTransition = "INVALID_STATE_TRANSITION"
)

// ErrInvalidAmount is raised whenever a non-positive target amount is supplied
var ErrInvalidAmount = shared.NewDomainError(ErrCodeInvalidAmount, "Target amount must be greater than 0")

// OverlappingTargetError is raised when a target's window intersects another
// target of the same actor and metric. It carries the conflicting target's
// identifier and metric for display.
type OverlappingTargetError struct {
	shared.DomainError
	ConflictingTargetID uuid.UUID `json:"conflicting_target_id"`
	Metric              Metric    `json:"metric"`
}

// NewOverlappingTargetError creates an OverlappingTargetError for the given conflict
func NewOverlappingTargetError(conflicting *Target) *OverlappingTargetError {
	return &OverlappingTargetError{
		DomainError: shared.DomainError{
			Code: ErrCodeOverlappingTarget,
			Message: fmt.Sprintf("Same %s cannot have two targets in the same duration for %s (conflicts with %s)",
				actorNoun(conflicting.Actor.Kind), conflicting.Metric.Label(), conflicting.DisplayReference()),
		},
		ConflictingTargetID: conflicting.ID,
		Metric:              conflicting.Metric,
	}
}

func actorNoun(kind ActorKind) string {
	if kind == ActorKindTeam {
		return "sales team"
	}
	return "salesperson"
}

// NewMissingRequiredFieldError is raised on confirm when a required field is absent
func NewMissingRequiredFieldError(field string) *shared.DomainError {
	return shared.NewDomainError(ErrCodeMissingRequiredField,
		fmt.Sprintf("Field %q is required before the target can be confirmed", field))
}

// NewInvalidStateTransitionError is raised on an illegal lifecycle transition
func NewInvalidStateTransitionError(from, to TargetStatus) *shared.DomainError {
	return shared.NewDomainError(ErrCodeInvalidStateTransition,
		fmt.Sprintf("Cannot move target from %s to %s", from, to))
}
