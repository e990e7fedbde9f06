package target

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
)

// TargetRepository defines the interface for sales target persistence
type TargetRepository interface {
	// FindByID finds a target by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Target, error)

	// FindAll finds targets with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Target, error)

	// Count counts targets matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindOpenTargets finds OPEN targets of the given actor and metric whose
	// closed window contains onDate, ordered by start date. Under the overlap
	// invariant the result has at most one element.
	FindOpenTargets(ctx context.Context, actor ActorRef, metric Metric, onDate time.Time) ([]Target, error)

	// FindCandidates finds all targets sharing the given actor and metric
	// that carry a complete window, excluding excludeID. Used by the overlap
	// validation on confirm and on window/actor/metric changes.
	FindCandidates(ctx context.Context, actor ActorRef, metric Metric, excludeID uuid.UUID) ([]Target, error)

	// Save creates or updates a target
	Save(ctx context.Context, t *Target) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, t *Target) error

	// SaveConfirmed persists a freshly confirmed target, re-checking the
	// overlap invariant against committed rows inside the same transaction
	// as the state write. Two concurrent confirms for overlapping windows
	// therefore cannot both commit; the loser gets an OverlappingTargetError.
	SaveConfirmed(ctx context.Context, t *Target) error

	// Delete deletes a target
	Delete(ctx context.Context, id uuid.UUID) error

	// NextReference asks the numbering collaborator for the next display
	// reference for the given actor kind (e.g. TGT-2026-00001)
	NextReference(ctx context.Context, kind ActorKind) (string, error)
}
