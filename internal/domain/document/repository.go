package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
)

// DocumentRepository defines the interface for sales document persistence.
// SumFinalizedAmount is the achievement aggregation query: the full
// recomputation strategy derives every rollup from it.
type DocumentRepository interface {
	// FindByID finds a document by ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesDocument, error)

	// FindAll finds documents with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesDocument, error)

	// Count counts documents matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// SumFinalizedAmount sums the amounts of documents of the given actor
	// that are finalized for the metric and dated inside the closed window
	SumFinalizedAmount(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) (decimal.Decimal, error)

	// FindFinalized lists the documents SumFinalizedAmount would count
	FindFinalized(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) ([]SalesDocument, error)

	// FindByTarget lists documents carrying a back-reference to the target
	FindByTarget(ctx context.Context, targetID uuid.UUID) ([]SalesDocument, error)

	// Save creates or updates a document
	Save(ctx context.Context, d *SalesDocument) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, d *SalesDocument) error

	// SetTargetRef updates only the target back-reference of a document
	SetTargetRef(ctx context.Context, documentID uuid.UUID, targetID *uuid.UUID) error

	// ClearTargetRefs removes the back-reference from all documents pointing
	// at the target (used when a target is reset to draft)
	ClearTargetRefs(ctx context.Context, targetID uuid.UUID) error

	// Delete deletes a document
	Delete(ctx context.Context, id uuid.UUID) error
}
