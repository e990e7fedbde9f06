package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document by its ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.SalesDocument, error) {
	var doc document.SalesDocument
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds documents with filtering and pagination
func (r *GormDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.SalesDocument, error) {
	var docs []document.SalesDocument
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.SalesDocument{}), filter)
	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&document.SalesDocument{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumFinalizedAmount sums the amounts of the actor's documents that count
// toward the metric inside the window. This is the aggregation the
// achievement rollup is rebuilt from.
func (r *GormDocumentRepository) SumFinalizedAmount(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) (decimal.Decimal, error) {
	kind, statuses := document.StatusesForMetric(metric)
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}

	var result struct {
		Total decimal.Decimal
	}
	if err := r.finalizedQuery(ctx, actor, kind, statuses, window).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// FindFinalized returns the actor's documents counting toward the metric
// inside the window
func (r *GormDocumentRepository) FindFinalized(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) ([]document.SalesDocument, error) {
	kind, statuses := document.StatusesForMetric(metric)
	if len(statuses) == 0 {
		return nil, nil
	}

	var docs []document.SalesDocument
	if err := r.finalizedQuery(ctx, actor, kind, statuses, window).
		Order("doc_date ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *GormDocumentRepository) finalizedQuery(ctx context.Context, actor target.ActorRef, kind document.DocumentKind, statuses []document.DocumentStatus, window valueobject.DateRange) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&document.SalesDocument{}).
		Where("kind = ?", kind).
		Where("status IN ?", statuses).
		Where("actor_kind = ? AND actor_id = ?", actor.Kind, actor.ID).
		Where("doc_date >= ? AND doc_date <= ?", window.Start(), window.End())
}

// FindByTarget finds documents whose back-reference points at the target
func (r *GormDocumentRepository) FindByTarget(ctx context.Context, targetID uuid.UUID) ([]document.SalesDocument, error) {
	var docs []document.SalesDocument
	if err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Order("doc_date ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Save creates or updates a document
func (r *GormDocumentRepository) Save(ctx context.Context, d *document.SalesDocument) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormDocumentRepository) SaveWithLock(ctx context.Context, d *document.SalesDocument) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Scan does not report ErrRecordNotFound, so a missing row shows
		// up as zero affected rows
		var currentVersion int
		read := tx.Model(&document.SalesDocument{}).
			Where("id = ?", d.ID).
			Select("version").
			Scan(&currentVersion)
		if read.Error != nil {
			return read.Error
		}
		if read.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if currentVersion != d.Version {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The document has been modified by another user")
		}

		d.Version++
		d.UpdatedAt = time.Now()

		result := tx.Model(&document.SalesDocument{}).
			Where("id = ? AND version = ?", d.ID, currentVersion).
			Updates(map[string]interface{}{
				"number":       d.Number,
				"kind":         d.Kind,
				"actor_kind":   d.Actor.Kind,
				"actor_id":     d.Actor.ID,
				"doc_date":     d.DocDate,
				"amount":       d.Amount,
				"currency":     d.Currency,
				"status":       d.Status,
				"target_id":    d.TargetID,
				"confirmed_at": d.ConfirmedAt,
				"posted_at":    d.PostedAt,
				"paid_at":      d.PaidAt,
				"cancelled_at": d.CancelledAt,
				"version":      d.Version,
				"updated_at":   d.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.NewDomainError("CONCURRENT_MODIFICATION", "The document has been modified by another user")
		}
		return nil
	})
}

// SetTargetRef updates the informational back-reference of a document.
// Deliberately version-free: the reference is traceability metadata and
// must not conflict with concurrent lifecycle saves.
func (r *GormDocumentRepository) SetTargetRef(ctx context.Context, documentID uuid.UUID, targetID *uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&document.SalesDocument{}).
		Where("id = ?", documentID).
		Update("target_id", targetID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearTargetRefs removes the back-reference from all documents pointing
// at the target
func (r *GormDocumentRepository) ClearTargetRefs(ctx context.Context, targetID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&document.SalesDocument{}).
		Where("target_id = ?", targetID).
		Update("target_id", nil).Error
}

// Delete deletes a document
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&document.SalesDocument{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormDocumentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDocumentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("number LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind":
			query = query.Where("kind = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "target_id":
			query = query.Where("target_id = ?", value)
		}
	}

	return query
}

// Ensure GormDocumentRepository implements DocumentRepository
var _ document.DocumentRepository = (*GormDocumentRepository)(nil)
