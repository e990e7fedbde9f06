package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/target"
	"gorm.io/gorm"
)

// GormTargetRepository implements TargetRepository using GORM
type GormTargetRepository struct {
	db *gorm.DB
}

// NewGormTargetRepository creates a new GormTargetRepository
func NewGormTargetRepository(db *gorm.DB) *GormTargetRepository {
	return &GormTargetRepository{db: db}
}

// FindByID finds a target by its ID
func (r *GormTargetRepository) FindByID(ctx context.Context, id uuid.UUID) (*target.Target, error) {
	var t target.Target
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll finds targets with filtering and pagination
func (r *GormTargetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]target.Target, error) {
	var targets []target.Target
	query := r.applyFilter(r.db.WithContext(ctx).Model(&target.Target{}), filter)
	if err := query.Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// Count counts targets matching the filter
func (r *GormTargetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&target.Target{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOpenTargets finds OPEN targets of the actor and metric whose window
// contains onDate
func (r *GormTargetRepository) FindOpenTargets(ctx context.Context, actor target.ActorRef, metric target.Metric, onDate time.Time) ([]target.Target, error) {
	var targets []target.Target
	if err := r.db.WithContext(ctx).
		Where("status = ?", target.TargetStatusOpen).
		Where("actor_kind = ? AND actor_id = ?", actor.Kind, actor.ID).
		Where("metric = ?", metric).
		Where("start_date <= ? AND end_date >= ?", onDate, onDate).
		Order("start_date ASC").
		Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// FindCandidates finds targets of the actor and metric with a complete
// window, excluding excludeID
func (r *GormTargetRepository) FindCandidates(ctx context.Context, actor target.ActorRef, metric target.Metric, excludeID uuid.UUID) ([]target.Target, error) {
	var targets []target.Target
	if err := r.db.WithContext(ctx).
		Where("actor_kind = ? AND actor_id = ?", actor.Kind, actor.ID).
		Where("metric = ?", metric).
		Where("start_date IS NOT NULL AND end_date IS NOT NULL").
		Where("id <> ?", excludeID).
		Find(&targets).Error; err != nil {
		return nil, err
	}
	return targets, nil
}

// Save creates or updates a target
func (r *GormTargetRepository) Save(ctx context.Context, t *target.Target) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormTargetRepository) SaveWithLock(ctx context.Context, t *target.Target) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.updateWithVersionCheck(tx, t)
	})
}

// SaveConfirmed persists a freshly confirmed target, re-checking the
// overlap invariant against committed rows inside the same transaction as
// the state write
func (r *GormTargetRepository) SaveConfirmed(ctx context.Context, t *target.Target) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []target.Target
		if err := tx.
			Where("actor_kind = ? AND actor_id = ?", t.Actor.Kind, t.Actor.ID).
			Where("metric = ?", t.Metric).
			Where("start_date IS NOT NULL AND end_date IS NOT NULL").
			Where("id <> ?", t.ID).
			Find(&existing).Error; err != nil {
			return err
		}
		if conflict := target.FindConflict(t, existing); conflict != nil {
			return target.NewOverlappingTargetError(conflict)
		}

		return r.updateWithVersionCheck(tx, t)
	})
}

// updateWithVersionCheck performs an explicit version compare-and-swap update
func (r *GormTargetRepository) updateWithVersionCheck(tx *gorm.DB, t *target.Target) error {
	// Scan does not report ErrRecordNotFound, so a missing row shows up
	// as zero affected rows
	var currentVersion int
	read := tx.Model(&target.Target{}).
		Where("id = ?", t.ID).
		Select("version").
		Scan(&currentVersion)
	if read.Error != nil {
		return read.Error
	}
	if read.RowsAffected == 0 {
		return shared.ErrNotFound
	}

	if currentVersion != t.Version {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The target has been modified by another user")
	}

	t.Version++
	t.UpdatedAt = time.Now()

	result := tx.Model(&target.Target{}).
		Where("id = ? AND version = ?", t.ID, currentVersion).
		Updates(map[string]interface{}{
			"reference":           t.Reference,
			"actor_kind":          t.Actor.Kind,
			"actor_id":            t.Actor.ID,
			"metric":              t.Metric,
			"start_date":          t.StartDate,
			"end_date":            t.EndDate,
			"target_amount":       t.TargetAmount,
			"achievement_amount":  t.AchievementAmount,
			"difference_amount":   t.DifferenceAmount,
			"achievement_percent": t.AchievementPercent,
			"currency":            t.Currency,
			"responsible_id":      t.ResponsibleID,
			"status":              t.Status,
			"confirmed_at":        t.ConfirmedAt,
			"closed_at":           t.ClosedAt,
			"version":             t.Version,
			"updated_at":          t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("CONCURRENT_MODIFICATION", "The target has been modified by another user")
	}
	return nil
}

// Delete deletes a target
func (r *GormTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&target.Target{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextReference generates the next display reference for the actor kind.
// Format: TGT-YYYY-NNNNN for salesperson targets, TTG-YYYY-NNNNN for team
// targets (e.g. TGT-2026-00001).
func (r *GormTargetRepository) NextReference(ctx context.Context, kind target.ActorKind) (string, error) {
	seq := "TGT"
	if kind == target.ActorKindTeam {
		seq = "TTG"
	}
	prefix := fmt.Sprintf("%s-%d-", seq, time.Now().Year())

	var last target.Target
	err := r.db.WithContext(ctx).
		Model(&target.Target{}).
		Where("reference LIKE ?", prefix+"%").
		Order("reference DESC").
		First(&last).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.Reference != "" {
		parts := strings.Split(last.Reference, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	reference := fmt.Sprintf("%s%05d", prefix, nextNum)

	exists, err := r.referenceExists(ctx, reference)
	if err != nil {
		return "", err
	}
	for i := 0; exists && i < 100; i++ {
		nextNum++
		reference = fmt.Sprintf("%s%05d", prefix, nextNum)
		exists, err = r.referenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
	}

	return reference, nil
}

func (r *GormTargetRepository) referenceExists(ctx context.Context, reference string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&target.Target{}).
		Where("reference = ?", reference).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormTargetRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
func (r *GormTargetRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("reference LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "actor_kind":
			query = query.Where("actor_kind = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		case "metric":
			query = query.Where("metric = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "on_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("start_date <= ? AND end_date >= ?", t, t)
			}
		case "responsible_id":
			query = query.Where("responsible_id = ?", value)
		}
	}

	return query
}

// Ensure GormTargetRepository implements TargetRepository
var _ target.TargetRepository = (*GormTargetRepository)(nil)
