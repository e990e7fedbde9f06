package target

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// AchievementService recomputes a target's achievement rollup from the
// finalized documents inside its window. Recomputation always aggregates
// from scratch, so a stale or missed increment heals on the next pass.
type AchievementService struct {
	targetRepo   target.TargetRepository
	documentRepo document.DocumentRepository
	logger       *zap.Logger
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(targetRepo target.TargetRepository, documentRepo document.DocumentRepository, logger *zap.Logger) *AchievementService {
	return &AchievementService{
		targetRepo:   targetRepo,
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// Recompute aggregates the finalized document amounts inside the target's
// window and stores the refreshed rollup. The target keeps its previous
// rollup when the aggregation query fails.
func (s *AchievementService) Recompute(ctx context.Context, t *target.Target) error {
	window, ok := t.Window()
	if !ok {
		// Drafts without a complete window have nothing to aggregate
		return nil
	}

	total, err := s.documentRepo.SumFinalizedAmount(ctx, t.Actor, t.Metric, window)
	if err != nil {
		s.logger.Error("achievement aggregation failed",
			zap.String("target_id", t.ID.String()),
			zap.Error(err))
		return err
	}

	t.ApplyAchievement(total)

	if err := s.targetRepo.SaveWithLock(ctx, t); err != nil {
		return err
	}

	s.logger.Debug("achievement recomputed",
		zap.String("target_id", t.ID.String()),
		zap.String("achievement", t.AchievementAmount.String()))
	return nil
}

// RecomputeByID loads the target and recomputes its rollup
func (s *AchievementService) RecomputeByID(ctx context.Context, targetID uuid.UUID) error {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	return s.Recompute(ctx, t)
}
