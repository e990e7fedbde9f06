package target

import (
	"context"

	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// EventMatcher routes business events from documents to the open targets
// they count toward. Events missing an actor or date are ignored without
// error; documents fire long before they are fully filled in.
type EventMatcher struct {
	targetRepo   target.TargetRepository
	documentRepo document.DocumentRepository
	achievement  *AchievementService
	logger       *zap.Logger
}

// NewEventMatcher creates a new EventMatcher
func NewEventMatcher(targetRepo target.TargetRepository, documentRepo document.DocumentRepository, achievement *AchievementService, logger *zap.Logger) *EventMatcher {
	return &EventMatcher{
		targetRepo:   targetRepo,
		documentRepo: documentRepo,
		achievement:  achievement,
		logger:       logger,
	}
}

// Match finds the open targets whose actor, metric and window cover the
// event and recomputes their rollups. Under the overlap invariant at most
// one target matches; when legacy data yields several, all of them are
// refreshed rather than guessing a winner.
func (m *EventMatcher) Match(ctx context.Context, ev target.BusinessEvent) error {
	if !ev.IsMatchable() {
		m.logger.Debug("skipping unmatchable business event",
			zap.String("document_id", ev.SourceDocumentID.String()),
			zap.String("metric", ev.Metric.String()))
		return nil
	}

	matches, err := m.targetRepo.FindOpenTargets(ctx, ev.Actor, ev.Metric, *ev.EventDate)
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return nil
	}
	if len(matches) > 1 {
		m.logger.Warn("business event matched multiple open targets",
			zap.String("document_id", ev.SourceDocumentID.String()),
			zap.Int("matches", len(matches)))
	}

	for i := range matches {
		if err := m.achievement.Recompute(ctx, &matches[i]); err != nil {
			return err
		}
	}

	// The back-reference on the document is informational; it records the
	// first match and plays no part in aggregation.
	if err := m.documentRepo.SetTargetRef(ctx, ev.SourceDocumentID, &matches[0].ID); err != nil {
		m.logger.Warn("failed to record target back-reference",
			zap.String("document_id", ev.SourceDocumentID.String()),
			zap.Error(err))
	}

	return nil
}
