package notification

import (
	"context"

	targetapp "github.com/salesquota/backend/internal/application/target"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// LogNotifier implements the target Notifier by writing structured log
// entries. It stands in for a mail or chat gateway; delivery is fire and
// forget either way.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a new LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notifier")}
}

// SendTargetStatus emits a status notification for the target
func (n *LogNotifier) SendTargetStatus(ctx context.Context, t *target.Target) error {
	fields := []zap.Field{
		zap.String("target_id", t.ID.String()),
		zap.String("reference", t.DisplayReference()),
		zap.String("actor_kind", t.Actor.Kind.String()),
		zap.String("actor_id", t.Actor.ID.String()),
		zap.String("metric", t.Metric.Label()),
		zap.String("status", t.Status.String()),
		zap.String("target_amount", t.TargetAmountMoney().String()),
		zap.String("achievement_amount", t.AchievementAmountMoney().String()),
		zap.String("achievement_percent", t.AchievementPercent.String()),
	}
	if remaining, err := t.TargetAmountMoney().Subtract(t.AchievementAmountMoney()); err == nil {
		fields = append(fields, zap.String("remaining_amount", remaining.String()))
	}
	if t.ResponsibleID != nil {
		fields = append(fields, zap.String("responsible_id", t.ResponsibleID.String()))
	}

	n.logger.Info("target status notification", fields...)
	return nil
}

// Ensure LogNotifier implements targetapp.Notifier
var _ targetapp.Notifier = (*LogNotifier)(nil)
