package target

import (
	"context"

	"github.com/salesquota/backend/internal/domain/target"
)

// Notifier delivers status notifications for a target to its responsible
// user. Delivery is best effort; failures are logged by the caller and
// never fail the triggering operation.
type Notifier interface {
	SendTargetStatus(ctx context.Context, t *target.Target) error
}
