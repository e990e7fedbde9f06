package target

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// TargetService handles sales target business operations
type TargetService struct {
	targetRepo     target.TargetRepository
	documentRepo   document.DocumentRepository
	achievement    *AchievementService
	eventPublisher shared.EventPublisher
	notifier       Notifier
	defaultCCY     valueobject.Currency
	logger         *zap.Logger
}

// NewTargetService creates a new TargetService
func NewTargetService(targetRepo target.TargetRepository, documentRepo document.DocumentRepository, achievement *AchievementService, logger *zap.Logger) *TargetService {
	return &TargetService{
		targetRepo:   targetRepo,
		documentRepo: documentRepo,
		achievement:  achievement,
		defaultCCY:   valueobject.DefaultCurrency,
		logger:       logger,
	}
}

// SetDefaultCurrency sets the currency assigned to targets created
// without an explicit one
func (s *TargetService) SetDefaultCurrency(currency valueobject.Currency) {
	if currency != "" {
		s.defaultCCY = currency
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *TargetService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetNotifier sets the notifier used for status notifications
func (s *TargetService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// Create creates a new draft target
func (s *TargetService) Create(ctx context.Context, req CreateTargetRequest) (*TargetResponse, error) {
	kind, err := target.ParseActorKind(req.ActorKind)
	if err != nil {
		return nil, err
	}
	metric, err := target.ParseMetric(req.Metric)
	if err != nil {
		return nil, err
	}

	currency := s.defaultCCY
	if req.Currency != "" {
		currency = valueobject.Currency(req.Currency)
	}

	t, err := target.NewTarget(target.ActorRef{Kind: kind, ID: req.ActorID}, metric, currency)
	if err != nil {
		return nil, err
	}

	if req.StartDate != nil || req.EndDate != nil {
		if err := t.SetDates(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}
	if req.TargetAmount != nil {
		if err := t.SetTargetAmount(*req.TargetAmount); err != nil {
			return nil, err
		}
	}
	t.SetResponsible(req.ResponsibleID)

	// Reject already-overlapping drafts early; confirm re-checks inside
	// the transaction anyway
	if err := s.checkOverlap(ctx, t); err != nil {
		return nil, err
	}

	if err := s.targetRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, t)

	response := ToTargetResponse(t)
	return &response, nil
}

// GetByID retrieves a target by ID. Open targets are refreshed from the
// document base before returning so the rollup is never stale.
func (s *TargetService) GetByID(ctx context.Context, targetID uuid.UUID) (*TargetResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if t.IsOpen() {
		if err := s.achievement.Recompute(ctx, t); err != nil {
			return nil, err
		}
	}

	response := ToTargetResponse(t)
	return &response, nil
}

// List retrieves targets with filtering and pagination
func (s *TargetService) List(ctx context.Context, filter TargetListFilter) ([]TargetResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}

	if filter.ActorKind != nil {
		domainFilter.Filters["actor_kind"] = *filter.ActorKind
	}
	if filter.ActorID != nil {
		domainFilter.Filters["actor_id"] = *filter.ActorID
	}
	if filter.Metric != nil {
		domainFilter.Filters["metric"] = *filter.Metric
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.OnDate != nil {
		domainFilter.Filters["on_date"] = *filter.OnDate
	}

	targets, err := s.targetRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.targetRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToTargetResponses(targets), total, nil
}

// Update updates a target (only allowed in DRAFT status)
func (s *TargetService) Update(ctx context.Context, targetID uuid.UUID, req UpdateTargetRequest) (*TargetResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if !t.CanModify() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only draft targets can be modified")
	}

	if req.ActorKind != nil || req.ActorID != nil {
		actor := t.Actor
		if req.ActorKind != nil {
			kind, err := target.ParseActorKind(*req.ActorKind)
			if err != nil {
				return nil, err
			}
			actor.Kind = kind
		}
		if req.ActorID != nil {
			actor.ID = *req.ActorID
		}
		if err := t.SetActor(actor); err != nil {
			return nil, err
		}
	}

	if req.Metric != nil {
		metric, err := target.ParseMetric(*req.Metric)
		if err != nil {
			return nil, err
		}
		if err := t.SetMetric(metric); err != nil {
			return nil, err
		}
	}

	if req.StartDate != nil || req.EndDate != nil {
		if err := t.SetDates(req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}

	if req.TargetAmount != nil {
		if err := t.SetTargetAmount(*req.TargetAmount); err != nil {
			return nil, err
		}
	}

	if req.ResponsibleID != nil {
		t.SetResponsible(req.ResponsibleID)
	}

	if err := s.checkOverlap(ctx, t); err != nil {
		return nil, err
	}

	if err := s.targetRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	response := ToTargetResponse(t)
	return &response, nil
}

// Confirm moves a draft target to OPEN. The display reference is assigned
// on first confirmation; the overlap invariant is enforced against
// committed targets inside the save transaction.
func (s *TargetService) Confirm(ctx context.Context, targetID uuid.UUID) (*TargetResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	reference := t.Reference
	if reference == "" || reference == target.ReferencePlaceholder {
		reference, err = s.targetRepo.NextReference(ctx, t.Actor.Kind)
		if err != nil {
			// Keep the placeholder rather than blocking the confirmation
			s.logger.Warn("reference sequence unavailable, keeping placeholder",
				zap.String("target_id", t.ID.String()),
				zap.Error(err))
			reference = target.ReferencePlaceholder
		}
	}

	if err := t.Confirm(reference); err != nil {
		return nil, err
	}

	if err := s.targetRepo.SaveConfirmed(ctx, t); err != nil {
		return nil, err
	}

	// Seed the rollup from documents already inside the window
	if err := s.achievement.Recompute(ctx, t); err != nil {
		s.logger.Warn("initial achievement recompute failed",
			zap.String("target_id", t.ID.String()),
			zap.Error(err))
	}

	s.publishEvents(ctx, t)
	s.notify(ctx, t)

	response := ToTargetResponse(t)
	return &response, nil
}

// Close moves an open target to CLOSED, freezing its rollup at the final
// recomputed value
func (s *TargetService) Close(ctx context.Context, targetID uuid.UUID) (*TargetResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if t.IsOpen() {
		if err := s.achievement.Recompute(ctx, t); err != nil {
			return nil, err
		}
	}

	if err := t.Close(); err != nil {
		return nil, err
	}

	if err := s.targetRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, t)
	s.notify(ctx, t)

	response := ToTargetResponse(t)
	return &response, nil
}

// ResetToDraft moves an open target back to DRAFT. Documents pointing at
// it lose their back-reference; they rematch when they next fire.
func (s *TargetService) ResetToDraft(ctx context.Context, targetID uuid.UUID) (*TargetResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := t.ResetToDraft(); err != nil {
		return nil, err
	}

	if err := s.targetRepo.SaveWithLock(ctx, t); err != nil {
		return nil, err
	}

	if err := s.documentRepo.ClearTargetRefs(ctx, t.ID); err != nil {
		s.logger.Warn("failed to clear document back-references",
			zap.String("target_id", t.ID.String()),
			zap.Error(err))
	}

	response := ToTargetResponse(t)
	return &response, nil
}

// Delete deletes a target (only allowed in DRAFT status)
func (s *TargetService) Delete(ctx context.Context, targetID uuid.UUID) error {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !t.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Only draft targets can be deleted")
	}

	return s.targetRepo.Delete(ctx, targetID)
}

// GetAchievement returns the target's rollup, refreshed first when the
// target is still open
func (s *TargetService) GetAchievement(ctx context.Context, targetID uuid.UUID) (*AchievementResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if t.IsOpen() {
		if err := s.achievement.Recompute(ctx, t); err != nil {
			return nil, err
		}
	}

	response := ToAchievementResponse(t)
	return &response, nil
}

// GetPacing computes the target's theoretical achievement as of today
func (s *TargetService) GetPacing(ctx context.Context, targetID uuid.UUID) (*PacingResponse, error) {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if t.IsOpen() {
		if err := s.achievement.Recompute(ctx, t); err != nil {
			return nil, err
		}
	}

	pacing, err := target.ComputePacing(t, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	response := ToPacingResponse(t.ID, pacing)
	return &response, nil
}

// ListDocuments returns the documents whose back-reference points at the
// target
func (s *TargetService) ListDocuments(ctx context.Context, targetID uuid.UUID) ([]document.SalesDocument, error) {
	if _, err := s.targetRepo.FindByID(ctx, targetID); err != nil {
		return nil, err
	}
	return s.documentRepo.FindByTarget(ctx, targetID)
}

// SendNotification sends a status notification for the target on demand
func (s *TargetService) SendNotification(ctx context.Context, targetID uuid.UUID) error {
	t, err := s.targetRepo.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if s.notifier == nil {
		return shared.NewDomainError("NOTIFIER_UNAVAILABLE", "No notifier is configured")
	}
	return s.notifier.SendTargetStatus(ctx, t)
}

// checkOverlap rejects the target when its actor, metric and window
// collide with another target's. Targets without a complete window cannot
// overlap anything yet.
func (s *TargetService) checkOverlap(ctx context.Context, t *target.Target) error {
	if _, ok := t.Window(); !ok {
		return nil
	}

	candidates, err := s.targetRepo.FindCandidates(ctx, t.Actor, t.Metric, t.ID)
	if err != nil {
		return err
	}
	if conflict := target.FindConflict(t, candidates); conflict != nil {
		return target.NewOverlappingTargetError(conflict)
	}
	return nil
}

func (s *TargetService) publishEvents(ctx context.Context, t *target.Target) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range t.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	t.ClearDomainEvents()
}

// notify delivers a status notification without failing the operation
func (s *TargetService) notify(ctx context.Context, t *target.Target) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendTargetStatus(ctx, t); err != nil {
		s.logger.Warn("target notification failed",
			zap.String("target_id", t.ID.String()),
			zap.Error(err))
	}
}
