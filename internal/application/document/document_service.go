package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"go.uber.org/zap"
)

// DocumentService handles sales document business operations. Lifecycle
// transitions publish domain events after the document is saved; the
// target context reacts to them asynchronously.
type DocumentService struct {
	documentRepo   document.DocumentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(documentRepo document.DocumentRepository, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *DocumentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new draft document
func (s *DocumentService) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	kind := document.DocumentKind(req.Kind)

	var actor target.ActorRef
	if req.ActorID != nil {
		actorKind, err := target.ParseActorKind(req.ActorKind)
		if err != nil {
			return nil, err
		}
		actor = target.ActorRef{Kind: actorKind, ID: *req.ActorID}
	}

	doc, err := document.NewSalesDocument(kind, req.Number, actor, req.DocDate, req.Amount, valueobject.Currency(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.documentRepo.Save(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	response := ToDocumentResponse(doc)
	return &response, nil
}

// List retrieves documents with filtering and pagination
func (s *DocumentService) List(ctx context.Context, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
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

	if filter.Kind != nil {
		domainFilter.Filters["kind"] = *filter.Kind
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.ActorID != nil {
		domainFilter.Filters["actor_id"] = *filter.ActorID
	}
	if filter.TargetID != nil {
		domainFilter.Filters["target_id"] = *filter.TargetID
	}

	docs, err := s.documentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.documentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(docs), total, nil
}

// Update updates a draft document
func (s *DocumentService) Update(ctx context.Context, documentID uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if req.ActorKind != nil || req.ActorID != nil {
		actor := doc.Actor
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
		if err := doc.SetActor(actor); err != nil {
			return nil, err
		}
	}

	if req.DocDate != nil {
		if err := doc.SetDocDate(req.DocDate); err != nil {
			return nil, err
		}
	}

	if req.Amount != nil {
		if err := doc.SetAmount(*req.Amount); err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(doc)
	return &response, nil
}

// Confirm confirms a sales order, entering it into the aggregation base
// for the order confirmation metric
func (s *DocumentService) Confirm(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.transition(ctx, documentID, (*document.SalesDocument).Confirm)
}

// Post validates an invoice
func (s *DocumentService) Post(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.transition(ctx, documentID, (*document.SalesDocument).Post)
}

// MarkPaid registers full payment of a posted invoice
func (s *DocumentService) MarkPaid(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.transition(ctx, documentID, (*document.SalesDocument).MarkPaid)
}

// Cancel cancels a document. The cancelled event carries enough context
// for the target side to drop the amount from any matched rollup.
func (s *DocumentService) Cancel(ctx context.Context, documentID uuid.UUID) (*DocumentResponse, error) {
	return s.transition(ctx, documentID, (*document.SalesDocument).Cancel)
}

// Delete deletes a document (only allowed in DRAFT status)
func (s *DocumentService) Delete(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return err
	}

	if doc.Status != document.StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Only draft documents can be deleted")
	}

	return s.documentRepo.Delete(ctx, documentID)
}

// transition applies a lifecycle transition, saves with optimistic locking
// and publishes the raised events
func (s *DocumentService) transition(ctx context.Context, documentID uuid.UUID, apply func(*document.SalesDocument) error) (*DocumentResponse, error) {
	doc, err := s.documentRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := apply(doc); err != nil {
		return nil, err
	}

	if err := s.documentRepo.SaveWithLock(ctx, doc); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, doc)

	response := ToDocumentResponse(doc)
	return &response, nil
}

func (s *DocumentService) publishEvents(ctx context.Context, doc *document.SalesDocument) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range doc.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	doc.ClearDomainEvents()
}
