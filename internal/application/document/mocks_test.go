package document

import (
	"context"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockDocumentRepository is a mock implementation of document.DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.SalesDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*document.SalesDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]document.SalesDocument, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.SalesDocument), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) SumFinalizedAmount(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) (decimal.Decimal, error) {
	args := m.Called(ctx, actor, metric, window)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDocumentRepository) FindFinalized(ctx context.Context, actor target.ActorRef, metric target.Metric, window valueobject.DateRange) ([]document.SalesDocument, error) {
	args := m.Called(ctx, actor, metric, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.SalesDocument), args.Error(1)
}

func (m *MockDocumentRepository) FindByTarget(ctx context.Context, targetID uuid.UUID) ([]document.SalesDocument, error) {
	args := m.Called(ctx, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]document.SalesDocument), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, d *document.SalesDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) SaveWithLock(ctx context.Context, d *document.SalesDocument) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDocumentRepository) SetTargetRef(ctx context.Context, documentID uuid.UUID, targetID *uuid.UUID) error {
	args := m.Called(ctx, documentID, targetID)
	return args.Error(0)
}

func (m *MockDocumentRepository) ClearTargetRefs(ctx context.Context, targetID uuid.UUID) error {
	args := m.Called(ctx, targetID)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	callArgs := make([]interface{}, 0, len(events)+1)
	callArgs = append(callArgs, ctx)
	for _, event := range events {
		callArgs = append(callArgs, event)
	}
	args := m.Called(callArgs...)
	return args.Error(0)
}
