package target

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockTargetRepository is a mock implementation of target.TargetRepository
type MockTargetRepository struct {
	mock.Mock
}

func (m *MockTargetRepository) FindByID(ctx context.Context, id uuid.UUID) (*target.Target, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindAll(ctx context.Context, filter shared.Filter) ([]target.Target, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTargetRepository) FindOpenTargets(ctx context.Context, actor target.ActorRef, metric target.Metric, onDate time.Time) ([]target.Target, error) {
	args := m.Called(ctx, actor, metric, onDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) FindCandidates(ctx context.Context, actor target.ActorRef, metric target.Metric, excludeID uuid.UUID) ([]target.Target, error) {
	args := m.Called(ctx, actor, metric, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]target.Target), args.Error(1)
}

func (m *MockTargetRepository) Save(ctx context.Context, t *target.Target) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTargetRepository) SaveWithLock(ctx context.Context, t *target.Target) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTargetRepository) SaveConfirmed(ctx context.Context, t *target.Target) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTargetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTargetRepository) NextReference(ctx context.Context, kind target.ActorKind) (string, error) {
	args := m.Called(ctx, kind)
	return args.String(0), args.Error(1)
}

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

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendTargetStatus(ctx context.Context, t *target.Target) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}
