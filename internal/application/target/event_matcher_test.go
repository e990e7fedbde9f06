package target

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMatcher(t *testing.T) (*EventMatcher, *MockTargetRepository, *MockDocumentRepository) {
	targetRepo := new(MockTargetRepository)
	documentRepo := new(MockDocumentRepository)
	achievement := NewAchievementService(targetRepo, documentRepo, zap.NewNop())
	return NewEventMatcher(targetRepo, documentRepo, achievement, zap.NewNop()), targetRepo, documentRepo
}

func matchableEvent(t *testing.T, tgt *target.Target) target.BusinessEvent {
	window, ok := tgt.Window()
	require.True(t, ok)
	eventDate := window.Start()
	return target.BusinessEvent{
		Actor:            tgt.Actor,
		Metric:           tgt.Metric,
		EventDate:        &eventDate,
		Amount:           decimal.NewFromInt(1500),
		SourceDocumentID: uuid.New(),
	}
}

// ============================================
// Match Tests
// ============================================

func TestEventMatcher_Match(t *testing.T) {
	t.Run("event without actor is ignored", func(t *testing.T) {
		matcher, targetRepo, _ := newTestMatcher(t)
		now := time.Now().UTC()

		err := matcher.Match(context.Background(), target.BusinessEvent{
			Metric:           target.MetricOrderConfirmed,
			EventDate:        &now,
			Amount:           decimal.NewFromInt(100),
			SourceDocumentID: uuid.New(),
		})

		require.NoError(t, err)
		targetRepo.AssertNotCalled(t, "FindOpenTargets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("event without date is ignored", func(t *testing.T) {
		matcher, targetRepo, _ := newTestMatcher(t)

		err := matcher.Match(context.Background(), target.BusinessEvent{
			Actor:            target.NewSalespersonRef(uuid.New()),
			Metric:           target.MetricOrderConfirmed,
			Amount:           decimal.NewFromInt(100),
			SourceDocumentID: uuid.New(),
		})

		require.NoError(t, err)
		targetRepo.AssertNotCalled(t, "FindOpenTargets", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no open target is a no-op", func(t *testing.T) {
		matcher, targetRepo, documentRepo := newTestMatcher(t)
		tgt := openTestTarget(t)
		ev := matchableEvent(t, tgt)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return([]target.Target{}, nil)

		require.NoError(t, matcher.Match(context.Background(), ev))
		documentRepo.AssertNotCalled(t, "SetTargetRef", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("single match recomputes and records back-reference", func(t *testing.T) {
		matcher, targetRepo, documentRepo := newTestMatcher(t)
		tgt := openTestTarget(t)
		ev := matchableEvent(t, tgt)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return([]target.Target{*tgt}, nil)
		documentRepo.On("SumFinalizedAmount", mock.Anything, tgt.Actor, tgt.Metric, mock.Anything).Return(decimal.NewFromInt(1500), nil)
		targetRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*target.Target")).Return(nil)
		documentRepo.On("SetTargetRef", mock.Anything, ev.SourceDocumentID, mock.MatchedBy(func(id *uuid.UUID) bool {
			return id != nil && *id == tgt.ID
		})).Return(nil)

		require.NoError(t, matcher.Match(context.Background(), ev))
		targetRepo.AssertExpectations(t)
		documentRepo.AssertExpectations(t)
	})

	t.Run("multiple matches all refreshed", func(t *testing.T) {
		matcher, targetRepo, documentRepo := newTestMatcher(t)
		first := openTestTarget(t)
		second := openTestTarget(t)
		second.Actor = first.Actor
		ev := matchableEvent(t, first)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return([]target.Target{*first, *second}, nil)
		documentRepo.On("SumFinalizedAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.NewFromInt(700), nil).Twice()
		targetRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*target.Target")).Return(nil).Twice()
		documentRepo.On("SetTargetRef", mock.Anything, ev.SourceDocumentID, mock.Anything).Return(nil)

		require.NoError(t, matcher.Match(context.Background(), ev))
		targetRepo.AssertExpectations(t)
		documentRepo.AssertExpectations(t)
	})

	t.Run("back-reference failure is not fatal", func(t *testing.T) {
		matcher, targetRepo, documentRepo := newTestMatcher(t)
		tgt := openTestTarget(t)
		ev := matchableEvent(t, tgt)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return([]target.Target{*tgt}, nil)
		documentRepo.On("SumFinalizedAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
		targetRepo.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*target.Target")).Return(nil)
		documentRepo.On("SetTargetRef", mock.Anything, ev.SourceDocumentID, mock.Anything).Return(errors.New("row gone"))

		assert.NoError(t, matcher.Match(context.Background(), ev))
	})

	t.Run("recompute failure propagates", func(t *testing.T) {
		matcher, targetRepo, documentRepo := newTestMatcher(t)
		tgt := openTestTarget(t)
		ev := matchableEvent(t, tgt)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return([]target.Target{*tgt}, nil)
		documentRepo.On("SumFinalizedAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(decimal.Zero, errors.New("db down"))

		err := matcher.Match(context.Background(), ev)
		require.Error(t, err)
		documentRepo.AssertNotCalled(t, "SetTargetRef", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		matcher, targetRepo, _ := newTestMatcher(t)
		tgt := openTestTarget(t)
		ev := matchableEvent(t, tgt)

		targetRepo.On("FindOpenTargets", mock.Anything, ev.Actor, ev.Metric, *ev.EventDate).Return(nil, errors.New("db down"))

		assert.Error(t, matcher.Match(context.Background(), ev))
	})
}
