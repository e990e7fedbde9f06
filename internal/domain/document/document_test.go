package document

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestOrder(t *testing.T) *SalesDocument {
	docDate := date(2026, 2, 15)
	doc, err := NewSalesDocument(KindOrder, "SO-2026-00001", target.NewSalespersonRef(uuid.New()), &docDate, decimal.NewFromInt(1500), valueobject.USD)
	require.NoError(t, err)
	return doc
}

func createTestInvoice(t *testing.T) *SalesDocument {
	docDate := date(2026, 2, 20)
	doc, err := NewSalesDocument(KindInvoice, "INV-2026-00001", target.NewSalespersonRef(uuid.New()), &docDate, decimal.NewFromInt(800), valueobject.USD)
	require.NoError(t, err)
	return doc
}

// ============================================
// Creation Tests
// ============================================

func TestNewSalesDocument(t *testing.T) {
	t.Run("valid order", func(t *testing.T) {
		doc := createTestOrder(t)
		assert.Equal(t, StatusDraft, doc.Status)
		assert.Equal(t, KindOrder, doc.Kind)
		assert.Nil(t, doc.TargetID)
	})

	t.Run("actor and date may be absent", func(t *testing.T) {
		doc, err := NewSalesDocument(KindInvoice, "INV-X", target.ActorRef{}, nil, decimal.NewFromInt(10), valueobject.USD)
		require.NoError(t, err)
		assert.True(t, doc.Actor.IsZero())
		assert.Nil(t, doc.DocDate)
	})

	t.Run("invalid kind", func(t *testing.T) {
		_, err := NewSalesDocument(DocumentKind("RECEIPT"), "X", target.ActorRef{}, nil, decimal.Zero, valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("empty number", func(t *testing.T) {
		_, err := NewSalesDocument(KindOrder, "", target.ActorRef{}, nil, decimal.Zero, valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("negative amount", func(t *testing.T) {
		_, err := NewSalesDocument(KindOrder, "SO-X", target.ActorRef{}, nil, decimal.NewFromInt(-5), valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("doc date truncated to day", func(t *testing.T) {
		docDate := time.Date(2026, 2, 15, 13, 37, 0, 0, time.UTC)
		doc, err := NewSalesDocument(KindOrder, "SO-Y", target.ActorRef{}, &docDate, decimal.NewFromInt(10), valueobject.USD)
		require.NoError(t, err)
		assert.Equal(t, date(2026, 2, 15), *doc.DocDate)
	})
}

// ============================================
// Lifecycle Tests
// ============================================

func TestSalesDocument_Confirm(t *testing.T) {
	t.Run("order confirms", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Confirm())
		assert.Equal(t, StatusConfirmed, doc.Status)
		assert.NotNil(t, doc.ConfirmedAt)

		events := doc.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderConfirmed, events[0].EventType())
	})

	t.Run("invoice cannot confirm", func(t *testing.T) {
		doc := createTestInvoice(t)
		assert.Error(t, doc.Confirm())
	})

	t.Run("confirmed order cannot reconfirm", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Confirm())
		assert.Error(t, doc.Confirm())
	})
}

func TestSalesDocument_Post(t *testing.T) {
	t.Run("invoice posts", func(t *testing.T) {
		doc := createTestInvoice(t)
		require.NoError(t, doc.Post())
		assert.Equal(t, StatusPosted, doc.Status)
		assert.NotNil(t, doc.PostedAt)

		events := doc.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeInvoiceValidated, events[0].EventType())
	})

	t.Run("order cannot post", func(t *testing.T) {
		doc := createTestOrder(t)
		assert.Error(t, doc.Post())
	})
}

func TestSalesDocument_MarkPaid(t *testing.T) {
	t.Run("posted invoice pays", func(t *testing.T) {
		doc := createTestInvoice(t)
		require.NoError(t, doc.Post())
		require.NoError(t, doc.MarkPaid())
		assert.Equal(t, StatusPaid, doc.Status)
		assert.NotNil(t, doc.PaidAt)

		events := doc.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeInvoicePaid, events[1].EventType())
	})

	t.Run("draft invoice cannot pay", func(t *testing.T) {
		doc := createTestInvoice(t)
		assert.Error(t, doc.MarkPaid())
	})

	t.Run("order cannot pay", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Confirm())
		assert.Error(t, doc.MarkPaid())
	})
}

func TestSalesDocument_Cancel(t *testing.T) {
	t.Run("draft cancel is not finalized", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Cancel())
		assert.Equal(t, StatusCancelled, doc.Status)

		events := doc.GetDomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(*DocumentCancelledEvent)
		require.True(t, ok)
		assert.False(t, cancelled.WasFinalized)
	})

	t.Run("confirmed cancel is finalized", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Confirm())
		require.NoError(t, doc.Cancel())

		events := doc.GetDomainEvents()
		require.Len(t, events, 2)
		cancelled, ok := events[1].(*DocumentCancelledEvent)
		require.True(t, ok)
		assert.True(t, cancelled.WasFinalized)
	})

	t.Run("cancel carries matched target", func(t *testing.T) {
		doc := createTestInvoice(t)
		require.NoError(t, doc.Post())
		targetID := uuid.New()
		doc.SetTargetRef(&targetID)

		require.NoError(t, doc.Cancel())
		events := doc.GetDomainEvents()
		cancelled, ok := events[len(events)-1].(*DocumentCancelledEvent)
		require.True(t, ok)
		require.NotNil(t, cancelled.TargetID)
		assert.Equal(t, targetID, *cancelled.TargetID)
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Cancel())
		assert.Error(t, doc.Cancel())
	})
}

// ============================================
// Draft Mutation Tests
// ============================================

func TestSalesDocument_DraftMutations(t *testing.T) {
	t.Run("draft accepts changes", func(t *testing.T) {
		doc := createTestOrder(t)
		newActor := target.NewTeamRef(uuid.New())
		newDate := date(2026, 3, 1)

		require.NoError(t, doc.SetActor(newActor))
		require.NoError(t, doc.SetDocDate(&newDate))
		require.NoError(t, doc.SetAmount(decimal.NewFromInt(2000)))

		assert.True(t, doc.Actor.Equals(newActor))
		assert.Equal(t, newDate, *doc.DocDate)
		assert.True(t, doc.Amount.Equal(decimal.NewFromInt(2000)))
	})

	t.Run("confirmed rejects changes", func(t *testing.T) {
		doc := createTestOrder(t)
		require.NoError(t, doc.Confirm())

		assert.Error(t, doc.SetActor(target.NewTeamRef(uuid.New())))
		assert.Error(t, doc.SetDocDate(nil))
		assert.Error(t, doc.SetAmount(decimal.NewFromInt(1)))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		doc := createTestOrder(t)
		assert.Error(t, doc.SetAmount(decimal.NewFromInt(-1)))
	})
}

// ============================================
// Metric Mapping Tests
// ============================================

func TestStatusesForMetric(t *testing.T) {
	tests := []struct {
		metric   target.Metric
		kind     DocumentKind
		statuses []DocumentStatus
	}{
		{target.MetricOrderConfirmed, KindOrder, []DocumentStatus{StatusConfirmed}},
		{target.MetricInvoiceValidated, KindInvoice, []DocumentStatus{StatusPosted, StatusPaid}},
		{target.MetricInvoicePaid, KindInvoice, []DocumentStatus{StatusPaid}},
	}

	for _, tt := range tests {
		t.Run(tt.metric.String(), func(t *testing.T) {
			kind, statuses := StatusesForMetric(tt.metric)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.statuses, statuses)
		})
	}

	t.Run("unknown metric", func(t *testing.T) {
		kind, statuses := StatusesForMetric(target.Metric("BOGUS"))
		assert.Empty(t, kind)
		assert.Nil(t, statuses)
	})
}

func TestSalesDocument_BusinessEventFor(t *testing.T) {
	doc := createTestInvoice(t)

	ev := doc.BusinessEventFor(target.MetricInvoiceValidated)
	assert.Equal(t, doc.Actor, ev.Actor)
	assert.Equal(t, target.MetricInvoiceValidated, ev.Metric)
	assert.Equal(t, doc.DocDate, ev.EventDate)
	assert.True(t, ev.Amount.Equal(doc.Amount))
	assert.Equal(t, doc.ID, ev.SourceDocumentID)
	assert.True(t, ev.IsMatchable())
}

func TestBusinessEvent_IsMatchable(t *testing.T) {
	docDate := date(2026, 2, 1)
	base := target.BusinessEvent{
		Actor:            target.NewSalespersonRef(uuid.New()),
		Metric:           target.MetricOrderConfirmed,
		EventDate:        &docDate,
		Amount:           decimal.NewFromInt(100),
		SourceDocumentID: uuid.New(),
	}
	assert.True(t, base.IsMatchable())

	noActor := base
	noActor.Actor = target.ActorRef{}
	assert.False(t, noActor.IsMatchable())

	noDate := base
	noDate.EventDate = nil
	assert.False(t, noDate.IsMatchable())

	badMetric := base
	badMetric.Metric = target.Metric("BOGUS")
	assert.False(t, badMetric.IsMatchable())
}
