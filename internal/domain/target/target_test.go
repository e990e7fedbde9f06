package target

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createTestTarget(t *testing.T) *Target {
	tgt, err := NewTarget(NewSalespersonRef(uuid.New()), MetricOrderConfirmed, valueobject.USD)
	require.NoError(t, err)
	return tgt
}

func createConfirmableTarget(t *testing.T) *Target {
	tgt := createTestTarget(t)
	require.NoError(t, tgt.SetWindow(date(2026, 1, 1), date(2026, 3, 31)))
	require.NoError(t, tgt.SetTargetAmount(decimal.NewFromInt(90000)))
	return tgt
}

// ============================================
// TargetStatus Tests
// ============================================

func TestTargetStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  TargetStatus
		isValid bool
	}{
		{TargetStatusDraft, true},
		{TargetStatusOpen, true},
		{TargetStatusClosed, true},
		{TargetStatus("INVALID"), false},
		{TargetStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestTargetStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     TargetStatus
		to       TargetStatus
		canTrans bool
	}{
		// From DRAFT
		{TargetStatusDraft, TargetStatusOpen, true},
		{TargetStatusDraft, TargetStatusClosed, false},
		{TargetStatusDraft, TargetStatusDraft, false},
		// From OPEN
		{TargetStatusOpen, TargetStatusClosed, true},
		{TargetStatusOpen, TargetStatusDraft, true},
		{TargetStatusOpen, TargetStatusOpen, false},
		// From CLOSED (terminal)
		{TargetStatusClosed, TargetStatusDraft, false},
		{TargetStatusClosed, TargetStatusOpen, false},
		{TargetStatusClosed, TargetStatusClosed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// Target Creation Tests
// ============================================

func TestNewTarget(t *testing.T) {
	t.Run("valid target", func(t *testing.T) {
		actorID := uuid.New()
		tgt, err := NewTarget(NewSalespersonRef(actorID), MetricOrderConfirmed, valueobject.USD)

		require.NoError(t, err)
		assert.Equal(t, TargetStatusDraft, tgt.Status)
		assert.Equal(t, ReferencePlaceholder, tgt.Reference)
		assert.Equal(t, ActorKindSalesperson, tgt.Actor.Kind)
		assert.Equal(t, actorID, tgt.Actor.ID)
		assert.True(t, tgt.TargetAmount.IsZero())
		assert.True(t, tgt.AchievementAmount.IsZero())
		assert.Nil(t, tgt.StartDate)
		assert.Nil(t, tgt.EndDate)
		assert.Equal(t, 1, tgt.GetVersion())
	})

	t.Run("emits created event", func(t *testing.T) {
		tgt := createTestTarget(t)
		events := tgt.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeTargetCreated, events[0].EventType())
	})

	t.Run("empty actor", func(t *testing.T) {
		_, err := NewTarget(ActorRef{}, MetricOrderConfirmed, valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("invalid metric", func(t *testing.T) {
		_, err := NewTarget(NewTeamRef(uuid.New()), Metric("BOGUS"), valueobject.USD)
		assert.Error(t, err)
	})

	t.Run("empty currency falls back to default", func(t *testing.T) {
		tgt, err := NewTarget(NewTeamRef(uuid.New()), MetricInvoicePaid, "")
		require.NoError(t, err)
		assert.Equal(t, valueobject.DefaultCurrency, tgt.Currency)
	})
}

// ============================================
// Field Mutation Tests
// ============================================

func TestTarget_SetDates(t *testing.T) {
	t.Run("single bound allowed in draft", func(t *testing.T) {
		tgt := createTestTarget(t)
		start := date(2026, 1, 1)

		require.NoError(t, tgt.SetDates(&start, nil))
		require.NotNil(t, tgt.StartDate)
		assert.Equal(t, start, *tgt.StartDate)
		assert.Nil(t, tgt.EndDate)

		_, ok := tgt.Window()
		assert.False(t, ok)
	})

	t.Run("second bound completes the window", func(t *testing.T) {
		tgt := createTestTarget(t)
		start := date(2026, 1, 1)
		end := date(2026, 3, 31)

		require.NoError(t, tgt.SetDates(&start, nil))
		require.NoError(t, tgt.SetDates(nil, &end))

		w, ok := tgt.Window()
		require.True(t, ok)
		assert.Equal(t, start, w.Start())
		assert.Equal(t, end, w.End())
	})

	t.Run("rejects inverted bounds", func(t *testing.T) {
		tgt := createTestTarget(t)
		start := date(2026, 3, 31)
		end := date(2026, 1, 1)

		err := tgt.SetDates(&start, &end)
		assert.Error(t, err)
	})

	t.Run("truncates time of day", func(t *testing.T) {
		tgt := createTestTarget(t)
		start := time.Date(2026, 1, 1, 15, 4, 5, 0, time.UTC)

		require.NoError(t, tgt.SetDates(&start, nil))
		assert.Equal(t, date(2026, 1, 1), *tgt.StartDate)
	})
}

func TestTarget_SetTargetAmount(t *testing.T) {
	tgt := createTestTarget(t)

	t.Run("positive amount", func(t *testing.T) {
		require.NoError(t, tgt.SetTargetAmount(decimal.NewFromInt(50000)))
		assert.True(t, tgt.TargetAmount.Equal(decimal.NewFromInt(50000)))
		assert.True(t, tgt.DifferenceAmount.Equal(decimal.NewFromInt(50000)))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		err := tgt.SetTargetAmount(decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		err := tgt.SetTargetAmount(decimal.NewFromInt(-10))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

// ============================================
// Lifecycle Tests
// ============================================

func TestTarget_Confirm(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tgt := createConfirmableTarget(t)

		require.NoError(t, tgt.Confirm("TGT-2026-00001"))
		assert.Equal(t, TargetStatusOpen, tgt.Status)
		assert.Equal(t, "TGT-2026-00001", tgt.Reference)
		assert.NotNil(t, tgt.ConfirmedAt)

		events := tgt.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeTargetConfirmed, events[1].EventType())
	})

	t.Run("empty reference keeps placeholder", func(t *testing.T) {
		tgt := createConfirmableTarget(t)

		require.NoError(t, tgt.Confirm(""))
		assert.Equal(t, TargetStatusOpen, tgt.Status)
		assert.Equal(t, ReferencePlaceholder, tgt.Reference)
	})

	t.Run("missing start date", func(t *testing.T) {
		tgt := createTestTarget(t)
		end := date(2026, 3, 31)
		require.NoError(t, tgt.SetDates(nil, &end))
		require.NoError(t, tgt.SetTargetAmount(decimal.NewFromInt(1000)))

		err := tgt.Confirm("TGT-2026-00002")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "start_date")
		assert.Equal(t, TargetStatusDraft, tgt.Status)
	})

	t.Run("missing amount", func(t *testing.T) {
		tgt := createTestTarget(t)
		require.NoError(t, tgt.SetWindow(date(2026, 1, 1), date(2026, 3, 31)))

		err := tgt.Confirm("TGT-2026-00003")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "target_amount")
	})

	t.Run("already open", func(t *testing.T) {
		tgt := createConfirmableTarget(t)
		require.NoError(t, tgt.Confirm("TGT-2026-00004"))

		err := tgt.Confirm("TGT-2026-00005")
		assert.Error(t, err)
	})
}

func TestTarget_Close(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tgt := createConfirmableTarget(t)
		require.NoError(t, tgt.Confirm("TGT-2026-00010"))

		require.NoError(t, tgt.Close())
		assert.Equal(t, TargetStatusClosed, tgt.Status)
		assert.NotNil(t, tgt.ClosedAt)
	})

	t.Run("cannot close a draft", func(t *testing.T) {
		tgt := createConfirmableTarget(t)
		assert.Error(t, tgt.Close())
	})

	t.Run("closed is terminal", func(t *testing.T) {
		tgt := createConfirmableTarget(t)
		require.NoError(t, tgt.Confirm("TGT-2026-00011"))
		require.NoError(t, tgt.Close())

		assert.Error(t, tgt.Confirm("TGT-2026-00012"))
		assert.Error(t, tgt.ResetToDraft())
		assert.Error(t, tgt.Close())
	})
}

func TestTarget_ResetToDraft(t *testing.T) {
	t.Run("open back to draft", func(t *testing.T) {
		tgt := createConfirmableTarget(t)
		require.NoError(t, tgt.Confirm("TGT-2026-00020"))

		require.NoError(t, tgt.ResetToDraft())
		assert.Equal(t, TargetStatusDraft, tgt.Status)
		assert.Nil(t, tgt.ConfirmedAt)
		// Reference survives the reset and is reused on re-confirm
		assert.Equal(t, "TGT-2026-00020", tgt.Reference)
	})

	t.Run("cannot reset a draft", func(t *testing.T) {
		tgt := createTestTarget(t)
		assert.Error(t, tgt.ResetToDraft())
	})
}

// ============================================
// Achievement Rollup Tests
// ============================================

func TestTarget_ApplyAchievement(t *testing.T) {
	tgt := createConfirmableTarget(t)

	tgt.ApplyAchievement(decimal.NewFromInt(22500))

	assert.True(t, tgt.AchievementAmount.Equal(decimal.NewFromInt(22500)))
	assert.True(t, tgt.DifferenceAmount.Equal(decimal.NewFromInt(67500)))
	assert.True(t, tgt.AchievementPercent.Equal(decimal.NewFromInt(25)))
}

func TestTarget_ApplyAchievement_ZeroTargetAmount(t *testing.T) {
	tgt := createTestTarget(t)

	tgt.ApplyAchievement(decimal.NewFromInt(500))

	assert.True(t, tgt.AchievementAmount.Equal(decimal.NewFromInt(500)))
	assert.True(t, tgt.DifferenceAmount.Equal(decimal.NewFromInt(-500)))
	// Percentage stays zero instead of dividing by zero
	assert.True(t, tgt.AchievementPercent.IsZero())
}

func TestTarget_ApplyAchievement_Overachievement(t *testing.T) {
	tgt := createConfirmableTarget(t)

	tgt.ApplyAchievement(decimal.NewFromInt(108000))

	assert.True(t, tgt.DifferenceAmount.Equal(decimal.NewFromInt(-18000)))
	assert.True(t, tgt.AchievementPercent.Equal(decimal.NewFromInt(120)))
}

func TestTarget_MoneyAccessors(t *testing.T) {
	tgt := createConfirmableTarget(t)
	tgt.ApplyAchievement(decimal.NewFromInt(22500))

	quota := tgt.TargetAmountMoney()
	achieved := tgt.AchievementAmountMoney()

	assert.Equal(t, valueobject.USD, quota.Currency())
	assert.Equal(t, "90000 USD", quota.String())
	assert.Equal(t, valueobject.USD, achieved.Currency())
	assert.Equal(t, "22500 USD", achieved.String())

	remaining, err := quota.Subtract(achieved)
	require.NoError(t, err)
	assert.True(t, remaining.Amount().Equal(tgt.DifferenceAmount))
}

// ============================================
// Matching Predicate Tests
// ============================================

func TestTarget_AcceptsEventOn(t *testing.T) {
	tgt := createConfirmableTarget(t)

	t.Run("draft never accepts", func(t *testing.T) {
		assert.False(t, tgt.AcceptsEventOn(date(2026, 2, 1)))
	})

	require.NoError(t, tgt.Confirm("TGT-2026-00030"))

	tests := []struct {
		name     string
		day      time.Time
		expected bool
	}{
		{"inside window", date(2026, 2, 1), true},
		{"on start bound", date(2026, 1, 1), true},
		{"on end bound", date(2026, 3, 31), true},
		{"before window", date(2025, 12, 31), false},
		{"after window", date(2026, 4, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tgt.AcceptsEventOn(tt.day))
		})
	}

	t.Run("closed never accepts", func(t *testing.T) {
		require.NoError(t, tgt.Close())
		assert.False(t, tgt.AcceptsEventOn(date(2026, 2, 1)))
	})
}

func TestTarget_DisplayReference(t *testing.T) {
	tgt := createTestTarget(t)
	assert.Equal(t, ReferencePlaceholder, tgt.DisplayReference())

	tgt.Reference = ""
	assert.Equal(t, ReferencePlaceholder, tgt.DisplayReference())

	tgt.Reference = "TGT-2026-00001"
	assert.Equal(t, "TGT-2026-00001", tgt.DisplayReference())
}

func TestTarget_MissingRequiredField(t *testing.T) {
	tgt := createTestTarget(t)
	assert.Equal(t, "start_date", tgt.MissingRequiredField())

	start := date(2026, 1, 1)
	require.NoError(t, tgt.SetDates(&start, nil))
	assert.Equal(t, "end_date", tgt.MissingRequiredField())

	end := date(2026, 3, 31)
	require.NoError(t, tgt.SetDates(nil, &end))
	assert.Equal(t, "target_amount", tgt.MissingRequiredField())

	require.NoError(t, tgt.SetTargetAmount(decimal.NewFromInt(1)))
	assert.Equal(t, "", tgt.MissingRequiredField())
}
