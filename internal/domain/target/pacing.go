package target

import (
	"time"

	"github.com/salesquota/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PacingStatus answers "are we on track?" for the linear pacing projection
type PacingStatus string

const (
	PacingAboveTarget PacingStatus = "ABOVE_TARGET"
	PacingBelowTarget PacingStatus = "BELOW_TARGET"
	PacingCompleted   PacingStatus = "COMPLETED"
)

// String returns the string representation of PacingStatus
func (s PacingStatus) String() string {
	return string(s)
}

// Pacing holds the theoretical (linear pro-rata) achievement for a target
// as of a reference day. It is a pure read-path computation and is never
// stored.
type Pacing struct {
	TheoreticalAmount  decimal.Decimal `json:"theoretical_amount"`
	TheoreticalPercent decimal.Decimal `json:"theoretical_percent"`
	Status             PacingStatus    `json:"status"`
	TotalDays          int             `json:"total_days"`
	ElapsedDays        int             `json:"elapsed_days"`
}

// ComputePacing derives the linear pacing of a target as of the given day.
// Outside the window (before the start or after the end) the window is a
// closed pacing window: status Completed, zero theoretical figures.
// Inside, the theoretical amount grows linearly with elapsed days, counting
// the start day itself, so start == end == today yields the full target
// amount. Ties collapse into above: achievement >= theoretical reports
// Above_Target, which also covers the all-zero case of a zero-amount target.
func ComputePacing(t *Target, today time.Time) (Pacing, error) {
	w, ok := t.Window()
	if !ok {
		return Pacing{}, shared.NewDomainError("MISSING_WINDOW", "Target has no date window to pace against")
	}

	if !w.Contains(today) {
		return Pacing{
			TheoreticalAmount:  decimal.Zero,
			TheoreticalPercent: decimal.Zero,
			Status:             PacingCompleted,
			TotalDays:          w.Days(),
			ElapsedDays:        w.ElapsedDays(today),
		}, nil
	}

	totalDays := w.Days()
	elapsedDays := w.ElapsedDays(today)

	quota := t.TargetAmountMoney()
	theoretical, err := quota.
		Multiply(decimal.NewFromInt(int64(elapsedDays))).
		Divide(decimal.NewFromInt(int64(totalDays)))
	if err != nil {
		return Pacing{}, err
	}

	percent := decimal.Zero
	if !quota.IsZero() {
		percent = theoretical.Amount().Div(quota.Amount()).Mul(decimal.NewFromInt(100))
	}

	status := PacingBelowTarget
	ahead, err := t.AchievementAmountMoney().GreaterThanOrEqual(theoretical)
	if err != nil {
		return Pacing{}, err
	}
	if ahead {
		status = PacingAboveTarget
	}

	return Pacing{
		TheoreticalAmount:  theoretical.Amount(),
		TheoreticalPercent: percent,
		Status:             status,
		TotalDays:          totalDays,
		ElapsedDays:        elapsedDays,
	}, nil
}
