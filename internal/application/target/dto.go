package target

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/target"
	"github.com/shopspring/decimal"
)

// CreateTargetRequest carries the fields for creating a draft target
type CreateTargetRequest struct {
	ActorKind     string
	ActorID       uuid.UUID
	Metric        string
	StartDate     *time.Time
	EndDate       *time.Time
	TargetAmount  *decimal.Decimal
	Currency      string
	ResponsibleID *uuid.UUID
}

// UpdateTargetRequest carries the mutable fields of a target. Nil fields
// are left untouched.
type UpdateTargetRequest struct {
	ActorKind     *string
	ActorID       *uuid.UUID
	Metric        *string
	StartDate     *time.Time
	EndDate       *time.Time
	TargetAmount  *decimal.Decimal
	ResponsibleID *uuid.UUID
}

// TargetListFilter controls target listing
type TargetListFilter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	ActorKind *string
	ActorID   *uuid.UUID
	Metric    *string
	Status    *string
	OnDate    *time.Time
}

// TargetResponse represents a target in service responses
type TargetResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Reference          string          `json:"reference"`
	ActorKind          string          `json:"actor_kind"`
	ActorID            uuid.UUID       `json:"actor_id"`
	Metric             string          `json:"metric"`
	StartDate          *time.Time      `json:"start_date,omitempty"`
	EndDate            *time.Time      `json:"end_date,omitempty"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	AchievementAmount  decimal.Decimal `json:"achievement_amount"`
	DifferenceAmount   decimal.Decimal `json:"difference_amount"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
	Currency           string          `json:"currency"`
	ResponsibleID      *uuid.UUID      `json:"responsible_id,omitempty"`
	Status             string          `json:"status"`
	ConfirmedAt        *time.Time      `json:"confirmed_at,omitempty"`
	ClosedAt           *time.Time      `json:"closed_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AchievementResponse represents the rollup fields of a target
type AchievementResponse struct {
	TargetID           uuid.UUID       `json:"target_id"`
	TargetAmount       decimal.Decimal `json:"target_amount"`
	AchievementAmount  decimal.Decimal `json:"achievement_amount"`
	DifferenceAmount   decimal.Decimal `json:"difference_amount"`
	AchievementPercent decimal.Decimal `json:"achievement_percent"`
}

// PacingResponse represents the theoretical achievement of a target
type PacingResponse struct {
	TargetID           uuid.UUID       `json:"target_id"`
	TheoreticalAmount  decimal.Decimal `json:"theoretical_amount"`
	TheoreticalPercent decimal.Decimal `json:"theoretical_percent"`
	Status             string          `json:"status"`
	TotalDays          int             `json:"total_days"`
	ElapsedDays        int             `json:"elapsed_days"`
}

// ToTargetResponse converts a domain target to a response
func ToTargetResponse(t *target.Target) TargetResponse {
	return TargetResponse{
		ID:                 t.ID,
		Reference:          t.DisplayReference(),
		ActorKind:          t.Actor.Kind.String(),
		ActorID:            t.Actor.ID,
		Metric:             t.Metric.String(),
		StartDate:          t.StartDate,
		EndDate:            t.EndDate,
		TargetAmount:       t.TargetAmount,
		AchievementAmount:  t.AchievementAmount,
		DifferenceAmount:   t.DifferenceAmount,
		AchievementPercent: t.AchievementPercent,
		Currency:           string(t.Currency),
		ResponsibleID:      t.ResponsibleID,
		Status:             t.Status.String(),
		ConfirmedAt:        t.ConfirmedAt,
		ClosedAt:           t.ClosedAt,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ToTargetResponses converts a slice of domain targets to responses
func ToTargetResponses(targets []target.Target) []TargetResponse {
	responses := make([]TargetResponse, len(targets))
	for i := range targets {
		responses[i] = ToTargetResponse(&targets[i])
	}
	return responses
}

// ToAchievementResponse converts a domain target to an achievement response
func ToAchievementResponse(t *target.Target) AchievementResponse {
	return AchievementResponse{
		TargetID:           t.ID,
		TargetAmount:       t.TargetAmount,
		AchievementAmount:  t.AchievementAmount,
		DifferenceAmount:   t.DifferenceAmount,
		AchievementPercent: t.AchievementPercent,
	}
}

// ToPacingResponse converts a pacing computation to a response
func ToPacingResponse(targetID uuid.UUID, p target.Pacing) PacingResponse {
	return PacingResponse{
		TargetID:           targetID,
		TheoreticalAmount:  p.TheoreticalAmount,
		TheoreticalPercent: p.TheoreticalPercent,
		Status:             p.Status.String(),
		TotalDays:          p.TotalDays,
		ElapsedDays:        p.ElapsedDays,
	}
}
