package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/salesquota/backend/internal/domain/document"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest carries the fields for creating a draft document
type CreateDocumentRequest struct {
	Kind      string
	Number    string
	ActorKind string
	ActorID   *uuid.UUID
	DocDate   *time.Time
	Amount    decimal.Decimal
	Currency  string
}

// UpdateDocumentRequest carries the mutable fields of a draft document
type UpdateDocumentRequest struct {
	ActorKind *string
	ActorID   *uuid.UUID
	DocDate   *time.Time
	Amount    *decimal.Decimal
}

// DocumentListFilter controls document listing
type DocumentListFilter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Kind     *string
	Status   *string
	ActorID  *uuid.UUID
	TargetID *uuid.UUID
}

// DocumentResponse represents a sales document in service responses
type DocumentResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Kind        string          `json:"kind"`
	ActorKind   string          `json:"actor_kind,omitempty"`
	ActorID     *uuid.UUID      `json:"actor_id,omitempty"`
	DocDate     *time.Time      `json:"doc_date,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	TargetID    *uuid.UUID      `json:"target_id,omitempty"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
	PostedAt    *time.Time      `json:"posted_at,omitempty"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToDocumentResponse converts a domain document to a response
func ToDocumentResponse(d *document.SalesDocument) DocumentResponse {
	resp := DocumentResponse{
		ID:          d.ID,
		Number:      d.Number,
		Kind:        string(d.Kind),
		Amount:      d.Amount,
		Currency:    string(d.Currency),
		Status:      string(d.Status),
		DocDate:     d.DocDate,
		TargetID:    d.TargetID,
		ConfirmedAt: d.ConfirmedAt,
		PostedAt:    d.PostedAt,
		PaidAt:      d.PaidAt,
		CancelledAt: d.CancelledAt,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if !d.Actor.IsZero() {
		resp.ActorKind = d.Actor.Kind.String()
		actorID := d.Actor.ID
		resp.ActorID = &actorID
	}
	return resp
}

// ToDocumentResponses converts a slice of domain documents to responses
func ToDocumentResponses(docs []document.SalesDocument) []DocumentResponse {
	responses := make([]DocumentResponse, len(docs))
	for i := range docs {
		responses[i] = ToDocumentResponse(&docs[i])
	}
	return responses
}
