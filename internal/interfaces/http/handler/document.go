package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	docapp "github.com/salesquota/backend/internal/application/document"
)

// DocumentHandler handles sales document API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *docapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *docapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// CreateDocumentRequest represents a request to create a new sales document
// @Description Request body for creating a new sales document
type CreateDocumentRequest struct {
	Kind      string  `json:"kind" binding:"required,oneof=ORDER INVOICE" example:"ORDER"`
	Number    string  `json:"number" binding:"required,min=1,max=64" example:"SO-2026-00042"`
	ActorKind string  `json:"actor_kind" binding:"omitempty,oneof=SALESPERSON TEAM" example:"SALESPERSON"`
	ActorID   *string `json:"actor_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	DocDate   *string `json:"doc_date" example:"2026-02-15"`
	Amount    float64 `json:"amount" binding:"gte=0" example:"1999.90"`
	Currency  string  `json:"currency" binding:"omitempty,len=3" example:"USD"`
}

// UpdateDocumentRequest represents a request to update a sales document
// @Description Request body for updating a sales document (draft only)
type UpdateDocumentRequest struct {
	ActorKind *string  `json:"actor_kind" binding:"omitempty,oneof=SALESPERSON TEAM" example:"SALESPERSON"`
	ActorID   *string  `json:"actor_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	DocDate   *string  `json:"doc_date" example:"2026-02-20"`
	Amount    *float64 `json:"amount" binding:"omitempty,gte=0" example:"2499.00"`
}

// ListDocumentsQuery represents the query parameters for listing documents
type ListDocumentsQuery struct {
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string  `form:"search"`
	Kind     *string `form:"kind" binding:"omitempty,oneof=ORDER INVOICE"`
	Status   *string `form:"status" binding:"omitempty,oneof=DRAFT CONFIRMED POSTED PAID CANCELLED"`
	ActorID  *string `form:"actor_id" binding:"omitempty,uuid"`
	TargetID *string `form:"target_id" binding:"omitempty,uuid"`
}

// Create godoc
// @Summary      Create a sales document
// @Description  Create a new sales document in DRAFT status
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        request body CreateDocumentRequest true "Document creation request"
// @Success      201 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := docapp.CreateDocumentRequest{
		Kind:      req.Kind,
		Number:    req.Number,
		ActorKind: req.ActorKind,
		Amount:    decimal.NewFromFloat(req.Amount),
		Currency:  req.Currency,
	}

	if req.ActorID != nil && *req.ActorID != "" {
		actorID, err := uuid.Parse(*req.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return
		}
		appReq.ActorID = &actorID
	}

	docDate, ok := parseDate(req.DocDate)
	if !ok {
		h.BadRequest(c, "Invalid document date format, expected YYYY-MM-DD")
		return
	}
	appReq.DocDate = docDate

	created, err := h.documentService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get sales document by ID
// @Description  Retrieve a sales document by its ID
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	resp, err := h.documentService.GetByID(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List sales documents
// @Description  Retrieve a paginated list of sales documents with optional filtering
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (document number)"
// @Param        kind query string false "Document kind" Enums(ORDER, INVOICE)
// @Param        status query string false "Document status" Enums(DRAFT, CONFIRMED, POSTED, PAID, CANCELLED)
// @Param        actor_id query string false "Actor ID" format(uuid)
// @Param        target_id query string false "Matched target ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]docapp.DocumentResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	var query ListDocumentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := docapp.DocumentListFilter{
		Page:     query.Page,
		PageSize: query.PageSize,
		OrderBy:  query.OrderBy,
		OrderDir: query.OrderDir,
		Search:   query.Search,
		Kind:     query.Kind,
		Status:   query.Status,
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	if query.ActorID != nil && *query.ActorID != "" {
		actorID, err := uuid.Parse(*query.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return
		}
		filter.ActorID = &actorID
	}

	if query.TargetID != nil && *query.TargetID != "" {
		targetID, err := uuid.Parse(*query.TargetID)
		if err != nil {
			h.BadRequest(c, "Invalid target ID format")
			return
		}
		filter.TargetID = &targetID
	}

	docs, total, err := h.documentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, docs, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a sales document
// @Description  Update a sales document (only allowed in DRAFT status)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Param        request body UpdateDocumentRequest true "Document update request"
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := docapp.UpdateDocumentRequest{
		ActorKind: req.ActorKind,
	}

	if req.ActorID != nil {
		actorID, err := uuid.Parse(*req.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return
		}
		appReq.ActorID = &actorID
	}

	docDate, ok := parseDate(req.DocDate)
	if !ok {
		h.BadRequest(c, "Invalid document date format, expected YYYY-MM-DD")
		return
	}
	appReq.DocDate = docDate

	if req.Amount != nil {
		amount := decimal.NewFromFloat(*req.Amount)
		appReq.Amount = &amount
	}

	updated, err := h.documentService.Update(c.Request.Context(), documentID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete a sales document
// @Description  Delete a sales document (only allowed in DRAFT status)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Confirm godoc
// @Summary      Confirm a sales document
// @Description  Transition an order document from DRAFT to CONFIRMED, feeding target matching
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id}/confirm [post]
func (h *DocumentHandler) Confirm(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	confirmed, err := h.documentService.Confirm(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, confirmed)
}

// Post godoc
// @Summary      Post a sales document
// @Description  Transition an invoice document from DRAFT to POSTED, feeding target matching
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id}/post [post]
func (h *DocumentHandler) Post(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	posted, err := h.documentService.Post(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, posted)
}

// MarkPaid godoc
// @Summary      Mark a sales document as paid
// @Description  Transition an invoice document from POSTED to PAID, feeding target matching
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id}/pay [post]
func (h *DocumentHandler) MarkPaid(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	paid, err := h.documentService.MarkPaid(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, paid)
}

// Cancel godoc
// @Summary      Cancel a sales document
// @Description  Cancel a sales document, removing its contribution from matched targets
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id path string true "Document ID" format(uuid)
// @Success      200 {object} dto.Response{data=docapp.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /documents/{id}/cancel [post]
func (h *DocumentHandler) Cancel(c *gin.Context) {
	documentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	cancelled, err := h.documentService.Cancel(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cancelled)
}
