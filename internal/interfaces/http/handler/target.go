package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appdoc "github.com/salesquota/backend/internal/application/document"
	targetapp "github.com/salesquota/backend/internal/application/target"
)

const dateLayout = "2006-01-02"

// TargetHandler handles sales target API endpoints
type TargetHandler struct {
	BaseHandler
	targetService *targetapp.TargetService
}

// NewTargetHandler creates a new TargetHandler
func NewTargetHandler(targetService *targetapp.TargetService) *TargetHandler {
	return &TargetHandler{
		targetService: targetService,
	}
}

// CreateTargetRequest represents a request to create a new sales target
// @Description Request body for creating a new sales target
type CreateTargetRequest struct {
	ActorKind     string   `json:"actor_kind" binding:"required,oneof=SALESPERSON TEAM" example:"SALESPERSON"`
	ActorID       string   `json:"actor_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Metric        string   `json:"metric" binding:"required" example:"ORDER_CONFIRMED"`
	StartDate     *string  `json:"start_date" example:"2026-01-01"`
	EndDate       *string  `json:"end_date" example:"2026-03-31"`
	TargetAmount  *float64 `json:"target_amount" binding:"omitempty,gte=0" example:"100000.00"`
	Currency      string   `json:"currency" binding:"omitempty,len=3" example:"USD"`
	ResponsibleID *string  `json:"responsible_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
}

// UpdateTargetRequest represents a request to update a sales target
// @Description Request body for updating a sales target (draft only, except amount)
type UpdateTargetRequest struct {
	ActorKind     *string  `json:"actor_kind" binding:"omitempty,oneof=SALESPERSON TEAM" example:"TEAM"`
	ActorID       *string  `json:"actor_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Metric        *string  `json:"metric" example:"INVOICE_VALIDATED"`
	StartDate     *string  `json:"start_date" example:"2026-01-01"`
	EndDate       *string  `json:"end_date" example:"2026-03-31"`
	TargetAmount  *float64 `json:"target_amount" binding:"omitempty,gte=0" example:"120000.00"`
	ResponsibleID *string  `json:"responsible_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
}

// ListTargetsQuery represents the query parameters for listing targets
type ListTargetsQuery struct {
	Page      int     `form:"page" binding:"omitempty,min=1"`
	PageSize  int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string  `form:"order_by"`
	OrderDir  string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search    string  `form:"search"`
	ActorKind *string `form:"actor_kind" binding:"omitempty,oneof=SALESPERSON TEAM"`
	ActorID   *string `form:"actor_id" binding:"omitempty,uuid"`
	Metric    *string `form:"metric"`
	Status    *string `form:"status" binding:"omitempty,oneof=DRAFT OPEN CLOSED"`
	OnDate    *string `form:"on_date"`
}

// parseDate parses an optional YYYY-MM-DD string
func parseDate(value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// Create godoc
// @Summary      Create a sales target
// @Description  Create a new sales target in DRAFT status
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        request body CreateTargetRequest true "Target creation request"
// @Success      201 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets [post]
func (h *TargetHandler) Create(c *gin.Context) {
	var req CreateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actorID, err := uuid.Parse(req.ActorID)
	if err != nil {
		h.BadRequest(c, "Invalid actor ID format")
		return
	}

	appReq := targetapp.CreateTargetRequest{
		ActorKind: req.ActorKind,
		ActorID:   actorID,
		Metric:    req.Metric,
		Currency:  req.Currency,
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		h.BadRequest(c, "Invalid start date format, expected YYYY-MM-DD")
		return
	}
	appReq.StartDate = startDate

	endDate, ok := parseDate(req.EndDate)
	if !ok {
		h.BadRequest(c, "Invalid end date format, expected YYYY-MM-DD")
		return
	}
	appReq.EndDate = endDate

	if req.TargetAmount != nil {
		amount := decimal.NewFromFloat(*req.TargetAmount)
		appReq.TargetAmount = &amount
	}

	if req.ResponsibleID != nil && *req.ResponsibleID != "" {
		responsibleID, err := uuid.Parse(*req.ResponsibleID)
		if err != nil {
			h.BadRequest(c, "Invalid responsible ID format")
			return
		}
		appReq.ResponsibleID = &responsibleID
	}

	created, err := h.targetService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, created)
}

// GetByID godoc
// @Summary      Get sales target by ID
// @Description  Retrieve a sales target, recomputing achievement if it is open
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id} [get]
func (h *TargetHandler) GetByID(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	resp, err := h.targetService.GetByID(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @Summary      List sales targets
// @Description  Retrieve a paginated list of sales targets with optional filtering
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        search query string false "Search term (reference)"
// @Param        actor_kind query string false "Actor kind" Enums(SALESPERSON, TEAM)
// @Param        actor_id query string false "Actor ID" format(uuid)
// @Param        metric query string false "Business metric" Enums(ORDER_CONFIRMED, INVOICE_VALIDATED, INVOICE_PAID)
// @Param        status query string false "Target status" Enums(DRAFT, OPEN, CLOSED)
// @Param        on_date query string false "Only targets whose window contains this date (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]targetapp.TargetResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets [get]
func (h *TargetHandler) List(c *gin.Context) {
	var query ListTargetsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := targetapp.TargetListFilter{
		Page:      query.Page,
		PageSize:  query.PageSize,
		OrderBy:   query.OrderBy,
		OrderDir:  query.OrderDir,
		Search:    query.Search,
		ActorKind: query.ActorKind,
		Metric:    query.Metric,
		Status:    query.Status,
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

	onDate, ok := parseDate(query.OnDate)
	if !ok {
		h.BadRequest(c, "Invalid on_date format, expected YYYY-MM-DD")
		return
	}
	filter.OnDate = onDate

	targets, total, err := h.targetService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, targets, total, filter.Page, filter.PageSize)
}

// Update godoc
// @Summary      Update a sales target
// @Description  Update a sales target (only allowed in DRAFT status, except the target amount)
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Param        request body UpdateTargetRequest true "Target update request"
// @Success      200 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id} [put]
func (h *TargetHandler) Update(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	var req UpdateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := targetapp.UpdateTargetRequest{
		ActorKind: req.ActorKind,
		Metric:    req.Metric,
	}

	if req.ActorID != nil {
		actorID, err := uuid.Parse(*req.ActorID)
		if err != nil {
			h.BadRequest(c, "Invalid actor ID format")
			return
		}
		appReq.ActorID = &actorID
	}

	startDate, ok := parseDate(req.StartDate)
	if !ok {
		h.BadRequest(c, "Invalid start date format, expected YYYY-MM-DD")
		return
	}
	appReq.StartDate = startDate

	endDate, ok := parseDate(req.EndDate)
	if !ok {
		h.BadRequest(c, "Invalid end date format, expected YYYY-MM-DD")
		return
	}
	appReq.EndDate = endDate

	if req.TargetAmount != nil {
		amount := decimal.NewFromFloat(*req.TargetAmount)
		appReq.TargetAmount = &amount
	}

	if req.ResponsibleID != nil && *req.ResponsibleID != "" {
		responsibleID, err := uuid.Parse(*req.ResponsibleID)
		if err != nil {
			h.BadRequest(c, "Invalid responsible ID format")
			return
		}
		appReq.ResponsibleID = &responsibleID
	}

	updated, err := h.targetService.Update(c.Request.Context(), targetID, appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, updated)
}

// Delete godoc
// @Summary      Delete a sales target
// @Description  Delete a sales target (only allowed in DRAFT status)
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id} [delete]
func (h *TargetHandler) Delete(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	if err := h.targetService.Delete(c.Request.Context(), targetID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Confirm godoc
// @Summary      Confirm a sales target
// @Description  Transition a target from DRAFT to OPEN, assigning its reference
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/confirm [post]
func (h *TargetHandler) Confirm(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	confirmed, err := h.targetService.Confirm(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, confirmed)
}

// Close godoc
// @Summary      Close a sales target
// @Description  Transition a target from OPEN to CLOSED after a final recomputation
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/close [post]
func (h *TargetHandler) Close(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	closed, err := h.targetService.Close(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, closed)
}

// ResetToDraft godoc
// @Summary      Reset a sales target to draft
// @Description  Transition a target from OPEN back to DRAFT and clear document back references
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.TargetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/reset [post]
func (h *TargetHandler) ResetToDraft(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	reset, err := h.targetService.ResetToDraft(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reset)
}

// GetAchievement godoc
// @Summary      Get target achievement
// @Description  Retrieve the achievement rollup of a target, recomputing if it is open
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.AchievementResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/achievement [get]
func (h *TargetHandler) GetAchievement(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	achievement, err := h.targetService.GetAchievement(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, achievement)
}

// GetPacing godoc
// @Summary      Get target pacing
// @Description  Retrieve the time-proportional theoretical achievement of a target
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=targetapp.PacingResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/pacing [get]
func (h *TargetHandler) GetPacing(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	pacing, err := h.targetService.GetPacing(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, pacing)
}

// ListDocuments godoc
// @Summary      List documents matched to a target
// @Description  Retrieve the sales documents whose back reference points at this target
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]appdoc.DocumentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/documents [get]
func (h *TargetHandler) ListDocuments(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	docs, err := h.targetService.ListDocuments(c.Request.Context(), targetID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, appdoc.ToDocumentResponses(docs))
}

// Notify godoc
// @Summary      Send a target status notification
// @Description  Notify the responsible user about the current state of a target
// @Tags         targets
// @Accept       json
// @Produce      json
// @Param        id path string true "Target ID" format(uuid)
// @Success      204
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /targets/{id}/notify [post]
func (h *TargetHandler) Notify(c *gin.Context) {
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid target ID format")
		return
	}

	if err := h.targetService.SendNotification(c.Request.Context(), targetID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
