package handler

import (
	appbilling "github.com/gemsuite/backend/internal/application/billing"
	"github.com/gemsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreditNoteHandler handles credit note endpoints
type CreditNoteHandler struct {
	BaseHandler
	service *appbilling.CreditNoteService
}

// NewCreditNoteHandler creates a new CreditNoteHandler
func NewCreditNoteHandler(service *appbilling.CreditNoteService) *CreditNoteHandler {
	return &CreditNoteHandler{service: service}
}

// RegisterRoutes registers credit note routes
func (h *CreditNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/credit-notes")
	{
		notes.POST("", h.Create)
		notes.POST("/from-invoice", h.CreateFromInvoice)
		notes.GET("", h.List)
		notes.GET("/:id", h.GetByID)
		notes.POST("/:id/approve", h.Approve)
		notes.POST("/:id/refund", h.Refund)
		notes.POST("/:id/exchange", h.Exchange)
		notes.POST("/:id/cancel", h.Cancel)
	}
}

// Create creates a credit note from manually entered lines
func (h *CreditNoteHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req appbilling.CreateCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	note, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// CreateFromInvoice creates a credit note by prorating invoice lines
func (h *CreditNoteHandler) CreateFromInvoice(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req appbilling.CreateFromInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	note, err := h.service.CreateFromInvoice(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, note)
}

// List lists credit notes with filtering and pagination
func (h *CreditNoteHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var filter appbilling.CreditNoteListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		h.BadRequest(c, "Invalid status filter")
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	notes, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, notes, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a credit note with its items
func (h *CreditNoteHandler) GetByID(c *gin.Context) {
	tenantID, noteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	note, err := h.service.GetByID(c.Request.Context(), tenantID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Approve approves a pending credit note
func (h *CreditNoteHandler) Approve(c *gin.Context) {
	tenantID, noteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	note, err := h.service.Approve(c.Request.Context(), tenantID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Refund settles an approved credit note by refunding the customer
func (h *CreditNoteHandler) Refund(c *gin.Context) {
	tenantID, noteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req appbilling.RefundCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	note, err := h.service.ProcessRefund(c.Request.Context(), tenantID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// Exchange settles an approved credit note against replacement items
func (h *CreditNoteHandler) Exchange(c *gin.Context) {
	tenantID, noteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req appbilling.ExchangeCreditNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.service.ProcessExchange(c.Request.Context(), tenantID, noteID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Cancel cancels a pending or approved credit note
func (h *CreditNoteHandler) Cancel(c *gin.Context) {
	tenantID, noteID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	note, err := h.service.Cancel(c.Request.Context(), tenantID, noteID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, note)
}

// bindIDs extracts the tenant and the :id path parameter
func (h *CreditNoteHandler) bindIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return uuid.Nil, uuid.Nil, false
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return uuid.Nil, uuid.Nil, false
	}
	noteID, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid credit note ID")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, noteID, true
}
