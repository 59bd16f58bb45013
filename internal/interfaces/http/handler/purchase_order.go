package handler

import (
	appprocurement "github.com/gemsuite/backend/internal/application/procurement"
	"github.com/gemsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseOrderHandler handles purchase order and goods receipt endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	service *appprocurement.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(service *appprocurement.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{service: service}
}

// RegisterRoutes registers purchase order routes
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/send", h.MarkSent)
		orders.POST("/:id/receive", h.ReceiveGoods)
		orders.POST("/:id/cancel", h.Cancel)
		orders.GET("/:id/grns", h.ListGRNs)
	}
}

// Create creates a new purchase order in draft status
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req appprocurement.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if userID, err := getUserID(c); err == nil {
		req.CreatedBy = &userID
	}

	po, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, po)
}

// List lists purchase orders with filtering and pagination
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var filter appprocurement.PurchaseOrderListFilter
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

	orders, total, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// GetByID retrieves a purchase order with its items
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	tenantID, poID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	po, err := h.service.GetByID(c.Request.Context(), tenantID, poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// MarkSent marks a draft purchase order as sent to the vendor
func (h *PurchaseOrderHandler) MarkSent(c *gin.Context) {
	tenantID, poID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	po, err := h.service.MarkSent(c.Request.Context(), tenantID, poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// ReceiveGoods records a goods receipt against a purchase order
func (h *PurchaseOrderHandler) ReceiveGoods(c *gin.Context) {
	tenantID, poID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req appprocurement.ReceiveGoodsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	if req.ReceivedBy == nil {
		if userID, err := getUserID(c); err == nil {
			req.ReceivedBy = &userID
		}
	}

	result, err := h.service.ReceiveGoods(c.Request.Context(), tenantID, poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Cancel cancels a draft or sent purchase order
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	tenantID, poID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	var req appprocurement.CancelPurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	po, err := h.service.Cancel(c.Request.Context(), tenantID, poID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// ListGRNs lists the goods received notes recorded against an order
func (h *PurchaseOrderHandler) ListGRNs(c *gin.Context) {
	tenantID, poID, ok := h.bindIDs(c)
	if !ok {
		return
	}

	grns, err := h.service.ListGRNs(c.Request.Context(), tenantID, poID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, grns)
}

// bindIDs extracts the tenant and the :id path parameter
func (h *PurchaseOrderHandler) bindIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return uuid.Nil, uuid.Nil, false
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return uuid.Nil, uuid.Nil, false
	}
	poID, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, poID, true
}
