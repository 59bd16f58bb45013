package procurement

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderItemInput represents one ordered line in a create request
type CreatePurchaseOrderItemInput struct {
	VariantID   *uuid.UUID      `json:"variant_id"`
	Description string          `json:"description" binding:"required,min=1,max=200"`
	HSNCode     string          `json:"hsn_code" binding:"max=20"`
	Unit        string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	VendorID        uuid.UUID                      `json:"vendor_id" binding:"required"`
	VendorName      string                         `json:"vendor_name" binding:"required,min=1,max=200"`
	ExpectedDate    *time.Time                     `json:"expected_date"`
	ShippingAddress string                         `json:"shipping_address" binding:"max=500"`
	ShippingCost    *decimal.Decimal               `json:"shipping_cost"`
	DiscountAmount  *decimal.Decimal               `json:"discount_amount"`
	Notes           string                         `json:"notes" binding:"max=2000"`
	Items           []CreatePurchaseOrderItemInput `json:"items" binding:"required,min=1"`
	CreatedBy       *uuid.UUID                     `json:"-"`
}

// ReceiveLineInput represents one line of a goods receipt request
type ReceiveLineInput struct {
	POItemID         uuid.UUID       `json:"po_item_id" binding:"required"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	QuantityRejected decimal.Decimal `json:"quantity_rejected"`
	RejectionReason  string          `json:"rejection_reason" binding:"max=500"`
}

// ReceiveGoodsRequest represents a goods receipt against a purchase order
type ReceiveGoodsRequest struct {
	Items      []ReceiveLineInput `json:"items" binding:"required,min=1"`
	ReceivedBy *uuid.UUID         `json:"received_by"`
	Notes      string             `json:"notes" binding:"max=2000"`
}

// CancelPurchaseOrderRequest represents a cancellation request
type CancelPurchaseOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// PurchaseOrderListFilter represents filter options for the purchase order list
type PurchaseOrderListFilter struct {
	Status    *procurement.POStatus `form:"status"`
	VendorID  *uuid.UUID            `form:"vendor_id,parser=encoding.TextUnmarshaler"`
	SortBy    string                `form:"sort_by"`
	SortOrder string                `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page      int                   `form:"page"`
	PageSize  int                   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PurchaseOrderItemResponse represents an ordered line in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	VariantID        *uuid.UUID      `json:"variant_id,omitempty"`
	Description      string          `json:"description"`
	HSNCode          string          `json:"hsn_code,omitempty"`
	QuantityOrdered  decimal.Decimal `json:"quantity_ordered"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	PendingQuantity  decimal.Decimal `json:"pending_quantity"`
	Unit             string          `json:"unit"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	GSTRate          decimal.Decimal `json:"gst_rate"`
	GSTAmount        decimal.Decimal `json:"gst_amount"`
	TotalPrice       decimal.Decimal `json:"total_price"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID              uuid.UUID                   `json:"id"`
	TenantID        uuid.UUID                   `json:"tenant_id"`
	PONumber        string                      `json:"po_number"`
	VendorID        uuid.UUID                   `json:"vendor_id"`
	VendorName      string                      `json:"vendor_name"`
	Status          string                      `json:"status"`
	OrderDate       time.Time                   `json:"order_date"`
	ExpectedDate    *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate    *time.Time                  `json:"received_date,omitempty"`
	Items           []PurchaseOrderItemResponse `json:"items"`
	ItemCount       int                         `json:"item_count"`
	Subtotal        decimal.Decimal             `json:"subtotal"`
	GSTAmount       decimal.Decimal             `json:"gst_amount"`
	ShippingCost    decimal.Decimal             `json:"shipping_cost"`
	DiscountAmount  decimal.Decimal             `json:"discount_amount"`
	Total           decimal.Decimal             `json:"total"`
	ShippingAddress string                      `json:"shipping_address,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
	SentAt          *time.Time                  `json:"sent_at,omitempty"`
	CancelledAt     *time.Time                  `json:"cancelled_at,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
	Version         int                         `json:"version"`
}

// PurchaseOrderListItemResponse represents a purchase order in list responses
type PurchaseOrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	PONumber     string          `json:"po_number"`
	VendorName   string          `json:"vendor_name"`
	Status       string          `json:"status"`
	OrderDate    time.Time       `json:"order_date"`
	ExpectedDate *time.Time      `json:"expected_date,omitempty"`
	ItemCount    int             `json:"item_count"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GRNItemResponse represents one receipt line in API responses
type GRNItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	POItemID         uuid.UUID       `json:"po_item_id"`
	VariantID        *uuid.UUID      `json:"variant_id,omitempty"`
	Description      string          `json:"description"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	QuantityRejected decimal.Decimal `json:"quantity_rejected"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
}

// GRNResponse represents a goods received note in API responses
type GRNResponse struct {
	ID              uuid.UUID         `json:"id"`
	GRNNumber       string            `json:"grn_number"`
	PurchaseOrderID uuid.UUID         `json:"purchase_order_id"`
	PONumber        string            `json:"po_number"`
	ReceivedBy      *uuid.UUID        `json:"received_by,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	Items           []GRNItemResponse `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ReceiveGoodsResponse combines the receipt and the updated order
type ReceiveGoodsResponse struct {
	GRN           GRNResponse           `json:"grn"`
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
}

// ==================== Converters ====================

// ToPurchaseOrderItemResponse converts a domain line to its response DTO
func ToPurchaseOrderItemResponse(item *procurement.PurchaseOrderItem) PurchaseOrderItemResponse {
	return PurchaseOrderItemResponse{
		ID:               item.ID,
		VariantID:        item.VariantID,
		Description:      item.Description,
		HSNCode:          item.HSNCode,
		QuantityOrdered:  item.QuantityOrdered,
		QuantityReceived: item.QuantityReceived,
		PendingQuantity:  item.PendingQuantity(),
		Unit:             item.Unit,
		UnitPrice:        item.UnitPrice,
		GSTRate:          item.GSTRate,
		GSTAmount:        item.GSTAmount,
		TotalPrice:       item.TotalPrice,
	}
}

// ToPurchaseOrderResponse converts a domain purchase order to its response DTO
func ToPurchaseOrderResponse(po *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, len(po.Items))
	for i := range po.Items {
		items[i] = ToPurchaseOrderItemResponse(&po.Items[i])
	}

	return PurchaseOrderResponse{
		ID:              po.ID,
		TenantID:        po.TenantID,
		PONumber:        po.PONumber,
		VendorID:        po.VendorID,
		VendorName:      po.VendorName,
		Status:          string(po.Status),
		OrderDate:       po.OrderDate,
		ExpectedDate:    po.ExpectedDate,
		ReceivedDate:    po.ReceivedDate,
		Items:           items,
		ItemCount:       po.ItemCount(),
		Subtotal:        po.Subtotal,
		GSTAmount:       po.GSTAmount,
		ShippingCost:    po.ShippingCost,
		DiscountAmount:  po.DiscountAmount,
		Total:           po.Total,
		ShippingAddress: po.ShippingAddress,
		Notes:           po.Notes,
		SentAt:          po.SentAt,
		CancelledAt:     po.CancelledAt,
		CreatedAt:       po.CreatedAt,
		UpdatedAt:       po.UpdatedAt,
		Version:         po.Version,
	}
}

// ToPurchaseOrderListItemResponse converts a domain purchase order to its list DTO
func ToPurchaseOrderListItemResponse(po *procurement.PurchaseOrder) PurchaseOrderListItemResponse {
	return PurchaseOrderListItemResponse{
		ID:           po.ID,
		PONumber:     po.PONumber,
		VendorName:   po.VendorName,
		Status:       string(po.Status),
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		ItemCount:    po.ItemCount(),
		Total:        po.Total,
		CreatedAt:    po.CreatedAt,
	}
}

// ToGRNResponse converts a domain goods received note to its response DTO
func ToGRNResponse(grn *procurement.GoodsReceivedNote) GRNResponse {
	items := make([]GRNItemResponse, len(grn.Items))
	for i, item := range grn.Items {
		items[i] = GRNItemResponse{
			ID:               item.ID,
			POItemID:         item.POItemID,
			VariantID:        item.VariantID,
			Description:      item.Description,
			QuantityReceived: item.QuantityReceived,
			QuantityRejected: item.QuantityRejected,
			RejectionReason:  item.RejectionReason,
		}
	}

	return GRNResponse{
		ID:              grn.ID,
		GRNNumber:       grn.GRNNumber,
		PurchaseOrderID: grn.PurchaseOrderID,
		PONumber:        grn.PONumber,
		ReceivedBy:      grn.ReceivedBy,
		Notes:           grn.Notes,
		Items:           items,
		CreatedAt:       grn.CreatedAt,
	}
}
