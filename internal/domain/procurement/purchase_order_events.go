package procurement

import (
	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for PurchaseOrder
const AggregateTypePurchaseOrder = "PurchaseOrder"

// Event type constants for PurchaseOrder
const (
	EventTypePurchaseOrderCreated       = "PurchaseOrderCreated"
	EventTypePurchaseOrderSent          = "PurchaseOrderSent"
	EventTypePurchaseOrderGoodsReceived = "PurchaseOrderGoodsReceived"
	EventTypePurchaseOrderReceived      = "PurchaseOrderReceived"
	EventTypePurchaseOrderCancelled     = "PurchaseOrderCancelled"
)

// PurchaseOrderCreatedEvent is raised when a new purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	PONumber        string    `json:"po_number"`
	VendorID        uuid.UUID `json:"vendor_id"`
	VendorName      string    `json:"vendor_name"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(po *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		VendorID:        po.VendorID,
		VendorName:      po.VendorName,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCreatedEvent) EventType() string {
	return EventTypePurchaseOrderCreated
}

// PurchaseOrderSentEvent is raised when a purchase order is sent to the vendor
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	PONumber        string          `json:"po_number"`
	VendorID        uuid.UUID       `json:"vendor_id"`
	Total           decimal.Decimal `json:"total"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(po *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSent, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		VendorID:        po.VendorID,
		Total:           po.Total,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderSentEvent) EventType() string {
	return EventTypePurchaseOrderSent
}

// GRNLineInfo carries receipt line details on goods-received events
type GRNLineInfo struct {
	POItemID         uuid.UUID       `json:"po_item_id"`
	Description      string          `json:"description"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
	QuantityRejected decimal.Decimal `json:"quantity_rejected"`
}

// PurchaseOrderGoodsReceivedEvent is raised for every goods receipt
type PurchaseOrderGoodsReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID     `json:"purchase_order_id"`
	PONumber        string        `json:"po_number"`
	GRNID           uuid.UUID     `json:"grn_id"`
	GRNNumber       string        `json:"grn_number"`
	Status          POStatus      `json:"status"`
	Lines           []GRNLineInfo `json:"lines"`
}

// NewPurchaseOrderGoodsReceivedEvent creates a new PurchaseOrderGoodsReceivedEvent
func NewPurchaseOrderGoodsReceivedEvent(po *PurchaseOrder, grn *GoodsReceivedNote) *PurchaseOrderGoodsReceivedEvent {
	lines := make([]GRNLineInfo, 0, len(grn.Items))
	for _, item := range grn.Items {
		lines = append(lines, GRNLineInfo{
			POItemID:         item.POItemID,
			Description:      item.Description,
			QuantityReceived: item.QuantityReceived,
			QuantityRejected: item.QuantityRejected,
		})
	}

	return &PurchaseOrderGoodsReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderGoodsReceived, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		GRNID:           grn.ID,
		GRNNumber:       grn.GRNNumber,
		Status:          po.Status,
		Lines:           lines,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderGoodsReceivedEvent) EventType() string {
	return EventTypePurchaseOrderGoodsReceived
}

// PurchaseOrderReceivedEvent is raised when every line is fully received
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	PONumber        string    `json:"po_number"`
	VendorID        uuid.UUID `json:"vendor_id"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(po *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		VendorID:        po.VendorID,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderReceivedEvent) EventType() string {
	return EventTypePurchaseOrderReceived
}

// PurchaseOrderCancelledEvent is raised when a purchase order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	PONumber        string    `json:"po_number"`
	Reason          string    `json:"reason"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(po *PurchaseOrder, reason string) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, AggregateTypePurchaseOrder, po.ID, po.TenantID),
		PurchaseOrderID: po.ID,
		PONumber:        po.PONumber,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *PurchaseOrderCancelledEvent) EventType() string {
	return EventTypePurchaseOrderCancelled
}
