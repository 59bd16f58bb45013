package models

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/procurement"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderModel maps the procurement.PurchaseOrder aggregate to the
// purchase_orders table
type PurchaseOrderModel struct {
	TenantAggregateModel
	PONumber        string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_orders_tenant_number,composite:tenant_id"`
	VendorID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	VendorName      string                   `gorm:"type:varchar(200);not null"`
	Status          string                   `gorm:"type:varchar(20);not null;index"`
	OrderDate       time.Time                `gorm:"not null"`
	ExpectedDate    *time.Time               ``
	ReceivedDate    *time.Time               ``
	Subtotal        decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	GSTAmount       decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	ShippingCost    decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	DiscountAmount  decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Total           decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	ShippingAddress string                   `gorm:"type:varchar(500)"`
	Notes           string                   `gorm:"type:text"`
	SentAt          *time.Time               ``
	CancelledAt     *time.Time               ``
	Items           []PurchaseOrderItemModel `gorm:"foreignKey:PurchaseOrderID"`
}

// TableName returns the table name for PurchaseOrderModel
func (PurchaseOrderModel) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItemModel maps procurement.PurchaseOrderItem to the
// purchase_order_items table
type PurchaseOrderItemModel struct {
	BaseModel
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID        *uuid.UUID      `gorm:"type:uuid;index"`
	Description      string          `gorm:"type:varchar(200);not null"`
	HSNCode          string          `gorm:"type:varchar(20)"`
	QuantityOrdered  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit             string          `gorm:"type:varchar(20);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	GSTAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for PurchaseOrderItemModel
func (PurchaseOrderItemModel) TableName() string {
	return "purchase_order_items"
}

// GoodsReceivedNoteModel maps the procurement.GoodsReceivedNote aggregate to
// the goods_received_notes table
type GoodsReceivedNoteModel struct {
	TenantAggregateModel
	GRNNumber       string         `gorm:"type:varchar(50);not null;uniqueIndex:idx_grns_tenant_number,composite:tenant_id"`
	PurchaseOrderID uuid.UUID      `gorm:"type:uuid;not null;index"`
	PONumber        string         `gorm:"type:varchar(50);not null"`
	ReceivedBy      *uuid.UUID     `gorm:"type:uuid"`
	Notes           string         `gorm:"type:text"`
	Items           []GRNItemModel `gorm:"foreignKey:GRNID"`
}

// TableName returns the table name for GoodsReceivedNoteModel
func (GoodsReceivedNoteModel) TableName() string {
	return "goods_received_notes"
}

// GRNItemModel maps procurement.GRNItem to the grn_items table
type GRNItemModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	GRNID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	POItemID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID        *uuid.UUID      `gorm:"type:uuid"`
	Description      string          `gorm:"type:varchar(200);not null"`
	QuantityReceived decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	QuantityRejected decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	RejectionReason  string          `gorm:"type:varchar(500)"`
	CreatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GRNItemModel
func (GRNItemModel) TableName() string {
	return "grn_items"
}

// ==================== Converters ====================

// FromDomain populates the model from a domain purchase order
func (m *PurchaseOrderModel) FromDomain(po *procurement.PurchaseOrder) {
	m.FromDomainTenantAggregateRoot(po.TenantAggregateRoot)
	m.PONumber = po.PONumber
	m.VendorID = po.VendorID
	m.VendorName = po.VendorName
	m.Status = string(po.Status)
	m.OrderDate = po.OrderDate
	m.ExpectedDate = po.ExpectedDate
	m.ReceivedDate = po.ReceivedDate
	m.Subtotal = po.Subtotal
	m.GSTAmount = po.GSTAmount
	m.ShippingCost = po.ShippingCost
	m.DiscountAmount = po.DiscountAmount
	m.Total = po.Total
	m.ShippingAddress = po.ShippingAddress
	m.Notes = po.Notes
	m.SentAt = po.SentAt
	m.CancelledAt = po.CancelledAt

	m.Items = make([]PurchaseOrderItemModel, len(po.Items))
	for i, item := range po.Items {
		m.Items[i] = PurchaseOrderItemModel{
			BaseModel: BaseModel{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			PurchaseOrderID:  po.ID,
			VariantID:        item.VariantID,
			Description:      item.Description,
			HSNCode:          item.HSNCode,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			Unit:             item.Unit,
			UnitPrice:        item.UnitPrice,
			GSTRate:          item.GSTRate,
			GSTAmount:        item.GSTAmount,
			TotalPrice:       item.TotalPrice,
		}
	}
}

// ToDomain converts the model to a domain purchase order
func (m *PurchaseOrderModel) ToDomain() *procurement.PurchaseOrder {
	po := &procurement.PurchaseOrder{
		PONumber:        m.PONumber,
		VendorID:        m.VendorID,
		VendorName:      m.VendorName,
		Status:          procurement.POStatus(m.Status),
		OrderDate:       m.OrderDate,
		ExpectedDate:    m.ExpectedDate,
		ReceivedDate:    m.ReceivedDate,
		Subtotal:        m.Subtotal,
		GSTAmount:       m.GSTAmount,
		ShippingCost:    m.ShippingCost,
		DiscountAmount:  m.DiscountAmount,
		Total:           m.Total,
		ShippingAddress: m.ShippingAddress,
		Notes:           m.Notes,
		SentAt:          m.SentAt,
		CancelledAt:     m.CancelledAt,
	}
	m.PopulateTenantAggregateRoot(&po.TenantAggregateRoot)

	po.Items = make([]procurement.PurchaseOrderItem, len(m.Items))
	for i, item := range m.Items {
		po.Items[i] = procurement.PurchaseOrderItem{
			ID:               item.ID,
			PurchaseOrderID:  item.PurchaseOrderID,
			VariantID:        item.VariantID,
			Description:      item.Description,
			HSNCode:          item.HSNCode,
			QuantityOrdered:  item.QuantityOrdered,
			QuantityReceived: item.QuantityReceived,
			Unit:             item.Unit,
			UnitPrice:        item.UnitPrice,
			GSTRate:          item.GSTRate,
			GSTAmount:        item.GSTAmount,
			TotalPrice:       item.TotalPrice,
			CreatedAt:        item.CreatedAt,
			UpdatedAt:        item.UpdatedAt,
		}
	}

	return po
}

// FromDomain populates the model from a domain goods received note
func (m *GoodsReceivedNoteModel) FromDomain(grn *procurement.GoodsReceivedNote) {
	m.FromDomainTenantAggregateRoot(grn.TenantAggregateRoot)
	m.GRNNumber = grn.GRNNumber
	m.PurchaseOrderID = grn.PurchaseOrderID
	m.PONumber = grn.PONumber
	m.ReceivedBy = grn.ReceivedBy
	m.Notes = grn.Notes

	m.Items = make([]GRNItemModel, len(grn.Items))
	for i, item := range grn.Items {
		m.Items[i] = GRNItemModel{
			ID:               item.ID,
			GRNID:            grn.ID,
			POItemID:         item.POItemID,
			VariantID:        item.VariantID,
			Description:      item.Description,
			QuantityReceived: item.QuantityReceived,
			QuantityRejected: item.QuantityRejected,
			RejectionReason:  item.RejectionReason,
			CreatedAt:        item.CreatedAt,
		}
	}
}

// ToDomain converts the model to a domain goods received note
func (m *GoodsReceivedNoteModel) ToDomain() *procurement.GoodsReceivedNote {
	grn := &procurement.GoodsReceivedNote{
		GRNNumber:       m.GRNNumber,
		PurchaseOrderID: m.PurchaseOrderID,
		PONumber:        m.PONumber,
		ReceivedBy:      m.ReceivedBy,
		Notes:           m.Notes,
	}
	m.PopulateTenantAggregateRoot(&grn.TenantAggregateRoot)

	grn.Items = make([]procurement.GRNItem, len(m.Items))
	for i, item := range m.Items {
		grn.Items[i] = procurement.GRNItem{
			ID:               item.ID,
			GRNID:            item.GRNID,
			POItemID:         item.POItemID,
			VariantID:        item.VariantID,
			Description:      item.Description,
			QuantityReceived: item.QuantityReceived,
			QuantityRejected: item.QuantityRejected,
			RejectionReason:  item.RejectionReason,
			CreatedAt:        item.CreatedAt,
		}
	}

	return grn
}
