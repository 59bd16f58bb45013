package models

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel maps the billing.Invoice aggregate to the invoices table
type InvoiceModel struct {
	TenantAggregateModel
	InvoiceNumber  string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_tenant_number,composite:tenant_id"`
	BuyerName      string             `gorm:"type:varchar(200);not null"`
	BuyerAddress   string             `gorm:"type:varchar(500)"`
	BuyerGSTIN     string             `gorm:"type:varchar(15)"`
	BuyerStateCode string             `gorm:"type:varchar(2)"`
	InterState     bool               `gorm:"not null;default:false"`
	InvoiceDate    time.Time          `gorm:"not null"`
	TaxableValue   decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	CGSTAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	SGSTAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	IGSTAmount     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	TotalTax       decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	GrandTotal     decimal.Decimal    `gorm:"type:decimal(18,4);not null"`
	Items          []InvoiceItemModel `gorm:"foreignKey:InvoiceID"`
}

// TableName returns the table name for InvoiceModel
func (InvoiceModel) TableName() string {
	return "invoices"
}

// InvoiceItemModel maps billing.InvoiceItem to the invoice_items table
type InvoiceItemModel struct {
	BaseModel
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID       *uuid.UUID      `gorm:"type:uuid;index"`
	Description     string          `gorm:"type:varchar(200);not null"`
	HSNCode         string          `gorm:"type:varchar(20)"`
	Quantity        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxableAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate         decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CGSTAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SGSTAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IGSTAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for InvoiceItemModel
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// CreditNoteModel maps the billing.CreditNote aggregate to the credit_notes table
type CreditNoteModel struct {
	TenantAggregateModel
	CreditNoteNumber  string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_credit_notes_tenant_number,composite:tenant_id"`
	OriginalInvoiceID *uuid.UUID            `gorm:"type:uuid;index"`
	OriginalSaleID    *uuid.UUID            `gorm:"type:uuid;index"`
	ReturnReason      string                `gorm:"type:varchar(30);not null"`
	Notes             string                `gorm:"type:text"`
	BuyerName         string                `gorm:"type:varchar(200);not null"`
	BuyerAddress      string                `gorm:"type:varchar(500)"`
	BuyerGSTIN        string                `gorm:"type:varchar(15)"`
	BuyerStateCode    string                `gorm:"type:varchar(2)"`
	TaxableValue      decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	CGSTAmount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	SGSTAmount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	IGSTAmount        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	TotalTax          decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	GrandTotal        decimal.Decimal       `gorm:"type:decimal(18,4);not null"`
	Status            string                `gorm:"type:varchar(20);not null;index"`
	RefundMethod      string                `gorm:"type:varchar(30)"`
	RefundReference   string                `gorm:"type:varchar(500)"`
	RefundedAt        *time.Time            ``
	ApprovedAt        *time.Time            ``
	CancelledAt       *time.Time            ``
	Items             []CreditNoteItemModel `gorm:"foreignKey:CreditNoteID"`
}

// TableName returns the table name for CreditNoteModel
func (CreditNoteModel) TableName() string {
	return "credit_notes"
}

// CreditNoteItemModel maps billing.CreditNoteItem to the credit_note_items table
type CreditNoteItemModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primary_key"`
	CreditNoteID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	OriginalInvoiceItemID *uuid.UUID      `gorm:"type:uuid;index"`
	VariantID             *uuid.UUID      `gorm:"type:uuid;index"`
	Description           string          `gorm:"type:varchar(200);not null"`
	HSNCode               string          `gorm:"type:varchar(20)"`
	Quantity              decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice             decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent       decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	DiscountAmount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxableAmount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GSTRate               decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CGSTAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SGSTAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IGSTAmount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt             time.Time       `gorm:"not null"`
}

// TableName returns the table name for CreditNoteItemModel
func (CreditNoteItemModel) TableName() string {
	return "credit_note_items"
}

// ==================== Converters ====================

// FromDomainInvoice populates the model from a domain invoice
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.InvoiceNumber = inv.InvoiceNumber
	m.BuyerName = inv.Buyer.Name
	m.BuyerAddress = inv.Buyer.Address
	m.BuyerGSTIN = inv.Buyer.GSTIN
	m.BuyerStateCode = inv.Buyer.StateCode
	m.InterState = inv.InterState
	m.InvoiceDate = inv.InvoiceDate
	m.TaxableValue = inv.TaxableValue
	m.CGSTAmount = inv.CGSTAmount
	m.SGSTAmount = inv.SGSTAmount
	m.IGSTAmount = inv.IGSTAmount
	m.TotalTax = inv.TotalTax
	m.GrandTotal = inv.GrandTotal

	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModel{
			BaseModel: BaseModel{
				ID:        item.ID,
				CreatedAt: item.CreatedAt,
				UpdatedAt: item.UpdatedAt,
			},
			InvoiceID:       inv.ID,
			VariantID:       item.VariantID,
			Description:     item.Description,
			HSNCode:         item.HSNCode,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
			TaxableAmount:   item.TaxableAmount,
			GSTRate:         item.GSTRate,
			CGSTAmount:      item.CGSTAmount,
			SGSTAmount:      item.SGSTAmount,
			IGSTAmount:      item.IGSTAmount,
			TotalAmount:     item.TotalAmount,
		}
	}
}

// ToDomain converts the model to a domain invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		InvoiceNumber: m.InvoiceNumber,
		Buyer: billing.BuyerSnapshot{
			Name:      m.BuyerName,
			Address:   m.BuyerAddress,
			GSTIN:     m.BuyerGSTIN,
			StateCode: m.BuyerStateCode,
		},
		InterState:   m.InterState,
		InvoiceDate:  m.InvoiceDate,
		TaxableValue: m.TaxableValue,
		CGSTAmount:   m.CGSTAmount,
		SGSTAmount:   m.SGSTAmount,
		IGSTAmount:   m.IGSTAmount,
		TotalTax:     m.TotalTax,
		GrandTotal:   m.GrandTotal,
	}
	m.PopulateTenantAggregateRoot(&inv.TenantAggregateRoot)

	inv.Items = make([]billing.InvoiceItem, len(m.Items))
	for i, item := range m.Items {
		inv.Items[i] = billing.InvoiceItem{
			ID:              item.ID,
			InvoiceID:       item.InvoiceID,
			VariantID:       item.VariantID,
			Description:     item.Description,
			HSNCode:         item.HSNCode,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			DiscountAmount:  item.DiscountAmount,
			TaxableAmount:   item.TaxableAmount,
			GSTRate:         item.GSTRate,
			CGSTAmount:      item.CGSTAmount,
			SGSTAmount:      item.SGSTAmount,
			IGSTAmount:      item.IGSTAmount,
			TotalAmount:     item.TotalAmount,
			CreatedAt:       item.CreatedAt,
			UpdatedAt:       item.UpdatedAt,
		}
	}

	return inv
}

// FromDomain populates the model from a domain credit note
func (m *CreditNoteModel) FromDomain(cn *billing.CreditNote) {
	m.FromDomainTenantAggregateRoot(cn.TenantAggregateRoot)
	m.CreditNoteNumber = cn.CreditNoteNumber
	m.OriginalInvoiceID = cn.OriginalInvoiceID
	m.OriginalSaleID = cn.OriginalSaleID
	m.ReturnReason = string(cn.ReturnReason)
	m.Notes = cn.Notes
	m.BuyerName = cn.Buyer.Name
	m.BuyerAddress = cn.Buyer.Address
	m.BuyerGSTIN = cn.Buyer.GSTIN
	m.BuyerStateCode = cn.Buyer.StateCode
	m.TaxableValue = cn.TaxableValue
	m.CGSTAmount = cn.CGSTAmount
	m.SGSTAmount = cn.SGSTAmount
	m.IGSTAmount = cn.IGSTAmount
	m.TotalTax = cn.TotalTax
	m.GrandTotal = cn.GrandTotal
	m.Status = string(cn.Status)
	m.RefundMethod = cn.RefundMethod
	m.RefundReference = cn.RefundReference
	m.RefundedAt = cn.RefundedAt
	m.ApprovedAt = cn.ApprovedAt
	m.CancelledAt = cn.CancelledAt

	m.Items = make([]CreditNoteItemModel, len(cn.Items))
	for i, item := range cn.Items {
		m.Items[i] = CreditNoteItemModel{
			ID:                    item.ID,
			CreditNoteID:          cn.ID,
			OriginalInvoiceItemID: item.OriginalInvoiceItemID,
			VariantID:             item.VariantID,
			Description:           item.Description,
			HSNCode:               item.HSNCode,
			Quantity:              item.Quantity,
			UnitPrice:             item.UnitPrice,
			DiscountPercent:       item.DiscountPercent,
			DiscountAmount:        item.DiscountAmount,
			TaxableAmount:         item.TaxableAmount,
			GSTRate:               item.GSTRate,
			CGSTAmount:            item.CGSTAmount,
			SGSTAmount:            item.SGSTAmount,
			IGSTAmount:            item.IGSTAmount,
			TotalAmount:           item.TotalAmount,
			CreatedAt:             item.CreatedAt,
		}
	}
}

// ToDomain converts the model to a domain credit note
func (m *CreditNoteModel) ToDomain() *billing.CreditNote {
	cn := &billing.CreditNote{
		CreditNoteNumber:  m.CreditNoteNumber,
		OriginalInvoiceID: m.OriginalInvoiceID,
		OriginalSaleID:    m.OriginalSaleID,
		ReturnReason:      billing.ReturnReason(m.ReturnReason),
		Notes:             m.Notes,
		Buyer: billing.BuyerSnapshot{
			Name:      m.BuyerName,
			Address:   m.BuyerAddress,
			GSTIN:     m.BuyerGSTIN,
			StateCode: m.BuyerStateCode,
		},
		TaxableValue:    m.TaxableValue,
		CGSTAmount:      m.CGSTAmount,
		SGSTAmount:      m.SGSTAmount,
		IGSTAmount:      m.IGSTAmount,
		TotalTax:        m.TotalTax,
		GrandTotal:      m.GrandTotal,
		Status:          billing.CreditNoteStatus(m.Status),
		RefundMethod:    m.RefundMethod,
		RefundReference: m.RefundReference,
		RefundedAt:      m.RefundedAt,
		ApprovedAt:      m.ApprovedAt,
		CancelledAt:     m.CancelledAt,
	}
	m.PopulateTenantAggregateRoot(&cn.TenantAggregateRoot)

	cn.Items = make([]billing.CreditNoteItem, len(m.Items))
	for i, item := range m.Items {
		cn.Items[i] = billing.CreditNoteItem{
			ID:                    item.ID,
			CreditNoteID:          item.CreditNoteID,
			OriginalInvoiceItemID: item.OriginalInvoiceItemID,
			VariantID:             item.VariantID,
			Description:           item.Description,
			HSNCode:               item.HSNCode,
			Quantity:              item.Quantity,
			UnitPrice:             item.UnitPrice,
			DiscountPercent:       item.DiscountPercent,
			DiscountAmount:        item.DiscountAmount,
			TaxableAmount:         item.TaxableAmount,
			GSTRate:               item.GSTRate,
			CGSTAmount:            item.CGSTAmount,
			SGSTAmount:            item.SGSTAmount,
			IGSTAmount:            item.IGSTAmount,
			TotalAmount:           item.TotalAmount,
			CreatedAt:             item.CreatedAt,
		}
	}

	return cn
}
