package billing

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Credit Note DTOs ====================

// CreateCreditNoteItemInput represents one manually entered line
type CreateCreditNoteItemInput struct {
	VariantID      *uuid.UUID      `json:"variant_id"`
	Description    string          `json:"description" binding:"required,min=1,max=200"`
	HSNCode        string          `json:"hsn_code" binding:"max=20"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice      decimal.Decimal `json:"unit_price" binding:"required"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	GSTRate        decimal.Decimal `json:"gst_rate"`
	CGSTAmount     decimal.Decimal `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `json:"sgst_amount"`
	IGSTAmount     decimal.Decimal `json:"igst_amount"`
}

// CreateCreditNoteRequest represents a manual credit note creation request
type CreateCreditNoteRequest struct {
	ReturnReason   string                      `json:"return_reason" binding:"required"`
	Notes          string                      `json:"notes" binding:"max=2000"`
	BuyerName      string                      `json:"buyer_name" binding:"required,min=1,max=200"`
	BuyerAddress   string                      `json:"buyer_address" binding:"max=500"`
	BuyerGSTIN     string                      `json:"buyer_gstin" binding:"omitempty,gstin"`
	BuyerStateCode string                      `json:"buyer_state_code" binding:"max=2"`
	OriginalSaleID *uuid.UUID                  `json:"original_sale_id"`
	Items          []CreateCreditNoteItemInput `json:"items" binding:"required,min=1"`
	CreatedBy      *uuid.UUID                  `json:"-"`
}

// ReturnLineInput selects an invoice line and the quantity being returned
type ReturnLineInput struct {
	InvoiceItemID uuid.UUID       `json:"invoice_item_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateFromInvoiceRequest represents an invoice-referenced creation request
type CreateFromInvoiceRequest struct {
	InvoiceID    uuid.UUID         `json:"invoice_id" binding:"required"`
	ReturnReason string            `json:"return_reason" binding:"required"`
	Notes        string            `json:"notes" binding:"max=2000"`
	Items        []ReturnLineInput `json:"items" binding:"required,min=1"`
	CreatedBy    *uuid.UUID        `json:"-"`
}

// RefundCreditNoteRequest carries the settlement details for a refund
type RefundCreditNoteRequest struct {
	Method    string `json:"method" binding:"required,min=1,max=50"`
	Reference string `json:"reference" binding:"max=100"`
}

// ExchangeItemInput represents one replacement line in an exchange request
type ExchangeItemInput struct {
	Description string          `json:"description" binding:"required,min=1,max=200"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// ExchangeCreditNoteRequest represents an exchange settlement request
type ExchangeCreditNoteRequest struct {
	Items []ExchangeItemInput `json:"items" binding:"required,min=1"`
	Notes string              `json:"notes" binding:"max=2000"`
}

// CreditNoteListFilter represents filter options for the credit note list
type CreditNoteListFilter struct {
	Status    *billing.CreditNoteStatus `form:"status"`
	From      *time.Time                `form:"from" time_format:"2006-01-02"`
	To        *time.Time                `form:"to" time_format:"2006-01-02"`
	SortBy    string                    `form:"sort_by"`
	SortOrder string                    `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
	Page      int                       `form:"page"`
	PageSize  int                       `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CreditNoteItemResponse represents a credit note line in API responses
type CreditNoteItemResponse struct {
	ID                    uuid.UUID       `json:"id"`
	OriginalInvoiceItemID *uuid.UUID      `json:"original_invoice_item_id,omitempty"`
	VariantID             *uuid.UUID      `json:"variant_id,omitempty"`
	Description           string          `json:"description"`
	HSNCode               string          `json:"hsn_code,omitempty"`
	Quantity              decimal.Decimal `json:"quantity"`
	UnitPrice             decimal.Decimal `json:"unit_price"`
	DiscountPercent       decimal.Decimal `json:"discount_percent"`
	DiscountAmount        decimal.Decimal `json:"discount_amount"`
	TaxableAmount         decimal.Decimal `json:"taxable_amount"`
	GSTRate               decimal.Decimal `json:"gst_rate"`
	CGSTAmount            decimal.Decimal `json:"cgst_amount"`
	SGSTAmount            decimal.Decimal `json:"sgst_amount"`
	IGSTAmount            decimal.Decimal `json:"igst_amount"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
}

// CreditNoteResponse represents a credit note in API responses
type CreditNoteResponse struct {
	ID                uuid.UUID                `json:"id"`
	TenantID          uuid.UUID                `json:"tenant_id"`
	CreditNoteNumber  string                   `json:"credit_note_number"`
	OriginalInvoiceID *uuid.UUID               `json:"original_invoice_id,omitempty"`
	OriginalSaleID    *uuid.UUID               `json:"original_sale_id,omitempty"`
	ReturnReason      string                   `json:"return_reason"`
	Notes             string                   `json:"notes,omitempty"`
	BuyerName         string                   `json:"buyer_name"`
	BuyerAddress      string                   `json:"buyer_address,omitempty"`
	BuyerGSTIN        string                   `json:"buyer_gstin,omitempty"`
	BuyerStateCode    string                   `json:"buyer_state_code,omitempty"`
	Items             []CreditNoteItemResponse `json:"items"`
	ItemCount         int                      `json:"item_count"`
	TaxableValue      decimal.Decimal          `json:"taxable_value"`
	CGSTAmount        decimal.Decimal          `json:"cgst_amount"`
	SGSTAmount        decimal.Decimal          `json:"sgst_amount"`
	IGSTAmount        decimal.Decimal          `json:"igst_amount"`
	TotalTax          decimal.Decimal          `json:"total_tax"`
	GrandTotal        decimal.Decimal          `json:"grand_total"`
	Status            string                   `json:"status"`
	RefundMethod      string                   `json:"refund_method,omitempty"`
	RefundReference   string                   `json:"refund_reference,omitempty"`
	RefundedAt        *time.Time               `json:"refunded_at,omitempty"`
	ApprovedAt        *time.Time               `json:"approved_at,omitempty"`
	CancelledAt       *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
	Version           int                      `json:"version"`
}

// CreditNoteListItemResponse represents a credit note in list responses
type CreditNoteListItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	CreditNoteNumber string          `json:"credit_note_number"`
	ReturnReason     string          `json:"return_reason"`
	BuyerName        string          `json:"buyer_name"`
	ItemCount        int             `json:"item_count"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	Status           string          `json:"status"`
	RefundMethod     string          `json:"refund_method,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ExchangeSettlementResponse carries the financial outcome of an exchange
type ExchangeSettlementResponse struct {
	NewItemsTotal decimal.Decimal `json:"new_items_total"`
	CreditUsed    decimal.Decimal `json:"credit_used"`
	BalanceDue    decimal.Decimal `json:"balance_due"`
}

// ExchangeResultResponse combines the settled note and the settlement figures
type ExchangeResultResponse struct {
	CreditNote CreditNoteResponse         `json:"credit_note"`
	Settlement ExchangeSettlementResponse `json:"settlement"`
}

// ==================== Invoice DTOs ====================

// InvoiceItemResponse represents an invoice line in API responses.
// ReturnedQuantity and ReturnableQuantity reflect quantities already
// credited on non-cancelled credit notes.
type InvoiceItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	VariantID          *uuid.UUID      `json:"variant_id,omitempty"`
	Description        string          `json:"description"`
	HSNCode            string          `json:"hsn_code,omitempty"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DiscountPercent    decimal.Decimal `json:"discount_percent"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	TaxableAmount      decimal.Decimal `json:"taxable_amount"`
	GSTRate            decimal.Decimal `json:"gst_rate"`
	CGSTAmount         decimal.Decimal `json:"cgst_amount"`
	SGSTAmount         decimal.Decimal `json:"sgst_amount"`
	IGSTAmount         decimal.Decimal `json:"igst_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	ReturnedQuantity   decimal.Decimal `json:"returned_quantity"`
	ReturnableQuantity decimal.Decimal `json:"returnable_quantity"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID             uuid.UUID             `json:"id"`
	TenantID       uuid.UUID             `json:"tenant_id"`
	InvoiceNumber  string                `json:"invoice_number"`
	BuyerName      string                `json:"buyer_name"`
	BuyerAddress   string                `json:"buyer_address,omitempty"`
	BuyerGSTIN     string                `json:"buyer_gstin,omitempty"`
	BuyerStateCode string                `json:"buyer_state_code,omitempty"`
	InterState     bool                  `json:"inter_state"`
	InvoiceDate    time.Time             `json:"invoice_date"`
	Items          []InvoiceItemResponse `json:"items"`
	TaxableValue   decimal.Decimal       `json:"taxable_value"`
	CGSTAmount     decimal.Decimal       `json:"cgst_amount"`
	SGSTAmount     decimal.Decimal       `json:"sgst_amount"`
	IGSTAmount     decimal.Decimal       `json:"igst_amount"`
	TotalTax       decimal.Decimal       `json:"total_tax"`
	GrandTotal     decimal.Decimal       `json:"grand_total"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ==================== Converters ====================

// ToCreditNoteItemResponse converts a domain item to its response DTO
func ToCreditNoteItemResponse(item *billing.CreditNoteItem) CreditNoteItemResponse {
	return CreditNoteItemResponse{
		ID:                    item.ID,
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
	}
}

// ToCreditNoteResponse converts a domain credit note to its response DTO
func ToCreditNoteResponse(cn *billing.CreditNote) CreditNoteResponse {
	items := make([]CreditNoteItemResponse, len(cn.Items))
	for i := range cn.Items {
		items[i] = ToCreditNoteItemResponse(&cn.Items[i])
	}

	return CreditNoteResponse{
		ID:                cn.ID,
		TenantID:          cn.TenantID,
		CreditNoteNumber:  cn.CreditNoteNumber,
		OriginalInvoiceID: cn.OriginalInvoiceID,
		OriginalSaleID:    cn.OriginalSaleID,
		ReturnReason:      string(cn.ReturnReason),
		Notes:             cn.Notes,
		BuyerName:         cn.Buyer.Name,
		BuyerAddress:      cn.Buyer.Address,
		BuyerGSTIN:        cn.Buyer.GSTIN,
		BuyerStateCode:    cn.Buyer.StateCode,
		Items:             items,
		ItemCount:         cn.ItemCount(),
		TaxableValue:      cn.TaxableValue,
		CGSTAmount:        cn.CGSTAmount,
		SGSTAmount:        cn.SGSTAmount,
		IGSTAmount:        cn.IGSTAmount,
		TotalTax:          cn.TotalTax,
		GrandTotal:        cn.GrandTotal,
		Status:            string(cn.Status),
		RefundMethod:      cn.RefundMethod,
		RefundReference:   cn.RefundReference,
		RefundedAt:        cn.RefundedAt,
		ApprovedAt:        cn.ApprovedAt,
		CancelledAt:       cn.CancelledAt,
		CreatedAt:         cn.CreatedAt,
		UpdatedAt:         cn.UpdatedAt,
		Version:           cn.Version,
	}
}

// ToCreditNoteListItemResponse converts a domain credit note to its list DTO
func ToCreditNoteListItemResponse(cn *billing.CreditNote) CreditNoteListItemResponse {
	return CreditNoteListItemResponse{
		ID:               cn.ID,
		CreditNoteNumber: cn.CreditNoteNumber,
		ReturnReason:     string(cn.ReturnReason),
		BuyerName:        cn.Buyer.Name,
		ItemCount:        cn.ItemCount(),
		GrandTotal:       cn.GrandTotal,
		Status:           string(cn.Status),
		RefundMethod:     cn.RefundMethod,
		CreatedAt:        cn.CreatedAt,
	}
}

// ToExchangeSettlementResponse converts settlement figures to the response DTO
func ToExchangeSettlementResponse(s billing.ExchangeSettlement) ExchangeSettlementResponse {
	return ExchangeSettlementResponse{
		NewItemsTotal: s.NewItemsTotal,
		CreditUsed:    s.CreditUsed,
		BalanceDue:    s.BalanceDue,
	}
}
