package billing

import (
	"context"

	"github.com/gemsuite/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceService serves the invoice read side used by return screens
type InvoiceService struct {
	invoiceRepo billing.InvoiceRepository
	noteRepo    billing.CreditNoteRepository
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, noteRepo billing.CreditNoteRepository) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		noteRepo:    noteRepo,
	}
}

// GetByID retrieves an invoice with its items, annotating each line with
// the quantity already credited on non-cancelled credit notes and the
// remaining returnable quantity
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceItemResponse, len(invoice.Items))
	for i := range invoice.Items {
		item := &invoice.Items[i]

		credited, err := s.noteRepo.CreditedQuantityForInvoiceItem(ctx, tenantID, item.ID)
		if err != nil {
			return nil, err
		}
		returnable := item.Quantity.Sub(credited)
		if returnable.IsNegative() {
			returnable = decimal.Zero
		}

		items[i] = InvoiceItemResponse{
			ID:                 item.ID,
			VariantID:          item.VariantID,
			Description:        item.Description,
			HSNCode:            item.HSNCode,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DiscountPercent:    item.DiscountPercent,
			DiscountAmount:     item.DiscountAmount,
			TaxableAmount:      item.TaxableAmount,
			GSTRate:            item.GSTRate,
			CGSTAmount:         item.CGSTAmount,
			SGSTAmount:         item.SGSTAmount,
			IGSTAmount:         item.IGSTAmount,
			TotalAmount:        item.TotalAmount,
			ReturnedQuantity:   credited,
			ReturnableQuantity: returnable,
		}
	}

	return &InvoiceResponse{
		ID:             invoice.ID,
		TenantID:       invoice.TenantID,
		InvoiceNumber:  invoice.InvoiceNumber,
		BuyerName:      invoice.Buyer.Name,
		BuyerAddress:   invoice.Buyer.Address,
		BuyerGSTIN:     invoice.Buyer.GSTIN,
		BuyerStateCode: invoice.Buyer.StateCode,
		InterState:     invoice.InterState,
		InvoiceDate:    invoice.InvoiceDate,
		Items:          items,
		TaxableValue:   invoice.TaxableValue,
		CGSTAmount:     invoice.CGSTAmount,
		SGSTAmount:     invoice.SGSTAmount,
		IGSTAmount:     invoice.IGSTAmount,
		TotalTax:       invoice.TotalTax,
		GrandTotal:     invoice.GrandTotal,
		CreatedAt:      invoice.CreatedAt,
	}, nil
}
