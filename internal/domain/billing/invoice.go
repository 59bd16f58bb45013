package billing

import (
	"time"

	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuyerSnapshot captures buyer identity at document creation time.
// It is a copy, not a live reference; later changes to the buyer record
// must not affect issued documents.
type BuyerSnapshot struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	GSTIN     string `json:"gstin"`
	StateCode string `json:"state_code"`
}

// InvoiceItem represents one line of a sales invoice
type InvoiceItem struct {
	ID              uuid.UUID
	InvoiceID       uuid.UUID
	VariantID       *uuid.UUID
	Description     string
	HSNCode         string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxableAmount   decimal.Decimal
	GSTRate         decimal.Decimal
	CGSTAmount      decimal.Decimal
	SGSTAmount      decimal.Decimal
	IGSTAmount      decimal.Decimal
	TotalAmount     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TaxBreakup returns the item's GST components as a value object
func (i *InvoiceItem) TaxBreakup() valueobject.TaxBreakup {
	return valueobject.TaxBreakup{
		CGST: i.CGSTAmount,
		SGST: i.SGSTAmount,
		IGST: i.IGSTAmount,
	}
}

// NewInvoiceItem creates a new invoice line.
// Taxable amount, GST components and line total are derived from the inputs.
func NewInvoiceItem(
	invoiceID uuid.UUID,
	variantID *uuid.UUID,
	description, hsnCode string,
	quantity, unitPrice, discountPercent, gstRate decimal.Decimal,
	interState bool,
) (*InvoiceItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if gstRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate cannot be negative")
	}

	gross := unitPrice.Mul(quantity)
	discountAmount := gross.Mul(discountPercent).Div(decimal.NewFromInt(100))
	taxable := gross.Sub(discountAmount)
	tax := valueobject.SplitGST(taxable, gstRate, interState)

	now := time.Now()
	return &InvoiceItem{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		VariantID:       variantID,
		Description:     description,
		HSNCode:         hsnCode,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		TaxableAmount:   taxable,
		GSTRate:         gstRate,
		CGSTAmount:      tax.CGST,
		SGSTAmount:      tax.SGST,
		IGSTAmount:      tax.IGST,
		TotalAmount:     taxable.Add(tax.Total()),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Invoice is the read-side sales invoice aggregate.
// Credit notes built from an invoice prorate its line items; invoice
// creation and printing are owned elsewhere.
type Invoice struct {
	shared.TenantAggregateRoot
	InvoiceNumber string
	Buyer         BuyerSnapshot
	InterState    bool
	InvoiceDate   time.Time
	TaxableValue  decimal.Decimal
	CGSTAmount    decimal.Decimal
	SGSTAmount    decimal.Decimal
	IGSTAmount    decimal.Decimal
	TotalTax      decimal.Decimal
	GrandTotal    decimal.Decimal
	Items         []InvoiceItem
}

// NewInvoice creates a new invoice
func NewInvoice(
	tenantID uuid.UUID,
	invoiceNumber string,
	buyer BuyerSnapshot,
	interState bool,
	invoiceDate time.Time,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if buyer.Name == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer name cannot be empty")
	}

	return &Invoice{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		InvoiceNumber:       invoiceNumber,
		Buyer:               buyer,
		InterState:          interState,
		InvoiceDate:         invoiceDate,
		TaxableValue:        decimal.Zero,
		CGSTAmount:          decimal.Zero,
		SGSTAmount:          decimal.Zero,
		IGSTAmount:          decimal.Zero,
		TotalTax:            decimal.Zero,
		GrandTotal:          decimal.Zero,
		Items:               make([]InvoiceItem, 0),
	}, nil
}

// AddItem adds a new line to the invoice and recalculates totals
func (inv *Invoice) AddItem(
	variantID *uuid.UUID,
	description, hsnCode string,
	quantity, unitPrice, discountPercent, gstRate decimal.Decimal,
) (*InvoiceItem, error) {
	item, err := NewInvoiceItem(inv.ID, variantID, description, hsnCode, quantity, unitPrice, discountPercent, gstRate, inv.InterState)
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.recalculateTotals()
	inv.UpdatedAt = time.Now()

	return item, nil
}

// GetItem returns an invoice line by its ID
func (inv *Invoice) GetItem(itemID uuid.UUID) *InvoiceItem {
	for idx := range inv.Items {
		if inv.Items[idx].ID == itemID {
			return &inv.Items[idx]
		}
	}
	return nil
}

// ItemCount returns the number of lines on the invoice
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// GetGrandTotalMoney returns the grand total as Money
func (inv *Invoice) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.GrandTotal)
}

// recalculateTotals recalculates document-level amounts from the lines
func (inv *Invoice) recalculateTotals() {
	taxable := decimal.Zero
	tax := valueobject.ZeroTaxBreakup()
	for _, item := range inv.Items {
		taxable = taxable.Add(item.TaxableAmount)
		tax = tax.Add(item.TaxBreakup())
	}
	inv.TaxableValue = taxable
	inv.CGSTAmount = tax.CGST
	inv.SGSTAmount = tax.SGST
	inv.IGSTAmount = tax.IGST
	inv.TotalTax = tax.Total()
	inv.GrandTotal = taxable.Add(tax.Total())
}
