package billing

import (
	"fmt"
	"strings"
	"time"

	"github.com/gemsuite/backend/internal/domain/shared"
	"github.com/gemsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreditNoteStatus represents the lifecycle status of a credit note
type CreditNoteStatus string

const (
	CreditNoteStatusPending   CreditNoteStatus = "pending"
	CreditNoteStatusApproved  CreditNoteStatus = "approved"
	CreditNoteStatusRefunded  CreditNoteStatus = "refunded"
	CreditNoteStatusExchanged CreditNoteStatus = "exchanged"
	CreditNoteStatusCancelled CreditNoteStatus = "cancelled"
)

// IsValid checks if the status is a valid CreditNoteStatus
func (s CreditNoteStatus) IsValid() bool {
	switch s {
	case CreditNoteStatusPending, CreditNoteStatusApproved, CreditNoteStatusRefunded,
		CreditNoteStatusExchanged, CreditNoteStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of CreditNoteStatus
func (s CreditNoteStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s CreditNoteStatus) CanTransitionTo(target CreditNoteStatus) bool {
	switch s {
	case CreditNoteStatusPending:
		return target == CreditNoteStatusApproved || target == CreditNoteStatusCancelled
	case CreditNoteStatusApproved:
		return target == CreditNoteStatusRefunded || target == CreditNoteStatusExchanged || target == CreditNoteStatusCancelled
	case CreditNoteStatusRefunded, CreditNoteStatusExchanged, CreditNoteStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ReturnReason classifies why goods were returned
type ReturnReason string

const (
	ReturnReasonDefective       ReturnReason = "defective"
	ReturnReasonWrongItem       ReturnReason = "wrong_item"
	ReturnReasonSizeExchange    ReturnReason = "size_exchange"
	ReturnReasonCustomerRequest ReturnReason = "customer_request"
	ReturnReasonQualityIssue    ReturnReason = "quality_issue"
	ReturnReasonOther           ReturnReason = "other"
)

// IsValid checks if the reason is a known ReturnReason
func (r ReturnReason) IsValid() bool {
	switch r {
	case ReturnReasonDefective, ReturnReasonWrongItem, ReturnReasonSizeExchange,
		ReturnReasonCustomerRequest, ReturnReasonQualityIssue, ReturnReasonOther:
		return true
	}
	return false
}

// String returns the string representation of ReturnReason
func (r ReturnReason) String() string {
	return string(r)
}

// RefundMethodExchange marks a credit note settled by exchanging goods
// rather than returning payment.
const RefundMethodExchange = "exchange"

// CreditNoteItem represents one line of a credit note.
// Items are immutable once the parent note is persisted; cancellation is
// soft via the parent status.
type CreditNoteItem struct {
	ID                    uuid.UUID
	CreditNoteID          uuid.UUID
	OriginalInvoiceItemID *uuid.UUID
	VariantID             *uuid.UUID
	Description           string
	HSNCode               string
	Quantity              decimal.Decimal
	UnitPrice             decimal.Decimal
	DiscountPercent       decimal.Decimal
	DiscountAmount        decimal.Decimal
	TaxableAmount         decimal.Decimal
	GSTRate               decimal.Decimal
	CGSTAmount            decimal.Decimal
	SGSTAmount            decimal.Decimal
	IGSTAmount            decimal.Decimal
	TotalAmount           decimal.Decimal
	CreatedAt             time.Time
}

// NewCreditNoteItem creates a credit note line from caller-supplied amounts.
// Taxable amount and line total are derived and must reconcile with the
// inputs; tax components are validated for GST exclusivity.
func NewCreditNoteItem(
	variantID *uuid.UUID,
	description, hsnCode string,
	quantity, unitPrice, discountAmount, gstRate decimal.Decimal,
	tax valueobject.TaxBreakup,
) (*CreditNoteItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot be negative")
	}
	if err := tax.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_TAX", err.Error())
	}

	gross := unitPrice.Mul(quantity)
	if discountAmount.GreaterThan(gross) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount amount cannot exceed line value")
	}
	taxable := gross.Sub(discountAmount)

	discountPercent := decimal.Zero
	if gross.IsPositive() {
		discountPercent = discountAmount.Div(gross).Mul(decimal.NewFromInt(100))
	}

	return &CreditNoteItem{
		ID:              uuid.New(),
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
		CreatedAt:       time.Now(),
	}, nil
}

// NewCreditNoteItemFromInvoiceItem prorates an invoice line for a partial
// return. Taxable amount, discount and each tax component are scaled by
// returnedQty/originalQty independently so the original GST split carries
// over exactly.
func NewCreditNoteItemFromInvoiceItem(invoiceItem *InvoiceItem, returnedQty decimal.Decimal) (*CreditNoteItem, error) {
	if invoiceItem == nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Invoice item cannot be nil")
	}
	if returnedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if returnedQty.GreaterThan(invoiceItem.Quantity) {
		return nil, shared.NewDomainError("QUANTITY_EXCEEDED", "Return quantity cannot exceed invoiced quantity")
	}

	taxable, err := valueobject.ProrateAmount(invoiceItem.TaxableAmount, invoiceItem.Quantity, returnedQty)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
	}
	discount, err := valueobject.ProrateAmount(invoiceItem.DiscountAmount, invoiceItem.Quantity, returnedQty)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
	}
	tax, err := invoiceItem.TaxBreakup().Prorate(invoiceItem.Quantity, returnedQty)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_QUANTITY", err.Error())
	}

	invoiceItemID := invoiceItem.ID
	return &CreditNoteItem{
		ID:                    uuid.New(),
		OriginalInvoiceItemID: &invoiceItemID,
		VariantID:             invoiceItem.VariantID,
		Description:           invoiceItem.Description,
		HSNCode:               invoiceItem.HSNCode,
		Quantity:              returnedQty,
		UnitPrice:             invoiceItem.UnitPrice,
		DiscountPercent:       invoiceItem.DiscountPercent,
		DiscountAmount:        discount,
		TaxableAmount:         taxable,
		GSTRate:               invoiceItem.GSTRate,
		CGSTAmount:            tax.CGST,
		SGSTAmount:            tax.SGST,
		IGSTAmount:            tax.IGST,
		TotalAmount:           taxable.Add(tax.Total()),
		CreatedAt:             time.Now(),
	}, nil
}

// TaxBreakup returns the item's GST components as a value object
func (i *CreditNoteItem) TaxBreakup() valueobject.TaxBreakup {
	return valueobject.TaxBreakup{
		CGST: i.CGSTAmount,
		SGST: i.SGSTAmount,
		IGST: i.IGSTAmount,
	}
}

// GetTotalAmountMoney returns the line total as Money
func (i *CreditNoteItem) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.TotalAmount)
}

// CreditNote represents a return or adjustment against a prior sale.
// It is the aggregate root of the return reconciliation engine.
type CreditNote struct {
	shared.TenantAggregateRoot
	CreditNoteNumber  string
	OriginalInvoiceID *uuid.UUID
	OriginalSaleID    *uuid.UUID
	ReturnReason      ReturnReason
	Notes             string
	Buyer             BuyerSnapshot
	Items             []CreditNoteItem
	TaxableValue      decimal.Decimal
	CGSTAmount        decimal.Decimal
	SGSTAmount        decimal.Decimal
	IGSTAmount        decimal.Decimal
	TotalTax          decimal.Decimal
	GrandTotal        decimal.Decimal
	Status            CreditNoteStatus
	RefundMethod      string
	RefundReference   string
	RefundedAt        *time.Time
	ApprovedAt        *time.Time
	CancelledAt       *time.Time
}

// NewCreditNote creates a new credit note in pending status
func NewCreditNote(
	tenantID uuid.UUID,
	creditNoteNumber string,
	reason ReturnReason,
	buyer BuyerSnapshot,
	notes string,
) (*CreditNote, error) {
	if creditNoteNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Credit note number cannot be empty")
	}
	if len(creditNoteNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Credit note number cannot exceed 50 characters")
	}
	if !reason.IsValid() {
		return nil, shared.NewDomainError("INVALID_REASON", fmt.Sprintf("Unknown return reason: %s", reason))
	}
	if buyer.Name == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer name cannot be empty")
	}

	cn := &CreditNote{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CreditNoteNumber:    creditNoteNumber,
		ReturnReason:        reason,
		Notes:               notes,
		Buyer:               buyer,
		Items:               make([]CreditNoteItem, 0),
		TaxableValue:        decimal.Zero,
		CGSTAmount:          decimal.Zero,
		SGSTAmount:          decimal.Zero,
		IGSTAmount:          decimal.Zero,
		TotalTax:            decimal.Zero,
		GrandTotal:          decimal.Zero,
		Status:              CreditNoteStatusPending,
	}

	cn.AddDomainEvent(NewCreditNoteCreatedEvent(cn))

	return cn, nil
}

// LinkInvoice records the originating invoice reference
func (cn *CreditNote) LinkInvoice(invoiceID uuid.UUID) {
	cn.OriginalInvoiceID = &invoiceID
	cn.UpdatedAt = time.Now()
}

// LinkSale records the originating sale reference
func (cn *CreditNote) LinkSale(saleID uuid.UUID) {
	cn.OriginalSaleID = &saleID
	cn.UpdatedAt = time.Now()
}

// AddItem adds a line to the note and recalculates document totals.
// Only allowed while the note is pending; mixing intra-state and
// inter-state tax components on one note is rejected.
func (cn *CreditNote) AddItem(item *CreditNoteItem) error {
	if cn.Status != CreditNoteStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending credit note")
	}
	if item == nil {
		return shared.NewDomainError("INVALID_ITEM", "Credit note item cannot be nil")
	}

	combined := cn.TaxBreakup().Add(item.TaxBreakup())
	if err := combined.Validate(); err != nil {
		return shared.NewDomainError("INVALID_TAX", err.Error())
	}

	item.CreditNoteID = cn.ID
	cn.Items = append(cn.Items, *item)
	cn.recalculateTotals()
	cn.UpdatedAt = time.Now()

	return nil
}

// Approve approves the credit note
// Transitions from pending to approved
func (cn *CreditNote) Approve() error {
	if !cn.Status.CanTransitionTo(CreditNoteStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve credit note in %s status", cn.Status))
	}
	if len(cn.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve credit note without items")
	}

	now := time.Now()
	cn.Status = CreditNoteStatusApproved
	cn.ApprovedAt = &now
	cn.UpdatedAt = now

	cn.AddDomainEvent(NewCreditNoteApprovedEvent(cn))

	return nil
}

// ProcessRefund settles the credit note by refunding the customer
// Transitions from approved to refunded
func (cn *CreditNote) ProcessRefund(method, reference string) error {
	if !cn.Status.CanTransitionTo(CreditNoteStatusRefunded) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot refund credit note in %s status", cn.Status))
	}
	if method == "" {
		return shared.NewDomainError("INVALID_REFUND_METHOD", "Refund method is required")
	}

	now := time.Now()
	cn.Status = CreditNoteStatusRefunded
	cn.RefundMethod = method
	cn.RefundReference = reference
	cn.RefundedAt = &now
	cn.UpdatedAt = now

	cn.AddDomainEvent(NewCreditNoteRefundedEvent(cn))

	return nil
}

// ProcessExchange settles the credit note against replacement merchandise.
// Requires approved status. Returns the settlement figures; creating the
// replacement sale and its stock movements is the caller's concern.
func (cn *CreditNote) ProcessExchange(newItems []ExchangeItem, notes string) (ExchangeSettlement, error) {
	if !cn.Status.CanTransitionTo(CreditNoteStatusExchanged) {
		return ExchangeSettlement{}, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot exchange credit note in %s status", cn.Status))
	}

	settlement, err := CalculateExchangeSettlement(cn.GrandTotal, newItems)
	if err != nil {
		return ExchangeSettlement{}, err
	}

	descriptions := make([]string, 0, len(newItems))
	for _, item := range newItems {
		descriptions = append(descriptions, item.Description)
	}

	now := time.Now()
	cn.Status = CreditNoteStatusExchanged
	cn.RefundMethod = RefundMethodExchange
	cn.RefundReference = fmt.Sprintf("Exchanged for: %s", strings.Join(descriptions, ", "))
	cn.RefundedAt = &now
	if notes != "" {
		cn.appendNotes(notes)
	}
	cn.UpdatedAt = now

	cn.AddDomainEvent(NewCreditNoteExchangedEvent(cn, settlement))

	return settlement, nil
}

// Cancel cancels the credit note
// Allowed from pending or approved status
func (cn *CreditNote) Cancel() error {
	if !cn.Status.CanTransitionTo(CreditNoteStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel credit note in %s status", cn.Status))
	}

	now := time.Now()
	cn.Status = CreditNoteStatusCancelled
	cn.CancelledAt = &now
	cn.UpdatedAt = now

	cn.AddDomainEvent(NewCreditNoteCancelledEvent(cn))

	return nil
}

// appendNotes appends to existing notes instead of overwriting
func (cn *CreditNote) appendNotes(notes string) {
	if cn.Notes == "" {
		cn.Notes = notes
		return
	}
	cn.Notes = cn.Notes + "\n" + notes
}

// recalculateTotals recalculates document-level amounts from the lines
func (cn *CreditNote) recalculateTotals() {
	taxable := decimal.Zero
	tax := valueobject.ZeroTaxBreakup()
	for _, item := range cn.Items {
		taxable = taxable.Add(item.TaxableAmount)
		tax = tax.Add(item.TaxBreakup())
	}
	cn.TaxableValue = taxable
	cn.CGSTAmount = tax.CGST
	cn.SGSTAmount = tax.SGST
	cn.IGSTAmount = tax.IGST
	cn.TotalTax = tax.Total()
	cn.GrandTotal = taxable.Add(tax.Total())
}

// TaxBreakup returns the note's GST components as a value object
func (cn *CreditNote) TaxBreakup() valueobject.TaxBreakup {
	return valueobject.TaxBreakup{
		CGST: cn.CGSTAmount,
		SGST: cn.SGSTAmount,
		IGST: cn.IGSTAmount,
	}
}

// GetGrandTotalMoney returns the grand total as Money
func (cn *CreditNote) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(cn.GrandTotal)
}

// ItemCount returns the number of lines on the note
func (cn *CreditNote) ItemCount() int {
	return len(cn.Items)
}

// GetItem returns a line by its ID
func (cn *CreditNote) GetItem(itemID uuid.UUID) *CreditNoteItem {
	for idx := range cn.Items {
		if cn.Items[idx].ID == itemID {
			return &cn.Items[idx]
		}
	}
	return nil
}

// IsPending returns true if the note is awaiting approval
func (cn *CreditNote) IsPending() bool {
	return cn.Status == CreditNoteStatusPending
}

// IsApproved returns true if the note is approved
func (cn *CreditNote) IsApproved() bool {
	return cn.Status == CreditNoteStatusApproved
}

// IsRefunded returns true if the note has been refunded
func (cn *CreditNote) IsRefunded() bool {
	return cn.Status == CreditNoteStatusRefunded
}

// IsExchanged returns true if the note was settled by exchange
func (cn *CreditNote) IsExchanged() bool {
	return cn.Status == CreditNoteStatusExchanged
}

// IsCancelled returns true if the note is cancelled
func (cn *CreditNote) IsCancelled() bool {
	return cn.Status == CreditNoteStatusCancelled
}

// IsTerminal returns true if the note is in a terminal state
func (cn *CreditNote) IsTerminal() bool {
	return cn.IsRefunded() || cn.IsExchanged() || cn.IsCancelled()
}
